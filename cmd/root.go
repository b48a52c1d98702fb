package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/sawfish/cmd/cli"
	"github.com/Manu343726/sawfish/cmd/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sawfish",
	Short: "A SLEIGH description generator for the Blackfin+ architecture",
	Long: `Sawfish generates the SLEIGH processor description Ghidra needs to disassemble
and decompile Blackfin+ code.

Instruction encodings are described as families of bit patterns, and the
generator derives the token, attachment and constructor definitions from them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(generateCmd, tools.ToolsCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sawfish.yaml)")
	RootCmd.PersistentFlags().String("log-level", "info", "Console log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().String("log-file", "", "Also write JSON log records to this file")
	RootCmd.PersistentFlags().StringSliceP("families", "f", nil, "Families to build. All families are built if omitted")

	cobra.CheckErr(viper.BindPFlag(cli.KeyLogLevel, RootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag(cli.KeyLogFile, RootCmd.PersistentFlags().Lookup("log-file")))
	cobra.CheckErr(viper.BindPFlag(cli.KeyFamilies, RootCmd.PersistentFlags().Lookup("families")))

	cli.SetDefaults(viper.GetViper())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sawfish" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sawfish")
	}

	// SAWFISH_LOG_LEVEL overrides log.level
	viper.SetEnvPrefix("sawfish")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
