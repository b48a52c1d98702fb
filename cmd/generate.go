package cmd

import (
	"os"
	"path/filepath"

	"github.com/Manu343726/sawfish/cmd/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the Blackfin+ SLEIGH description",
	Long: `Builds every instruction family and writes the SLEIGH description to the output directory:

  blackfinplus.slaspec           main file: endianness, alignment and address spaces
  includes/registers.sinc        register definitions
  includes/instructions.sinc     include list of every family file
  includes/instr{16,32,64}/*.sinc one file per instruction family
  manifest.yaml                  BLAKE2b-256 digest of every file written

Nothing is written if any family fails to build. Every problem found is reported.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		b, closeLog := cli.Builder(viper.GetViper())
		defer closeLog()

		manifest, err := b.Build()
		if err != nil {
			closeLog()
			cli.Fail(2, err)
		}

		for _, file := range manifest.Files {
			cli.ReportFile(os.Stdout, filepath.Join(b.Options().Output, file.Path), file.Digest)
		}
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "sleigh", "Output directory")
	generateCmd.Flags().String("endian", "little", "Endianness of the description (little, big)")
	generateCmd.Flags().Int("alignment", 2, "Instruction alignment in bytes")
	generateCmd.Flags().Bool("manifest", true, "Write a manifest with the digest of every generated file")

	for _, key := range []string{cli.KeyOutput, cli.KeyEndian, cli.KeyAlignment, cli.KeyManifest} {
		cobra.CheckErr(viper.BindPFlag(key, generateCmd.Flags().Lookup(key)))
	}
}
