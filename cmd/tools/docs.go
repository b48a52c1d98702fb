package tools

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/sawfish/cmd/cli"
	"github.com/Manu343726/sawfish/pkg/slaspec/emitter"
	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func writeDocs(w io.Writer, families []*instructions.Family, sleigh bool) error {
	e, err := emitter.NewEmitter()
	if err != nil {
		return err
	}

	for _, family := range families {
		doc, err := family.DocString()
		if err != nil {
			return err
		}

		fmt.Fprint(w, doc)

		if sleigh {
			var source bytes.Buffer
			if err := e.Family(&source, family); err != nil {
				return err
			}

			fmt.Fprintln(w, utils.HighlightSleigh(source.String()))
		}
	}

	return nil
}

var docsCmd = &cobra.Command{
	Use:   "docs [family...]",
	Short: "Show the encoding of every instruction",
	Long: `Dumps a diagram of the encoding words of every instruction of the given families,
or of every family if none is given.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			viper.Set(cli.KeyFamilies, args)
		}

		b, closeLog := cli.Builder(viper.GetViper())
		defer closeLog()

		groups, err := b.Families()
		if err != nil {
			closeLog()
			cli.Fail(2, err)
		}

		var families []*instructions.Family
		for _, group := range groups {
			families = append(families, group.Families...)
		}

		sleigh, _ := cmd.Flags().GetBool("sleigh")
		outputFile, _ := cmd.Flags().GetString("output")

		var out io.Writer = os.Stdout
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				closeLog()
				cli.Fail(1, fmt.Errorf("error creating file: %w", err))
			}
			defer file.Close()

			color.NoColor = true
			out = file
		}

		if err := writeDocs(out, families, sleigh); err != nil {
			closeLog()
			cli.Fail(2, err)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
	docsCmd.Flags().Bool("sleigh", false, "Also show the SLEIGH source of each family")
}
