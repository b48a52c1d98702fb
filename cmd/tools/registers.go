package tools

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var colorSet = color.New(color.FgGreen, color.Bold)

func writeRegisters(w io.Writer, catalog *registers.CatalogDescriptor) {
	fmt.Fprintln(w, "Register sets:")
	fmt.Fprintln(w)

	for _, set := range catalog.AllSets() {
		fmt.Fprint(w, "  ")
		colorSet.Fprint(w, set.Name())
		fmt.Fprintf(w, " (%v bits): %v\n", set.EncodingBits(), set.Description)
		fmt.Fprintf(w, "    %v\n", strings.Join(set.Registers(), " "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Register banks:")
	fmt.Fprintln(w)

	for _, bank := range catalog.Banks() {
		fmt.Fprint(w, "  ")
		colorSet.Fprint(w, bank.Name)
		fmt.Fprintf(w, " at 0x%02x, %v bytes per register, %v bytes: %v\n", bank.Offset, bank.Size, bank.Bytes(), bank.Description)
	}
}

var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "List the register sets and register banks of the architecture",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeRegisters(os.Stdout, &registers.Catalog)
	},
}

func init() {
	ToolsCmd.AddCommand(registersCmd)
}
