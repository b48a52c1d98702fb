package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/fatih/color"
)

var (
	colorError       = color.New(color.FgRed, color.Bold)
	colorFamily      = color.New(color.FgHiBlue)
	colorInstruction = color.New(color.FgYellow)
	colorField       = color.New(color.FgGreen)
	colorSuccess     = color.New(color.FgGreen)
	colorPath        = color.New(color.FgHiCyan)
)

// Prints every error joined into err, one per line, highlighting the
// family, instruction and field of diagnostics
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			Report(w, e)
		}
		return
	}

	colorError.Fprint(w, "error: ")

	var diagnostic *instructions.Diagnostic
	if !errors.As(err, &diagnostic) {
		fmt.Fprintln(w, err)
		return
	}

	if diagnostic.Family != "" {
		fmt.Fprint(w, "family ")
		colorFamily.Fprint(w, diagnostic.Family)
		fmt.Fprint(w, " ")
	}

	if diagnostic.Instruction != "" {
		fmt.Fprint(w, "instruction ")
		colorInstruction.Fprint(w, diagnostic.Instruction)
		fmt.Fprint(w, " ")
	}

	if diagnostic.Field != "" {
		fmt.Fprint(w, "field ")
		colorField.Fprint(w, diagnostic.Field)
		fmt.Fprint(w, " ")
	}

	fmt.Fprintln(w, diagnostic.Err)
}

// Prints a summary line of a written file
func ReportFile(w io.Writer, path string, digest string) {
	colorSuccess.Fprint(w, "wrote ")
	colorPath.Fprint(w, path)
	fmt.Fprintf(w, " %v\n", digest[:16])
}
