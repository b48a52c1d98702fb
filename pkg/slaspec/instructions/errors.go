package instructions

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFamily         = errors.New("invalid instruction family")
	ErrUnresolvedField       = errors.New("unresolved field at aggregation")
	ErrConflictingToken      = errors.New("conflicting token definitions")
	ErrAlreadyAggregated     = errors.New("family tokens already aggregated")
	ErrNotAggregated         = errors.New("family tokens not aggregated")
	ErrInstructionResolved   = errors.New("instruction already resolved")
	ErrInstructionUnattached = errors.New("instruction not registered in a family")
	ErrUnknownInstruction    = errors.New("unknown instruction")
	ErrDuplicateFieldLabel   = errors.New("duplicate field label")
)

// Locates an error within the instruction catalog
type Diagnostic struct {
	Family      string
	Instruction string
	Field       string
	Err         error
}

func (d *Diagnostic) Error() string {
	location := []string{fmt.Sprintf("family '%v'", d.Family)}

	if d.Instruction != "" {
		location = append(location, fmt.Sprintf("instruction '%v'", d.Instruction))
	}
	if d.Field != "" {
		location = append(location, fmt.Sprintf("field '%v'", d.Field))
	}

	return fmt.Sprintf("%v: %v", strings.Join(location, ", "), d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Returns every diagnostic found in err, unwrapping joined errors
func Diagnostics(err error) []*Diagnostic {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*Diagnostic
		for _, e := range joined.Unwrap() {
			out = append(out, Diagnostics(e)...)
		}
		return out
	}

	var d *Diagnostic
	if errors.As(err, &d) {
		return []*Diagnostic{d}
	}

	return nil
}
