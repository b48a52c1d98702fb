package instructions

import (
	"fmt"
	"strings"

	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/utils"
)

// Returns the label of a field within an encoding diagram. Masks show
// the bits they match
func frameLabel(field pattern.Field) string {
	switch field.Type.Kind() {
	case pattern.FieldKind_Mask:
		return utils.FormatUintBinary(uint64(field.Type.MaskValue()), field.Len())
	case pattern.FieldKind_Variable:
		return field.ID + ":" + field.Type.RegisterSet().String()
	case pattern.FieldKind_UImm, pattern.FieldKind_SImm:
		return field.ID + ":" + field.Type.Kind().String()
	}

	return field.ID + "?"
}

// Returns a human readable description of the instruction, with a diagram of each encoding word
func (i *Instruction) DocString(leftpad int) (string, error) {
	if i.err != nil {
		return "", i.err
	}

	var builder strings.Builder

	leftpadStr := strings.Repeat(" ", leftpad)

	builder.WriteString(leftpadStr)
	builder.WriteString(i.name)
	if i.display != "" {
		builder.WriteString(fmt.Sprintf(" (%v)", i.display))
	}
	builder.WriteString("\n\n")

	for wi, word := range i.pattern.Fields() {
		builder.WriteString(leftpadStr)
		builder.WriteString(fmt.Sprintf("  word %v:\n\n", wi))

		frame, err := utils.AsciiFrame(utils.Map(word, func(field pattern.Field) utils.AsciiFrameField {
			return utils.AsciiFrameField{
				Name:  frameLabel(field),
				Begin: field.Range.Start,
				Width: field.Len(),
			}
		}), pattern.WordBits, "bits", utils.AsciiFrameUnitLayout_RightToLeft, leftpad+4)
		if err != nil {
			return "", i.diagnose(err)
		}

		builder.WriteString(frame)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// Returns the description of every instruction in the family
func (f *Family) DocString() (string, error) {
	var builder strings.Builder

	builder.WriteString(f.Name())
	if f.Description() != "" {
		builder.WriteString(": ")
		builder.WriteString(f.Description())
	}
	builder.WriteString("\n\n")

	for _, instruction := range f.instructions {
		doc, err := instruction.DocString(2)
		if err != nil {
			return "", err
		}

		builder.WriteString(doc)
	}

	return builder.String(), nil
}
