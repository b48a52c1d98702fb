package utils

import (
	"errors"
	"fmt"
	"strings"
)

type AsciiFrameField struct {
	// Name of the field
	Name string

	// Units within the frame the field begins from
	Begin int

	// Field width
	Width int
}

// The last unit within the frame used by this field
func (f *AsciiFrameField) TopUnit() int {
	return f.PastTopUnit() - 1
}

// The first unit within the frame used by the next field
func (f *AsciiFrameField) PastTopUnit() int {
	return f.Begin + f.Width
}

type AsciiFrameUnitLayout uint

const (
	// Units increase left to right
	AsciiFrameUnitLayout_LeftToRight AsciiFrameUnitLayout = iota
	// Units increase right to left
	AsciiFrameUnitLayout_RightToLeft
)

var ErrInvalidAsciiFrame = errors.New("invalid ascii frame")

type asciiFrame struct {
	fields     []AsciiFrameField
	frameWidth int
	unit       string
	leftpad    int
	layout     AsciiFrameUnitLayout
}

func (f *asciiFrame) TopUnit() int {
	return f.frameWidth - 1
}

func writeCentered(text string, decorationLength int, filler string, length int, builder *strings.Builder) error {
	if len(filler) != 1 {
		return MakeError(ErrInvalidAsciiFrame, "filler '%v' must be one character long", filler)
	}

	if len(text) > length {
		return MakeError(ErrInvalidAsciiFrame, "text '%v' is %v chars long but target length is only %v chars", text, len(text), length)
	}

	free := length - len(text) - decorationLength
	left := free / 2
	right := free - left

	builder.WriteString(strings.Repeat(filler, max(left, 0)))
	builder.WriteString(text)
	builder.WriteString(strings.Repeat(filler, max(right, 0)))

	return nil
}

func (f *asciiFrame) Draw() (string, error) {
	const (
		bodySplitter   string = "|"
		borderSplitter string = "+"
		borderBody     string = "-"
		arrowTipLeft   string = "<-"
		arrowBody      string = "-"
		arrowTipRight  string = "->"
		indexBody      string = " "
		arrowSplitter  string = " "
	)

	type column struct {
		index     string
		name      string
		width     string
		minLength int
	}

	leftpad := strings.Repeat(" ", f.leftpad)
	columns := make([]column, len(f.fields))

	for i := range columns {
		field := &f.fields[i]
		index := fmt.Sprint(field.Begin)

		if f.layout == AsciiFrameUnitLayout_RightToLeft {
			field = &f.fields[len(f.fields)-i-1]
			index = fmt.Sprint(field.TopUnit())
		}

		c := &columns[i]
		c.index = index
		c.name = fmt.Sprintf(" %v ", field.Name)
		c.width = fmt.Sprintf(" %v %v ", field.Width, f.unit)
		c.minLength = Max([]int{len(c.index), len(c.name), len(arrowTipLeft) + len(c.width) + len(arrowTipRight)})
	}

	var indices, header, body, footer, widths strings.Builder

	for _, row := range []*strings.Builder{&indices, &header, &body, &footer, &widths} {
		row.WriteString(leftpad)
	}

	for _, c := range columns {
		indices.WriteString(c.index)
		indices.WriteString(strings.Repeat(indexBody, c.minLength-len(c.index)+1))
		header.WriteString(borderSplitter)
		header.WriteString(strings.Repeat(borderBody, c.minLength))
		body.WriteString(bodySplitter)
		if err := writeCentered(c.name, 0, " ", c.minLength, &body); err != nil {
			return "", err
		}
		footer.WriteString(borderSplitter)
		footer.WriteString(strings.Repeat(borderBody, c.minLength))
		widths.WriteString(arrowSplitter)
		widths.WriteString(arrowTipLeft)
		if err := writeCentered(c.width, len(arrowTipLeft)+len(arrowTipRight), arrowBody, c.minLength, &widths); err != nil {
			return "", err
		}
		widths.WriteString(arrowTipRight)
	}

	if f.layout == AsciiFrameUnitLayout_LeftToRight {
		indices.WriteString(fmt.Sprint(f.TopUnit()))
	} else {
		indices.WriteString("0")
	}

	header.WriteString(borderSplitter)
	body.WriteString(bodySplitter)
	footer.WriteString(borderSplitter)
	widths.WriteString(" ")

	var result strings.Builder

	for _, row := range []*strings.Builder{&indices, &header, &body, &footer, &widths} {
		result.WriteString(row.String())
		result.WriteString("\n")
	}

	return result.String(), nil
}

func fillAsciiFrameGaps(fields []AsciiFrameField, frameWidth int) ([]AsciiFrameField, error) {
	result := make([]AsciiFrameField, 0, len(fields))
	currentUnit := 0

	for _, field := range fields {
		if field.Begin > currentUnit {
			result = append(result, AsciiFrameField{
				Name:  "(unused)",
				Begin: currentUnit,
				Width: field.Begin - currentUnit,
			})
		} else if field.Begin < currentUnit {
			return nil, MakeError(ErrInvalidAsciiFrame, "field '%v' begins at %v, overlapping the previous field. Make sure fields are sorted by position and are not overlapping", field.Name, field.Begin)
		}

		result = append(result, field)

		currentUnit = field.PastTopUnit()
	}

	if currentUnit < frameWidth {
		result = append(result, AsciiFrameField{
			Name:  "(unused)",
			Begin: currentUnit,
			Width: frameWidth - currentUnit,
		})
	}

	return result, nil
}

// Prints an ascii diagram of a binary frame composed of contiguous fields of different unit lenghts
func AsciiFrame(fields []AsciiFrameField, frameWidth int, unit string, layout AsciiFrameUnitLayout, leftpad int) (string, error) {
	allFields, err := fillAsciiFrameGaps(fields, frameWidth)
	if err != nil {
		return "", err
	}

	frame := asciiFrame{
		fields:     allFields,
		frameWidth: allFields[len(allFields)-1].PastTopUnit(),
		unit:       unit,
		leftpad:    leftpad,
		layout:     layout,
	}

	return frame.Draw()
}
