package pattern

import (
	"fmt"
	"strings"

	"github.com/Manu343726/sawfish/pkg/utils"
	"golang.org/x/tools/container/intsets"
)

// Number of bits in one encoding word
const WordBits = 16

// Maximum number of encoding words of an instruction
const MaxWords = 4

// An instruction encoding: 1, 2 or 4 words, each one partitioned into
// fields ordered by start bit.
//
// Patterns are values. SplitField and SetFieldType return a new pattern
// and never modify the receiver, so a partially resolved pattern can be
// shared by any number of instructions refining it in different ways.
type Pattern struct {
	prefix string
	words  [][]Field
}

// Returns the identifier of the blank field spanning the given word of a new pattern
func BlankWordID(word int) string {
	return fmt.Sprintf("w%v", word)
}

func validWordCount(words int) bool {
	return words == 1 || words == 2 || words == 4
}

// Creates a pattern of the given number of words, each one a single blank field
func NewPattern(prefix string, words int) (Pattern, error) {
	if !validWordCount(words) {
		return Pattern{}, utils.MakeError(ErrInvalidWordCount, "pattern can only be 1, 2, or 4 words long, got %v", words)
	}

	p := Pattern{
		prefix: prefix,
		words:  make([][]Field, words),
	}

	for i := range p.words {
		p.words[i] = []Field{{
			ID:     BlankWordID(i),
			Range:  NewBitRange(0, WordBits-1),
			Prefix: prefix,
		}}
	}

	return p, nil
}

// Creates a pattern with one word per template list, splitting each word's
// blank field with its templates. A word with no templates stays blank
func NewPatternFrom(prefix string, words ...[]FieldTemplate) (Pattern, error) {
	p, err := NewPattern(prefix, len(words))
	if err != nil {
		return Pattern{}, err
	}

	for i, templates := range words {
		if len(templates) == 0 {
			continue
		}

		if p, err = p.SplitField(BlankWordID(i), templates...); err != nil {
			return Pattern{}, err
		}
	}

	return p, nil
}

// Returns the token name prefix of the family the pattern belongs to
func (p Pattern) Prefix() string {
	return p.prefix
}

// Returns the number of encoding words
func (p Pattern) Words() int {
	return len(p.words)
}

// Returns a copy of the fields of a word
func (p Pattern) Word(i int) []Field {
	return append([]Field(nil), p.words[i]...)
}

// Returns a copy of the fields of every word
func (p Pattern) Fields() [][]Field {
	return p.Clone().words
}

// Returns a copy of the fields of every word, in word order
func (p Pattern) AllFields() []Field {
	var fields []Field

	for _, word := range p.words {
		fields = append(fields, word...)
	}

	return fields
}

// Returns the fields that are still blank
func (p Pattern) Blanks() []Field {
	return utils.Filter(p.AllFields(), Field.IsBlank)
}

// Returns a deep copy of the pattern
func (p Pattern) Clone() Pattern {
	out := Pattern{
		prefix: p.prefix,
		words:  make([][]Field, len(p.words)),
	}

	for i, word := range p.words {
		out.words[i] = append([]Field(nil), word...)
	}

	return out
}

// Returns the word and position within the word of a field
func (p Pattern) IndexField(id string) (int, int, error) {
	for wi, word := range p.words {
		for fi, field := range word {
			if field.ID == id {
				return wi, fi, nil
			}
		}
	}

	return -1, -1, utils.MakeError(ErrUnknownField, "field '%v' does not exist in the current pattern", id)
}

// Returns a field given its identifier
func (p Pattern) Field(id string) (Field, error) {
	wi, fi, err := p.IndexField(id)
	if err != nil {
		return Field{}, err
	}

	return p.words[wi][fi], nil
}

func (p Pattern) HasField(id string) bool {
	_, _, err := p.IndexField(id)
	return err == nil
}

// Returns a new pattern where the given blank field has the given type
func (p Pattern) SetFieldType(id string, ftype FieldType) (Pattern, error) {
	wi, fi, err := p.IndexField(id)
	if err != nil {
		return p, err
	}

	field := p.words[wi][fi]

	if !field.IsBlank() {
		return p, utils.MakeError(ErrFieldAlreadyTyped, "field '%v' is already %v", id, field.Type)
	}

	if ftype.IsBlank() {
		return p, utils.MakeError(ErrInvalidFieldType, "cannot assign a Blank type to field '%v'", id)
	}

	if err := ftype.validate(field.Len()); err != nil {
		return p, utils.MakeError(err, "field '%v'", id)
	}

	out := p.Clone()
	out.words[wi][fi].Type = ftype

	return out, nil
}

// Returns a new pattern where the given blank field is replaced by fields
// built from the templates. Templates take contiguous ranges starting at
// the original field's start bit, in template order, and their sizes must
// add up to the length of the original field
func (p Pattern) SplitField(id string, templates ...FieldTemplate) (Pattern, error) {
	wi, fi, err := p.IndexField(id)
	if err != nil {
		return p, err
	}

	field := p.words[wi][fi]

	if !field.IsBlank() {
		return p, utils.MakeError(ErrFieldNotSplittable, "field '%v' is already %v", id, field.Type)
	}

	if total := templatesLength(templates); total != field.Len() {
		return p, utils.MakeError(ErrSplitLengthMismatch, "field '%v' is %v bits long but the split fields add up to %v bits", id, field.Len(), total)
	}

	if err := p.checkTemplates(id, templates); err != nil {
		return p, err
	}

	out := p.Clone()
	word := make([]Field, 0, len(out.words[wi])+len(templates)-1)
	word = append(word, out.words[wi][:fi]...)

	start := field.Range.Start
	for _, template := range templates {
		f := template.toField(start, p.prefix)
		word = append(word, f)
		start = f.Range.End + 1
	}

	word = append(word, out.words[wi][fi+1:]...)
	out.words[wi] = word

	return out, nil
}

func (p Pattern) checkTemplates(replaced string, templates []FieldTemplate) error {
	ids := make(map[string]struct{}, len(templates))

	for _, template := range templates {
		if template.ID == "" || template.Size <= 0 {
			return utils.MakeError(ErrInvalidTemplate, "template '%v' must have an identifier and a positive size, got %v", template.ID, template.Size)
		}

		if _, seen := ids[template.ID]; seen || (template.ID != replaced && p.HasField(template.ID)) {
			return utils.MakeError(ErrDuplicateField, "'%v'", template.ID)
		}
		ids[template.ID] = struct{}{}

		if err := template.Type.validate(template.Size); err != nil {
			return utils.MakeError(err, "template '%v'", template.ID)
		}
	}

	return nil
}

// Checks every word is exactly partitioned by its fields: no gaps, no
// overlaps, fields ordered by start bit
func (p Pattern) Validate() error {
	if !validWordCount(len(p.words)) {
		return utils.MakeError(ErrInvalidWordCount, "pattern has %v words", len(p.words))
	}

	for wi, word := range p.words {
		var covered intsets.Sparse
		previousStart := -1

		for _, field := range word {
			if field.Range.Start <= previousStart {
				return utils.MakeError(ErrInvalidCoverage, "word %v: field '%v' is out of order", wi, field.ID)
			}
			previousStart = field.Range.Start

			for bit := field.Range.Start; bit <= field.Range.End; bit++ {
				if !covered.Insert(bit) {
					return utils.MakeError(ErrInvalidCoverage, "word %v: field '%v' overlaps bit %v", wi, field.ID, bit)
				}
			}
		}

		if covered.Len() != WordBits || covered.Min() != 0 || covered.Max() != WordBits-1 {
			return utils.MakeError(ErrInvalidCoverage, "word %v: fields cover %v", wi, covered.String())
		}
	}

	return nil
}

func (p Pattern) String() string {
	lines := utils.Map(p.words, func(word []Field) string {
		return utils.FormatSlice(word, ", ")
	})

	return strings.Join(lines, "\n")
}
