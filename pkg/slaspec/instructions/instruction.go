package instructions

import (
	"strings"

	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
	"github.com/Manu343726/sawfish/pkg/utils"
)

type InstructionState uint

const (
	// Not registered in any family
	InstructionState_Unattached InstructionState = iota
	// Registered, its pattern can still be refined
	InstructionState_Constructing
	// Its family tokens were aggregated, no further refinement allowed
	InstructionState_Resolved
)

func (s InstructionState) String() string {
	switch s {
	case InstructionState_Unattached:
		return "Unattached"
	case InstructionState_Constructing:
		return "Constructing"
	case InstructionState_Resolved:
		return "Resolved"
	}

	panic("unreachable")
}

// Index of an instruction within its family
type InstructionHandle int

// Refines an instruction. Kinds compose: a specific kind applies the
// general kind it extends and then resolves further fields
type Kind func(*Instruction) *Instruction

// An instruction being built within a family.
//
// Refinement methods chain and record the first error found. Once an
// instruction has an error every later refinement is ignored, and the error
// is reported when the family aggregates its tokens.
type Instruction struct {
	family  *Family
	handle  InstructionHandle
	name    string
	state   InstructionState
	pattern pattern.Pattern
	// label -> field identifier
	namedFields map[string]string
	display     string
	action      []string
	pcode       []string
	err         error
}

func (i *Instruction) Name() string {
	return i.name
}

func (i *Instruction) Handle() InstructionHandle {
	return i.handle
}

// Returns the family owning the instruction, nil if unattached
func (i *Instruction) Family() *Family {
	return i.family
}

func (i *Instruction) State() InstructionState {
	return i.state
}

func (i *Instruction) Pattern() pattern.Pattern {
	return i.pattern
}

// Returns the first error recorded while building the instruction
func (i *Instruction) Err() error {
	return i.err
}

func (i *Instruction) familyName() string {
	if i.family == nil {
		return ""
	}

	return i.family.Name()
}

func (i *Instruction) fail(field string, err error) *Instruction {
	if i.err == nil {
		i.err = &Diagnostic{
			Family:      i.familyName(),
			Instruction: i.name,
			Field:       field,
			Err:         err,
		}
	}

	return i
}

// Checks the instruction can still be refined
func (i *Instruction) refinable(field string) bool {
	if i.err != nil {
		return false
	}

	switch i.state {
	case InstructionState_Unattached:
		i.fail(field, ErrInstructionUnattached)
		return false
	case InstructionState_Resolved:
		i.fail(field, utils.MakeError(ErrInstructionResolved, "family tokens were already aggregated"))
		return false
	}

	return true
}

// Assigns a type to a blank field
func (i *Instruction) SetFieldType(id string, ftype pattern.FieldType) *Instruction {
	if !i.refinable(id) {
		return i
	}

	p, err := i.pattern.SetFieldType(id, ftype)
	if err != nil {
		return i.fail(id, err)
	}

	i.pattern = p
	return i
}

// Splits a blank field into the fields described by templates, starting from the field's start bit
func (i *Instruction) SplitField(id string, templates ...pattern.FieldTemplate) *Instruction {
	if !i.refinable(id) {
		return i
	}

	for _, template := range templates {
		if _, hasLabel := i.namedFields[template.ID]; hasLabel {
			return i.fail(id, utils.MakeError(ErrDuplicateFieldLabel, "new field '%v' collides with a label", template.ID))
		}
	}

	p, err := i.pattern.SplitField(id, templates...)
	if err != nil {
		return i.fail(id, err)
	}

	i.pattern = p
	return i
}

// Applies refinement kinds in order
func (i *Instruction) Apply(kinds ...Kind) *Instruction {
	for _, kind := range kinds {
		if i.err != nil {
			break
		}

		i = kind(i)
	}

	return i
}

// Gives a field a label usable in placeholders. The field must exist
func (i *Instruction) NameField(label string, id string) *Instruction {
	if !i.refinable(id) {
		return i
	}

	if _, hasLabel := i.namedFields[label]; hasLabel || i.pattern.HasField(label) {
		return i.fail(id, utils.MakeError(ErrDuplicateFieldLabel, "'%v'", label))
	}

	if !i.pattern.HasField(id) {
		return i.fail(id, utils.MakeError(pattern.ErrUnknownField, "cannot label '%v'", id))
	}

	i.namedFields[label] = id
	return i
}

// Sets the display text. Literal text is quoted, {field} placeholders become operands
func (i *Instruction) Display(display string) *Instruction {
	if i.refinable("") {
		i.display = display
	}

	return i
}

// Sets the disassembly action statements
func (i *Instruction) Action(statements ...string) *Instruction {
	if i.refinable("") {
		i.action = append([]string(nil), statements...)
	}

	return i
}

// Sets the pcode statements
func (i *Instruction) Pcode(statements ...string) *Instruction {
	if i.refinable("") {
		i.pcode = append([]string(nil), statements...)
	}

	return i
}

// Registers a sibling instruction in the same family starting from the
// current pattern, labels and text of this one
func (i *Instruction) Fork(name string) *Instruction {
	if i.family == nil {
		fork := &Instruction{name: name, namedFields: map[string]string{}}
		return fork.fail("", ErrInstructionUnattached)
	}

	fork := i.family.Register(name)
	if fork.err != nil {
		return fork
	}

	fork.pattern = i.pattern
	fork.display = i.display
	fork.action = append([]string(nil), i.action...)
	fork.pcode = append([]string(nil), i.pcode...)
	for label, id := range i.namedFields {
		fork.namedFields[label] = id
	}

	if i.err != nil {
		fork.err = &Diagnostic{
			Family:      fork.familyName(),
			Instruction: name,
			Err:         utils.MakeError(i.err, "forked from '%v'", i.name),
		}
	}

	return fork
}

// Returns the token name of a field given its identifier or label
func (i *Instruction) ResolveName(id string) (string, error) {
	if target, hasLabel := i.namedFields[id]; hasLabel {
		id = target
	}

	field, err := i.pattern.Field(id)
	if err != nil {
		return "", err
	}

	return field.TokenName(), nil
}

// Instruction text ready to be emitted
type Constructor struct {
	Family  string
	Name    string
	Display string
	// Match terms of every word
	Match [][]string
	Action []string
	Pcode  []string
}

// Returns the match constraint, with words separated by "; "
func (c Constructor) MatchString() string {
	return strings.Join(utils.Map(c.Match, func(terms []string) string {
		return strings.Join(terms, " & ")
	}), "; ")
}

func matchTerm(field pattern.Field) string {
	if field.Type.Kind() == pattern.FieldKind_Mask {
		return field.TokenName() + "=" + utils.FormatUintHex(uint64(field.Type.MaskValue()), field.Len())
	}

	return field.TokenName()
}

// Renders the instruction text, resolving every placeholder against its pattern
func (i *Instruction) Render() (Constructor, error) {
	if i.err != nil {
		return Constructor{}, i.err
	}

	renderAll := func(statements []string) ([]string, error) {
		out := make([]string, 0, len(statements))

		for _, statement := range statements {
			rendered, err := text.Format(text.Mode_Semantics, statement, i.ResolveName)
			if err != nil {
				return nil, err
			}

			out = append(out, rendered)
		}

		return out, nil
	}

	display, err := text.Format(text.Mode_Display, i.display, i.ResolveName)
	if err != nil {
		return Constructor{}, i.diagnose(err)
	}

	action, err := renderAll(i.action)
	if err != nil {
		return Constructor{}, i.diagnose(err)
	}

	pcode, err := renderAll(i.pcode)
	if err != nil {
		return Constructor{}, i.diagnose(err)
	}

	return Constructor{
		Family:  i.familyName(),
		Name:    i.name,
		Display: display,
		Match: utils.Map(i.pattern.Fields(), func(word []pattern.Field) []string {
			return utils.Map(word, matchTerm)
		}),
		Action: action,
		Pcode:  pcode,
	}, nil
}

func (i *Instruction) diagnose(err error) error {
	return &Diagnostic{
		Family:      i.familyName(),
		Instruction: i.name,
		Err:         err,
	}
}
