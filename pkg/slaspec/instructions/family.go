package instructions

import (
	"errors"
	"slices"

	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/utils"
)

// Describes an instruction family: a group of instructions sharing a width and a base encoding
type FamilyDescriptor struct {
	// Family name, used as the constructor table of its instructions
	Name        string
	Description string
	// Prefix of every token name declared by the family
	Prefix string
	// Base pattern, one list of templates per word. Templates fill each word from bit 0
	Base [][]pattern.FieldTemplate
}

// Owns the instructions of a family and, once aggregated, their tokens and attachments
type Family struct {
	descriptor   FamilyDescriptor
	base         pattern.Pattern
	instructions []*Instruction
	pcodeOps     []string
	tokens       TokenFamily
	attachments  map[string]TokenVar
	aggregated   bool
}

func NewFamily(descriptor FamilyDescriptor) (*Family, error) {
	if descriptor.Name == "" || descriptor.Prefix == "" {
		return nil, utils.MakeError(ErrInvalidFamily, "family needs a name and a token prefix, got name '%v' and prefix '%v'", descriptor.Name, descriptor.Prefix)
	}

	base, err := pattern.NewPatternFrom(descriptor.Prefix, descriptor.Base...)
	if err != nil {
		return nil, &Diagnostic{Family: descriptor.Name, Err: err}
	}

	return &Family{
		descriptor:  descriptor,
		base:        base,
		tokens:      newTokenFamily(),
		attachments: make(map[string]TokenVar),
	}, nil
}

func (f *Family) Name() string {
	return f.descriptor.Name
}

func (f *Family) Description() string {
	return f.descriptor.Description
}

func (f *Family) Prefix() string {
	return f.descriptor.Prefix
}

// Returns the pattern every instruction of the family starts from
func (f *Family) Base() pattern.Pattern {
	return f.base
}

// Returns the number of encoding words of the family instructions
func (f *Family) Words() int {
	return f.base.Words()
}

// Returns the instructions in registration order
func (f *Family) Instructions() []*Instruction {
	return slices.Clone(f.instructions)
}

func (f *Family) Instruction(handle InstructionHandle) (*Instruction, error) {
	if handle < 0 || int(handle) >= len(f.instructions) {
		return nil, utils.MakeError(ErrUnknownInstruction, "family '%v' has no instruction with handle %v", f.Name(), handle)
	}

	return f.instructions[handle], nil
}

// Declares a user defined pcode operation. Repeated declarations are ignored
func (f *Family) AddPcodeOp(op string) {
	if !slices.Contains(f.pcodeOps, op) {
		f.pcodeOps = append(f.pcodeOps, op)
	}
}

// Returns the declared pcode operations in declaration order
func (f *Family) PcodeOps() []string {
	return slices.Clone(f.pcodeOps)
}

// Appends a new instruction starting from the family base pattern
func (f *Family) Register(name string) *Instruction {
	instruction := &Instruction{
		family:      f,
		name:        name,
		pattern:     f.base,
		namedFields: make(map[string]string),
	}

	if f.aggregated {
		return instruction.fail("", utils.MakeError(ErrAlreadyAggregated, "cannot register new instructions"))
	}

	instruction.handle = InstructionHandle(len(f.instructions))
	instruction.state = InstructionState_Constructing
	f.instructions = append(f.instructions, instruction)

	return instruction
}

func (f *Family) Aggregated() bool {
	return f.aggregated
}

// Collects the tokens and attachments of every instruction. Must be called
// once, after every instruction is fully built.
//
// On failure the family stays unaggregated and every problem found is
// returned as a joined list of diagnostics.
func (f *Family) InitTokens() error {
	if f.aggregated {
		return &Diagnostic{Family: f.Name(), Err: ErrAlreadyAggregated}
	}

	tokens := newTokenFamily()
	attachments := make(map[string]TokenVar)
	// token name -> word and definition of its first occurrence
	type declaration struct {
		word  int
		token Token
	}
	declared := make(map[string]declaration)

	var diagnostics []error

	for _, instruction := range f.instructions {
		if instruction.err != nil {
			diagnostics = append(diagnostics, instruction.err)
			continue
		}

		diagnose := func(field string, err error) {
			diagnostics = append(diagnostics, &Diagnostic{
				Family:      f.Name(),
				Instruction: instruction.name,
				Field:       field,
				Err:         err,
			})
		}

		for wi, word := range instruction.pattern.Fields() {
			for _, field := range word {
				if field.IsBlank() {
					diagnose(field.ID, utils.MakeError(ErrUnresolvedField, "%v bits %v of word %v were never typed", field.Len(), field.Range, wi))
					continue
				}

				token := NewToken(field)

				if previous, seen := declared[token.Name]; seen && (previous.word != wi || previous.token != token) {
					diagnose(field.ID, utils.MakeError(ErrConflictingToken, "'%v' is declared as %v in word %v and as %v in word %v", token.Name, previous.token, previous.word, token, wi))
					continue
				} else if !seen {
					declared[token.Name] = declaration{word: wi, token: token}
				}

				tokens[wi].Insert(token)

				if field.IsVariable() {
					if _, attached := attachments[token.Name]; attached {
						continue
					}

					variable, err := NewTokenVar(field)
					if err != nil {
						diagnose(field.ID, err)
						continue
					}
					attachments[variable.Name] = variable
				}
			}
		}

		if _, err := instruction.Render(); err != nil {
			diagnostics = append(diagnostics, err)
		}
	}

	if len(diagnostics) > 0 {
		return errors.Join(diagnostics...)
	}

	f.tokens = tokens
	f.attachments = attachments
	f.aggregated = true

	for _, instruction := range f.instructions {
		instruction.state = InstructionState_Resolved
	}

	return nil
}

// Returns the sorted tokens of a word
func (f *Family) Tokens(word int) ([]Token, error) {
	if !f.aggregated {
		return nil, utils.MakeError(ErrNotAggregated, "family '%v'", f.Name())
	}

	if word < 0 || word >= f.Words() {
		return nil, utils.MakeError(pattern.ErrInvalidWordCount, "family '%v' has %v words, requested word %v", f.Name(), f.Words(), word)
	}

	return f.tokens[word].Sorted(), nil
}

// Returns the register attachments sorted by token name
func (f *Family) Attachments() ([]TokenVar, error) {
	if !f.aggregated {
		return nil, utils.MakeError(ErrNotAggregated, "family '%v'", f.Name())
	}

	return utils.Map(utils.SortedKeys(f.attachments), func(name string) TokenVar {
		return f.attachments[name]
	}), nil
}

// Returns the rendered constructors of every instruction in registration order
func (f *Family) Constructors() ([]Constructor, error) {
	if !f.aggregated {
		return nil, utils.MakeError(ErrNotAggregated, "family '%v'", f.Name())
	}

	constructors := make([]Constructor, 0, len(f.instructions))

	for _, instruction := range f.instructions {
		constructor, err := instruction.Render()
		if err != nil {
			return nil, err
		}

		constructors = append(constructors, constructor)
	}

	return constructors, nil
}
