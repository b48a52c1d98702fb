package instructions

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progCtrl(t *testing.T) *Family {
	t.Helper()

	family, err := NewFamily(FamilyDescriptor{
		Name:        "ProgCtrl",
		Description: "Basic Program Sequencer Control Functions",
		Prefix:      "pgc",
		Base: [][]pattern.FieldTemplate{pattern.MSBFirst(
			pattern.Template("sig", 8, pattern.Mask(0x00)),
			pattern.Template("opc", 4, pattern.Blank()),
			pattern.Template("reg", 4, pattern.Blank()),
		)},
	})
	require.NoError(t, err)

	return family
}

func returnKind(opc uint16, reg uint16) Kind {
	return func(i *Instruction) *Instruction {
		return i.SetFieldType("opc", pattern.Mask(opc)).SetFieldType("reg", pattern.Mask(reg))
	}
}

func dregKind(i *Instruction) *Instruction {
	return i.SplitField("reg",
		pattern.Template("regL", 3, pattern.Variable(registers.RegisterSet_DReg)),
		pattern.Template("regH", 1, pattern.Mask(0)),
	)
}

func TestFixedOpcodeFamily(t *testing.T) {
	family := progCtrl(t)

	rts := family.Register("Return").
		Apply(returnKind(0x1, 0x0)).
		Display("RTS").
		Pcode(text.Op(text.Return("RETS")))
	require.NoError(t, rts.Err())
	assert.Equal(t, InstructionState_Constructing, rts.State())

	require.NoError(t, family.InitTokens())
	assert.Equal(t, InstructionState_Resolved, rts.State())

	tokens, err := family.Tokens(0)
	require.NoError(t, err)
	assert.Equal(t, []Token{
		{Name: "pgcReg", Range: pattern.NewBitRange(0, 3)},
		{Name: "pgcOpc", Range: pattern.NewBitRange(4, 7)},
		{Name: "pgcSig", Range: pattern.NewBitRange(8, 15)},
	}, tokens)

	constructors, err := family.Constructors()
	require.NoError(t, err)
	require.Len(t, constructors, 1)

	constructor := constructors[0]
	assert.Equal(t, "ProgCtrl", constructor.Family)
	assert.Equal(t, "Return", constructor.Name)
	assert.Equal(t, `"RTS"`, constructor.Display)
	assert.Equal(t, "pgcReg=0x0 & pgcOpc=0x1 & pgcSig=0x00", constructor.MatchString())
	require.Len(t, constructor.Match, 1)
	assert.Len(t, constructor.Match[0], 3)
	assert.Equal(t, []string{"return [RETS];"}, constructor.Pcode)
	assert.Empty(t, constructor.Action)

	attachments, err := family.Attachments()
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestMatchTermsUseMaskValues(t *testing.T) {
	family := progCtrl(t)
	family.Register("Return").Apply(returnKind(0x1, 0x4)).Display("RTE")
	require.NoError(t, family.InitTokens())

	constructors, err := family.Constructors()
	require.NoError(t, err)
	assert.Equal(t, "pgcReg=0x4 & pgcOpc=0x1 & pgcSig=0x00", constructors[0].MatchString())
}

func TestRegisterAttachmentIsShared(t *testing.T) {
	family := progCtrl(t)

	for i, opc := range []uint16{0x5, 0x6, 0x7} {
		family.Register("JumpCall").
			Apply(dregKind).
			SetFieldType("opc", pattern.Mask(opc)).
			Display("JUMP ({regL})").
			Pcode(text.Op(text.Goto("["+text.Field("regL")+"]")))

		require.NoError(t, family.Instructions()[i].Err())
	}

	require.NoError(t, family.InitTokens())

	attachments, err := family.Attachments()
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "pgcRegLDReg", attachments[0].Name)
	assert.Equal(t, []string{"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7"}, attachments[0].Registers)

	constructors, err := family.Constructors()
	require.NoError(t, err)
	assert.Equal(t, `"JUMP ("pgcRegLDReg")"`, constructors[0].Display)
	assert.Equal(t, []string{"goto [pgcRegLDReg];"}, constructors[0].Pcode)
	assert.Equal(t, "pgcRegLDReg & pgcRegH=0x0 & pgcOpc=0x5 & pgcSig=0x00", constructors[0].MatchString())
}

func TestUnresolvedFieldDetection(t *testing.T) {
	family := progCtrl(t)

	family.Register("Return").Apply(returnKind(0x1, 0x0)).Display("RTS")
	family.Register("Broken").SetFieldType("opc", pattern.Mask(0x2)).Display("BROKEN")

	err := family.InitTokens()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedField)
	assert.False(t, family.Aggregated())

	diagnostics := Diagnostics(err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "ProgCtrl", diagnostics[0].Family)
	assert.Equal(t, "Broken", diagnostics[0].Instruction)
	assert.Equal(t, "reg", diagnostics[0].Field)

	_, err = family.Tokens(0)
	assert.ErrorIs(t, err, ErrNotAggregated)
	_, err = family.Attachments()
	assert.ErrorIs(t, err, ErrNotAggregated)
	_, err = family.Constructors()
	assert.ErrorIs(t, err, ErrNotAggregated)
}

type instructionSpec struct {
	name  string
	build func(*Instruction) *Instruction
}

func syncSpecs() []instructionSpec {
	specs := []instructionSpec{}

	for _, reg := range []uint16{0x0, 0x3, 0x4} {
		specs = append(specs, instructionSpec{"Sync", returnKind(0x2, reg)})
	}
	for _, reg := range []uint16{0x0, 0x1, 0x2, 0x3, 0x4} {
		specs = append(specs, instructionSpec{"Return", returnKind(0x1, reg)})
	}
	for _, opc := range []uint16{0x5, 0x6} {
		specs = append(specs, instructionSpec{"JumpCall", func(i *Instruction) *Instruction {
			return i.Apply(dregKind).SetFieldType("opc", pattern.Mask(opc))
		}})
	}
	specs = append(specs, instructionSpec{"Raise", func(i *Instruction) *Instruction {
		return i.SetFieldType("opc", pattern.Mask(0x9)).SetFieldType("reg", pattern.UImm())
	}})

	return specs
}

func aggregate(t *testing.T, specs []instructionSpec) *Family {
	family := progCtrl(t)

	for _, spec := range specs {
		spec.build(family.Register(spec.name))
	}

	require.NoError(t, family.InitTokens())
	return family
}

func TestTokenDeterminism(t *testing.T) {
	specs := syncSpecs()
	reference := aggregate(t, specs)

	expectedTokens, err := reference.Tokens(0)
	require.NoError(t, err)
	expectedAttachments, err := reference.Attachments()
	require.NoError(t, err)

	random := rand.New(rand.NewSource(42))

	for round := 0; round < 10; round++ {
		shuffled := append([]instructionSpec(nil), specs...)
		random.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		family := aggregate(t, shuffled)

		tokens, err := family.Tokens(0)
		require.NoError(t, err)
		assert.Equal(t, expectedTokens, tokens, "round %v", round)

		attachments, err := family.Attachments()
		require.NoError(t, err)
		assert.Equal(t, expectedAttachments, attachments, "round %v", round)
	}
}

func TestTokenDeduplication(t *testing.T) {
	family := aggregate(t, syncSpecs())

	tokens, err := family.Tokens(0)
	require.NoError(t, err)

	assert.Equal(t, []Token{
		{Name: "pgcRegLDReg", Range: pattern.NewBitRange(0, 2)},
		{Name: "pgcReg", Range: pattern.NewBitRange(0, 3)},
		{Name: "pgcRegUImm", Range: pattern.NewBitRange(0, 3)},
		{Name: "pgcRegH", Range: pattern.NewBitRange(3, 3)},
		{Name: "pgcOpc", Range: pattern.NewBitRange(4, 7)},
		{Name: "pgcSig", Range: pattern.NewBitRange(8, 15)},
	}, tokens)

	set := make(TokenSet)
	assert.True(t, set.Insert(tokens[0]))
	assert.False(t, set.Insert(tokens[0]))
	assert.Len(t, set, 1)
}

func TestStickyError(t *testing.T) {
	family := progCtrl(t)

	instruction := family.Register("Bad").
		SetFieldType("nope", pattern.UImm()).
		SetFieldType("opc", pattern.Mask(0x1)).
		SetFieldType("reg", pattern.Mask(0x1))

	require.Error(t, instruction.Err())
	assert.ErrorIs(t, instruction.Err(), pattern.ErrUnknownField)

	var diagnostic *Diagnostic
	require.True(t, errors.As(instruction.Err(), &diagnostic))
	assert.Equal(t, "nope", diagnostic.Field)
	assert.Equal(t, "Bad", diagnostic.Instruction)

	// later refinements were ignored
	opc, err := instruction.Pattern().Field("opc")
	require.NoError(t, err)
	assert.True(t, opc.IsBlank())

	assert.ErrorIs(t, family.InitTokens(), pattern.ErrUnknownField)
}

func TestSplitLengthMismatchIsReported(t *testing.T) {
	family := progCtrl(t)

	family.Register("Short").SplitField("reg", pattern.Template("regL", 3, pattern.UImm()))

	err := family.InitTokens()
	assert.ErrorIs(t, err, pattern.ErrSplitLengthMismatch)
	assert.NotErrorIs(t, err, ErrUnresolvedField)
}

func TestForkStartsFromPartialPattern(t *testing.T) {
	family := progCtrl(t)

	general := family.Register("Push").Apply(dregKind)
	specific := general.Fork("PushImm").SetFieldType("opc", pattern.Mask(0x1))
	general.SetFieldType("opc", pattern.Mask(0x2))

	require.NoError(t, general.Err())
	require.NoError(t, specific.Err())
	assert.Equal(t, InstructionHandle(0), general.Handle())
	assert.Equal(t, InstructionHandle(1), specific.Handle())

	generalOpc, err := general.Pattern().Field("opc")
	require.NoError(t, err)
	specificOpc, err := specific.Pattern().Field("opc")
	require.NoError(t, err)

	assert.Equal(t, uint16(0x2), generalOpc.Type.MaskValue())
	assert.Equal(t, uint16(0x1), specificOpc.Type.MaskValue())
	assert.True(t, specific.Pattern().HasField("regL"))

	handle, err := family.Instruction(1)
	require.NoError(t, err)
	assert.Same(t, specific, handle)

	_, err = family.Instruction(2)
	assert.ErrorIs(t, err, ErrUnknownInstruction)
}

func TestResolvedInstructionsCannotBeRefined(t *testing.T) {
	family := progCtrl(t)
	rts := family.Register("Return").Apply(returnKind(0x1, 0x0))
	require.NoError(t, family.InitTokens())

	rts.Display("changed")
	assert.ErrorIs(t, rts.Err(), ErrInstructionResolved)

	_, err := family.Constructors()
	assert.ErrorIs(t, err, ErrInstructionResolved)

	late := family.Register("Late")
	assert.ErrorIs(t, late.Err(), ErrAlreadyAggregated)
	assert.Len(t, family.Instructions(), 1)

	assert.ErrorIs(t, family.InitTokens(), ErrAlreadyAggregated)
}

func TestUnattachedInstruction(t *testing.T) {
	var instruction Instruction

	instruction.SetFieldType("opc", pattern.UImm())
	assert.ErrorIs(t, instruction.Err(), ErrInstructionUnattached)
	assert.Equal(t, InstructionState_Unattached, instruction.State())

	fork := (&Instruction{}).Fork("fork")
	assert.ErrorIs(t, fork.Err(), ErrInstructionUnattached)
}

func TestConflictingTokens(t *testing.T) {
	family, err := NewFamily(FamilyDescriptor{
		Name:   "Wide",
		Prefix: "w",
		Base:   [][]pattern.FieldTemplate{nil, nil},
	})
	require.NoError(t, err)

	family.Register("Low").
		SplitField(pattern.BlankWordID(0), pattern.Template("imm", 8, pattern.UImm()), pattern.Template("sig", 8, pattern.Mask(1))).
		SetFieldType(pattern.BlankWordID(1), pattern.Mask(0))
	family.Register("High").
		SetFieldType(pattern.BlankWordID(0), pattern.Mask(2)).
		SplitField(pattern.BlankWordID(1), pattern.Template("imm", 8, pattern.UImm()), pattern.Template("pad", 8, pattern.Mask(0)))

	err = family.InitTokens()
	assert.ErrorIs(t, err, ErrConflictingToken)

	diagnostics := Diagnostics(err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "High", diagnostics[0].Instruction)
	assert.Equal(t, "imm", diagnostics[0].Field)
}

func TestNamedFields(t *testing.T) {
	family := progCtrl(t)

	family.Register("Push").
		Apply(dregKind).
		SetFieldType("opc", pattern.Mask(0x4)).
		NameField("src", "regL").
		Display("[--SP] = {src}").
		Pcode(text.Push(text.Field("src"), 4)...)

	require.NoError(t, family.InitTokens())

	constructors, err := family.Constructors()
	require.NoError(t, err)
	assert.Equal(t, `"[--SP] = "pgcRegLDReg`, constructors[0].Display)
	assert.Equal(t, []string{"SP = SP - 4;", "*[ram]:4 SP = pgcRegLDReg;"}, constructors[0].Pcode)

	duplicate := progCtrl(t).Register("Dup").Apply(dregKind).NameField("regL", "opc")
	assert.ErrorIs(t, duplicate.Err(), ErrDuplicateFieldLabel)

	missing := progCtrl(t).Register("Missing").NameField("src", "regL")
	assert.ErrorIs(t, missing.Err(), pattern.ErrUnknownField)
}

func TestSplitField_CollidesWithLabel(t *testing.T) {
	family := progCtrl(t)

	shadowed := family.Register("Shadowed").
		NameField("lo", "opc").
		SplitField("reg", pattern.Template("lo", 2, pattern.UImm()), pattern.Template("hi", 2, pattern.UImm()))
	assert.ErrorIs(t, shadowed.Err(), ErrDuplicateFieldLabel)

	diagnostics := Diagnostics(family.InitTokens())
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "Shadowed", diagnostics[0].Instruction)
	assert.Equal(t, "reg", diagnostics[0].Field)
}

func TestUnknownPlaceholderIsReported(t *testing.T) {
	family := progCtrl(t)
	family.Register("Return").Apply(returnKind(0x1, 0x0)).Display("RT{nope}")

	err := family.InitTokens()
	assert.ErrorIs(t, err, text.ErrUnknownPlaceholder)

	diagnostics := Diagnostics(err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "Return", diagnostics[0].Instruction)
}

func TestPcodeOps(t *testing.T) {
	family := progCtrl(t)

	family.AddPcodeOp("idle")
	family.AddPcodeOp("csync")
	family.AddPcodeOp("idle")

	assert.Equal(t, []string{"idle", "csync"}, family.PcodeOps())
}

func TestNewFamily_Errors(t *testing.T) {
	_, err := NewFamily(FamilyDescriptor{Name: "NoPrefix"})
	assert.ErrorIs(t, err, ErrInvalidFamily)

	_, err = NewFamily(FamilyDescriptor{Name: "Three", Prefix: "t", Base: make([][]pattern.FieldTemplate, 3)})
	assert.ErrorIs(t, err, pattern.ErrInvalidWordCount)

	_, err = NewFamily(FamilyDescriptor{Name: "Short", Prefix: "s", Base: [][]pattern.FieldTemplate{{pattern.Template("sig", 8, pattern.Mask(0))}}})
	assert.ErrorIs(t, err, pattern.ErrSplitLengthMismatch)
}

func TestDiagnosticMessage(t *testing.T) {
	d := &Diagnostic{Family: "ProgCtrl", Instruction: "Return", Field: "reg", Err: ErrUnresolvedField}
	assert.Equal(t, "family 'ProgCtrl', instruction 'Return', field 'reg': unresolved field at aggregation", d.Error())

	d = &Diagnostic{Family: "ProgCtrl", Err: ErrAlreadyAggregated}
	assert.Equal(t, "family 'ProgCtrl': family tokens already aggregated", d.Error())

	assert.Nil(t, Diagnostics(nil))
	assert.Len(t, Diagnostics(errors.Join(d, d)), 2)
}
