package emitter

import (
	"strings"
	"testing"

	"github.com/Manu343726/sawfish/pkg/slaspec/families"
	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func progCtrl(t *testing.T) *instructions.Family {
	family, err := instructions.NewFamily(instructions.FamilyDescriptor{
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

	family.AddPcodeOp("idle")

	family.Register("Return").
		SetFieldType("opc", pattern.Mask(0x1)).
		SetFieldType("reg", pattern.Mask(0x0)).
		Display("RTS").
		Pcode(text.Op(text.Return("RETS")))

	family.Register("Jump").
		SetFieldType("opc", pattern.Mask(0x5)).
		SplitField("reg", pattern.MSBFirst(
			pattern.Template("regH", 1, pattern.Mask(0)),
			pattern.Template("regL", 3, pattern.Variable(registers.RegisterSet_PReg)),
		)...).
		Display("JUMP ({regL})").
		Pcode(text.Op(text.Goto("[" + text.Field("regL") + "]")))

	family.Register("Idle").
		SetFieldType("opc", pattern.Mask(0x2)).
		SetFieldType("reg", pattern.Mask(0x0)).
		Display("IDLE").
		Pcode(text.Op(text.Macro("idle")))

	return family
}

func TestFamily(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	family := progCtrl(t)
	require.NoError(t, family.InitTokens())

	var out strings.Builder
	require.NoError(t, emitter.Family(&out, family))

	assert.Equal(t, lines(
		"# ProgCtrl: Basic Program Sequencer Control Functions",
		"",
		"define token pgcInstr16 (16)",
		"\tpgcRegLPReg = (0, 2)",
		"\tpgcReg = (0, 3)",
		"\tpgcRegH = (3, 3)",
		"\tpgcOpc = (4, 7)",
		"\tpgcSig = (8, 15)",
		";",
		"",
		"define pcodeop idle;",
		"",
		"attach variables [ pgcRegLPReg ] [ P0 P1 P2 P3 P4 P5 SP FP ];",
		"",
		`ProgCtrl:^"Return" "RTS"`,
		"\tis pgcReg=0x0 & pgcOpc=0x1 & pgcSig=0x00",
		"{",
		"\treturn [RETS];",
		"}",
		"",
		`ProgCtrl:^"Jump" "JUMP ("pgcRegLPReg")"`,
		"\tis pgcRegLPReg & pgcRegH=0x0 & pgcOpc=0x5 & pgcSig=0x00",
		"{",
		"\tgoto [pgcRegLPReg];",
		"}",
		"",
		`ProgCtrl:^"Idle" "IDLE"`,
		"\tis pgcReg=0x0 & pgcOpc=0x2 & pgcSig=0x00",
		"{",
		"\tidle();",
		"}",
	), out.String())
}

func TestFamily_MultiWordSignedAndAction(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	family, err := instructions.NewFamily(instructions.FamilyDescriptor{
		Name:   "Wide",
		Prefix: "wde",
		Base: [][]pattern.FieldTemplate{
			pattern.MSBFirst(
				pattern.Template("sig", 4, pattern.Mask(0xc)),
				pattern.Template("imm", 12, pattern.Blank()),
			),
			nil,
		},
	})
	require.NoError(t, err)

	family.Register("Load").
		SetFieldType("imm", pattern.SImm()).
		SetFieldType(pattern.BlankWordID(1), pattern.UImm()).
		Display("LOAD {imm}, {w1}").
		Action(text.Op(text.Copy("addr", "inst_start + "+text.Field("imm"))))

	require.NoError(t, family.InitTokens())

	var out strings.Builder
	require.NoError(t, emitter.Family(&out, family))

	assert.Equal(t, lines(
		"# Wide",
		"",
		"define token wdeInstr16 (16)",
		"\twdeImmSImm = (0, 11) signed",
		"\twdeSig = (12, 15)",
		";",
		"",
		"define token wdeInstr32 (16)",
		"\twdeW1UImm = (0, 15)",
		";",
		"",
		`Wide:^"Load" "LOAD "wdeImmSImm", "wdeW1UImm`,
		"\tis wdeImmSImm & wdeSig=0xc; wdeW1UImm",
		"[",
		"\taddr = inst_start + wdeImmSImm;",
		"]",
		"{}",
	), out.String())
}

func TestFamily_FourWords(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	family, err := families.Jump32()
	require.NoError(t, err)
	require.NoError(t, family.InitTokens())

	var out strings.Builder
	require.NoError(t, emitter.Family(&out, family))

	tail := "; jmpImmLUImm; jmpUnusedUImm"
	assert.Equal(t, lines(
		"# Jump32: Jump/Call to 32-bit Immediate",
		"",
		"define token jmpInstr16 (16)",
		"\tjmpRel = (0, 0)",
		"\tjmpMask8z = (1, 8)",
		"\tjmpC = (9, 9)",
		"\tjmpSig = (10, 15)",
		";",
		"",
		"define token jmpInstr32 (16)",
		"\tjmpImmHSImm = (0, 15) signed",
		"\tjmpImmHUImm = (0, 15)",
		";",
		"",
		"define token jmpInstr48 (16)",
		"\tjmpImmLUImm = (0, 15)",
		";",
		"",
		"define token jmpInstr64 (16)",
		"\tjmpUnusedUImm = (0, 15)",
		";",
		"",
		`Jump32:^"JumpAbs" "JUMP.A "addr`,
		"\tis jmpRel=0x0 & jmpMask8z=0x00 & jmpC=0x0 & jmpSig=0x37; jmpImmHUImm"+tail,
		"[",
		"\taddr = (jmpImmHUImm << 16) | jmpImmLUImm;",
		"]",
		"{",
		"\tgoto addr;",
		"}",
		"",
		`Jump32:^"JumpAbs" "JUMP "addr`,
		"\tis jmpRel=0x1 & jmpMask8z=0x00 & jmpC=0x0 & jmpSig=0x37; jmpImmHSImm"+tail,
		"[",
		"\taddr = inst_start + ((jmpImmHSImm << 16) | jmpImmLUImm);",
		"]",
		"{",
		"\tgoto addr;",
		"}",
		"",
		`Jump32:^"Call" "CALL.A "addr`,
		"\tis jmpRel=0x0 & jmpMask8z=0x00 & jmpC=0x1 & jmpSig=0x37; jmpImmHUImm"+tail,
		"[",
		"\taddr = (jmpImmHUImm << 16) | jmpImmLUImm;",
		"]",
		"{",
		"\tRETS = inst_next;",
		"\tcall addr;",
		"}",
		"",
		`Jump32:^"Call" "CALL "addr`,
		"\tis jmpRel=0x1 & jmpMask8z=0x00 & jmpC=0x1 & jmpSig=0x37; jmpImmHSImm"+tail,
		"[",
		"\taddr = inst_start + ((jmpImmHSImm << 16) | jmpImmLUImm);",
		"]",
		"{",
		"\tRETS = inst_next;",
		"\tcall addr;",
		"}",
	), out.String())
}

func TestFamily_NotAggregated(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	var out strings.Builder
	err = emitter.Family(&out, progCtrl(t))
	assert.ErrorIs(t, err, instructions.ErrNotAggregated)
	assert.Empty(t, out.String())
}

func TestFamily_IsDeterministic(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	render := func() string {
		family := progCtrl(t)
		require.NoError(t, family.InitTokens())

		var out strings.Builder
		require.NoError(t, emitter.Family(&out, family))
		return out.String()
	}

	first := render()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, render())
	}
}

func TestMainFile(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, emitter.Main(&out, DefaultHeader()))

	assert.Equal(t, lines(
		"define endian=little;",
		"define alignment=2;",
		"",
		"define space ram type=ram_space size=4 default;",
		"define space register type=register_space size=2;",
		"",
		`@include "includes/registers.sinc"`,
		"",
		`@include "includes/instructions.sinc"`,
	), out.String())
}

func TestIncludes(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, emitter.Includes(&out, []IncludeGroup{
		{Bits: 16, Files: []string{"instr16/NOP16.sinc", "instr16/ProgCtrl.sinc"}},
		{Bits: 32, Files: []string{"instr32/NOP32.sinc"}},
		{Bits: 64},
	}))

	assert.Equal(t, lines(
		"## 16-bits instructions ##",
		"",
		`@include "instr16/NOP16.sinc"`,
		`@include "instr16/ProgCtrl.sinc"`,
		"",
		"## 32-bits instructions ##",
		"",
		`@include "instr32/NOP32.sinc"`,
	), out.String())

	out.Reset()
	require.NoError(t, emitter.Includes(&out, []IncludeGroup{{Bits: 16}, {Bits: 32}}))
	assert.Empty(t, out.String())
}

func TestRegisters(t *testing.T) {
	emitter, err := NewEmitter()
	require.NoError(t, err)

	catalog := registers.NewCatalogDescriptor(registers.Catalog.AllSets(), []*registers.BankDescriptor{
		{Description: "Pointer registers", Offset: 0x20, Size: 4, Registers: []string{"P0", "P1"}},
		{Description: "Data register low bytes", Offset: 0x00, Size: 1, Registers: []string{"R0.B", "", "", ""}},
	})

	var out strings.Builder
	require.NoError(t, emitter.Registers(&out, &catalog))

	assert.Equal(t, lines(
		"# Pointer registers",
		"define register offset=0x20 size=4 [ P0 P1 ];",
		"",
		"# Data register low bytes",
		"define register offset=0x00 size=1 [ R0.B _ _ _ ];",
	), out.String())
}

func TestTokenName(t *testing.T) {
	assert.Equal(t, "pgcInstr16", TokenName("pgc", 0))
	assert.Equal(t, "mnopInstr32", TokenName("mnop", 1))
	assert.Equal(t, "xInstr64", TokenName("x", 3))
}
