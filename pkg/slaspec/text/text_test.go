package text

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoSuchField = errors.New("no such field")

func resolver(fields map[string]string) Resolver {
	return func(id string) (string, error) {
		if name, ok := fields[id]; ok {
			return name, nil
		}

		return "", errNoSuchField
	}
}

func TestFormat(t *testing.T) {
	resolve := resolver(map[string]string{
		"reg": "pgcRegDReg",
		"imm": "brcOffsetSImm",
	})

	tests := []struct {
		name     string
		mode     Mode
		input    string
		expected string
	}{
		{"plain display", Mode_Display, "RTS", `"RTS"`},
		{"plain semantics", Mode_Semantics, "return [RETS];", "return [RETS];"},
		{"empty", Mode_Display, "", ""},
		{"field in display", Mode_Display, "JUMP ({reg})", `"JUMP ("pgcRegDReg")"`},
		{"field only", Mode_Display, "{reg}", "pgcRegDReg"},
		{"field in semantics", Mode_Semantics, "CC = {reg} == 0;", "CC = pgcRegDReg == 0;"},
		{"local", Mode_Semantics, "{$tmp} = {imm};", "tmp = brcOffsetSImm;"},
		{"escaped braces display", Mode_Display, "{{x}}", `"{x}"`},
		{"escaped braces semantics", Mode_Semantics, "if (CC) {{ goto {imm}; }}", "if (CC) { goto brcOffsetSImm; }"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Format(test.mode, test.input, resolve)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestFormat_Errors(t *testing.T) {
	resolve := resolver(map[string]string{"reg": "pgcRegDReg"})

	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"unknown field", "{nope}", ErrUnknownPlaceholder},
		{"empty placeholder", "{}", ErrUnknownPlaceholder},
		{"unclosed placeholder", "R = {reg", ErrUnbalancedBrace},
		{"single closing brace", "R = reg}", ErrUnbalancedBrace},
		{"nested placeholder", "{a{reg}}", ErrUnbalancedBrace},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Format(Mode_Semantics, test.input, resolve)
			assert.ErrorIs(t, err, test.expected)
		})
	}

	_, err := Format(Mode_Display, "{reg}", nil)
	assert.ErrorIs(t, err, ErrUnknownPlaceholder)

	_, err = Format(Mode_Display, `R = "{reg}"`, resolve)
	assert.ErrorIs(t, err, ErrQuoteInDisplay)

	semantics, err := Format(Mode_Semantics, `R = "{reg}"`, resolve)
	require.NoError(t, err)
	assert.Equal(t, `R = "pgcRegDReg"`, semantics)
}

func TestPlaceholders(t *testing.T) {
	ids, err := Placeholders("{dst} = {src} + {$tmp} {{lit}}")
	require.NoError(t, err)
	assert.Equal(t, []string{"dst", "src"}, ids)

	_, err = Placeholders("{dst")
	assert.ErrorIs(t, err, ErrUnbalancedBrace)
}

func TestEscape(t *testing.T) {
	escaped := Escape("{a}")
	assert.Equal(t, "{{a}}", escaped)

	actual, err := Format(Mode_Semantics, escaped, nil)
	require.NoError(t, err)
	assert.Equal(t, "{a}", actual)
}

func TestPcodeHelpers(t *testing.T) {
	assert.Equal(t, "return [RETS];", Op(Return("RETS")))
	assert.Equal(t, "idle()", Macro("idle"))
	assert.Equal(t, "sext(x, 2)", Macro("sext", "x", "2"))
	assert.Equal(t, "local tmp:4", Local("tmp", 4))
	assert.Equal(t, "*[ram]:4 {reg}", Ptr(4, Field("reg")))
	assert.Equal(t, "*[register]:2 0x10", PtrIn("register", 2, "0x10"))
	assert.Equal(t, "if (CC) goto {imm}", IfGoto("CC", Field("imm")))
	assert.Equal(t, "goto <skip>", Goto(Label("skip")))
	assert.Equal(t, "call [P0]", Call("[P0]"))
	assert.Equal(t, "{$addr}", Var("addr"))

	assert.Equal(t, []string{
		"SP = SP - 4;",
		"*[ram]:4 SP = {reg};",
	}, Push(Field("reg"), 4))

	assert.Equal(t, []string{
		"{reg} = *[ram]:4 SP;",
		"SP = SP + 4;",
	}, Pop(Field("reg"), 4))
}
