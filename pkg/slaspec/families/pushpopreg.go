package families

import (
	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
)

// A register, or set of registers, that can be pushed to and popped from the stack
type stackOperand struct {
	group uint16
	// Resolves the reg field
	kind instructions.Kind
	// Register as written in display and pcode text
	register string
}

func stackOperands() []stackOperand {
	variable := func(set registers.RegisterSet) instructions.Kind {
		return fieldType("reg", pattern.Variable(set))
	}

	return []stackOperand{
		{0, variable(registers.RegisterSet_DReg), text.Field("reg")},
		{1, variable(registers.RegisterSet_PReg), text.Field("reg")},
		{2, splitReg(0, 2, registers.RegisterSet_IReg), text.Field("regL")},
		{2, splitReg(1, 2, registers.RegisterSet_LReg), text.Field("regL")},
		{3, splitReg(0, 2, registers.RegisterSet_MReg), text.Field("regL")},
		{3, splitReg(1, 2, registers.RegisterSet_BReg), text.Field("regL")},
		{4, fixed("reg", 6), "ASTAT"},
		{4, fixed("reg", 7), "RETS"},
		{6, variable(registers.RegisterSet_SyRg2), text.Field("reg")},
		{7, variable(registers.RegisterSet_SyRg3), text.Field("reg")},
	}
}

func PushPopReg() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "PushPopReg",
		Description: "Push or Pop register, to and from the stack pointed to by SP",
		Prefix:      "ppr",
		Base: [][]pattern.FieldTemplate{pattern.MSBFirst(
			pattern.Template("sig", 9, pattern.Mask(0x002)),
			pattern.Template("w", 1, pattern.Blank()),
			pattern.Template("grp", 3, pattern.Blank()),
			pattern.Template("reg", 3, pattern.Blank()),
		)},
	}, func(f *instructions.Family) {
		for _, operand := range stackOperands() {
			pop := f.Register("Pop").Apply(fixed("grp", operand.group), operand.kind)
			push := pop.Fork("Push")

			pop.Apply(flag("w", false)).
				Display(operand.register + " = [SP++]").
				Pcode(text.Pop(operand.register, 4)...)
			push.Apply(flag("w", true)).
				Display("[--SP] = " + operand.register).
				Pcode(text.Push(operand.register, 4)...)
		}
	})
}
