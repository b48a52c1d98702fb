package families

import (
	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
)

// Core MMR address of the interrupt mask register
const imaskAddress = "0x1FC02104:4"

func fieldType(id string, ftype pattern.FieldType) instructions.Kind {
	return func(i *instructions.Instruction) *instructions.Instruction {
		return i.SetFieldType(id, ftype)
	}
}

func fixed(id string, value uint16) instructions.Kind {
	return fieldType(id, pattern.Mask(value))
}

func flag(id string, set bool) instructions.Kind {
	if set {
		return fixed(id, 1)
	}

	return fixed(id, 0)
}

func opcode(value uint16) instructions.Kind {
	return fixed("opc", value)
}

// Splits the reg field into a fixed high bit and a register selector in the remaining bits
func splitReg(high uint16, selectorBits int, set registers.RegisterSet) instructions.Kind {
	return func(i *instructions.Instruction) *instructions.Instruction {
		return i.SplitField("reg", pattern.MSBFirst(
			pattern.Template("regH", 1, pattern.Mask(high)),
			pattern.Template("regL", selectorBits, pattern.Variable(set)),
		)...)
	}
}

func negate(negated bool) string {
	if negated {
		return "!"
	}

	return ""
}
