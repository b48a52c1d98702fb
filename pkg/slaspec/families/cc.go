package families

import (
	"fmt"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
)

func CC2Dreg() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "CC2Dreg",
		Description: "Move CC conditional bit, to and from Dreg",
		Prefix:      "c2d",
		Base: [][]pattern.FieldTemplate{pattern.MSBFirst(
			pattern.Template("sig", 11, pattern.Mask(0x010)),
			pattern.Template("opc", 2, pattern.Blank()),
			pattern.Template("reg", 3, pattern.Blank()),
		)},
	}, func(f *instructions.Family) {
		dreg := fieldType("reg", pattern.Variable(registers.RegisterSet_DReg))

		f.Register("CCToDreg").
			Apply(opcode(0x0), dreg).
			Display("{reg} = CC").
			Pcode(text.Op(text.Copy(text.Field("reg"), text.Macro("zext", "CC"))))
		f.Register("MvToCC").
			Apply(opcode(0x1), dreg).
			Display("CC = {reg}").
			Pcode(text.Op(text.Copy("CC", text.Field("reg")+" != 0")))
		f.Register("CCToDreg").
			Apply(opcode(0x2), dreg).
			Display("{reg} = !CC").
			Pcode(text.Op(text.Copy(text.Field("reg"), text.Macro("zext", "!CC"))))
		f.Register("MvToCC").
			Apply(opcode(0x3), fixed("reg", 0x0)).
			Display("CC = !CC").
			Pcode(text.Op(text.Copy("CC", "!CC")))
	})
}

func CCMV() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "CCMV",
		Description: "Conditional Move",
		Prefix:      "cmv",
		Base: [][]pattern.FieldTemplate{pattern.MSBFirst(
			pattern.Template("sig", 7, pattern.Mask(0x03)),
			pattern.Template("t", 1, pattern.Blank()),
			pattern.Template("d", 1, pattern.Blank()),
			pattern.Template("s", 1, pattern.Blank()),
			pattern.Template("dst", 3, pattern.Blank()),
			pattern.Template("src", 3, pattern.Blank()),
		)},
	}, func(f *instructions.Family) {
		selector := func(id string, pointer bool) instructions.Kind {
			if pointer {
				return fieldType(id, pattern.Variable(registers.RegisterSet_PReg))
			}

			return fieldType(id, pattern.Variable(registers.RegisterSet_DReg))
		}

		for _, cc := range []bool{false, true} {
			for _, pointerDst := range []bool{false, true} {
				for _, pointerSrc := range []bool{false, true} {
					f.Register("MvRegToRegCond").
						Apply(
							flag("t", cc),
							flag("d", pointerDst),
							flag("s", pointerSrc),
							selector("dst", pointerDst),
							selector("src", pointerSrc),
						).
						Display(fmt.Sprintf("IF %vCC {dst} = {src}", negate(!cc))).
						Pcode(
							text.Op(text.IfGoto(negate(cc)+"CC", text.Label("skip"))),
							text.Op(text.Copy(text.Field("dst"), text.Field("src"))),
							text.Label("skip"),
						)
				}
			}
		}
	})
}
