package families

import (
	"fmt"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
)

// Computes the PC relative target of a branch into the addr local
func branchTarget(offset string) string {
	return text.Op(text.Copy("addr", fmt.Sprintf("inst_start + %v * 2", text.Field(offset))))
}

func BrCC() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "BrCC",
		Description: "Conditional Branch PC relative on CC",
		Prefix:      "brc",
		Base: [][]pattern.FieldTemplate{pattern.MSBFirst(
			pattern.Template("sig", 4, pattern.Mask(0x1)),
			pattern.Template("t", 1, pattern.Blank()),
			pattern.Template("b", 1, pattern.Blank()),
			pattern.Template("off", 10, pattern.SImm()),
		)},
	}, func(f *instructions.Family) {
		for _, cc := range []bool{false, true} {
			for _, predicted := range []bool{false, true} {
				prediction := ""
				if predicted {
					prediction = " (BP)"
				}

				f.Register("BrCC").
					Apply(flag("t", cc), flag("b", predicted)).
					Display(fmt.Sprintf("IF %vCC JUMP %v%v", negate(!cc), text.Var("addr"), prediction)).
					Action(branchTarget("off")).
					Pcode(text.Op(text.IfGoto(negate(!cc)+"CC", "addr")))
			}
		}
	})
}

func UJump() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "UJump",
		Description: "Unconditional Branch PC relative with 12bit offset",
		Prefix:      "ujp",
		Base: [][]pattern.FieldTemplate{pattern.MSBFirst(
			pattern.Template("sig", 4, pattern.Mask(0x2)),
			pattern.Template("off", 12, pattern.SImm()),
		)},
	}, func(f *instructions.Family) {
		f.Register("JumpAbs").
			Display("JUMP.S " + text.Var("addr")).
			Action(branchTarget("off")).
			Pcode(text.Op(text.Goto("addr")))
	})
}
