package families

import (
	"fmt"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
	"github.com/Manu343726/sawfish/pkg/slaspec/text"
)

// Jumps and calls with the full 32-bit target split across the second and third words.
// The fourth word is matched but carries nothing.
func Jump32() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "Jump32",
		Description: "Jump/Call to 32-bit Immediate",
		Prefix:      "jmp",
		Base: [][]pattern.FieldTemplate{
			pattern.MSBFirst(
				pattern.Template("sig", 6, pattern.Mask(0x37)),
				pattern.Template("c", 1, pattern.Blank()),
				pattern.Template("mask8z", 8, pattern.Mask(0x00)),
				pattern.Template("rel", 1, pattern.Blank()),
			),
			{pattern.Template("immH", 16, pattern.Blank())},
			{pattern.Template("immL", 16, pattern.UImm())},
			{pattern.Template("unused", 16, pattern.UImm())},
		},
	}, func(f *instructions.Family) {
		for _, call := range []bool{false, true} {
			for _, rel := range []bool{false, true} {
				name, mnemonic := "JumpAbs", "JUMP"
				if call {
					name, mnemonic = "Call", "CALL"
				}

				target := fmt.Sprintf("(%v << 16) | %v", text.Field("immH"), text.Field("immL"))
				high := pattern.UImm()
				if rel {
					target = fmt.Sprintf("inst_start + (%v)", target)
					high = pattern.SImm()
				} else {
					mnemonic += ".A"
				}

				instruction := f.Register(name).
					Apply(flag("c", call), flag("rel", rel), fieldType("immH", high)).
					Display(mnemonic + " " + text.Var("addr")).
					Action(text.Op(text.Copy("addr", target)))

				if call {
					instruction.Pcode(
						text.Op(text.Copy("RETS", "inst_next")),
						text.Op(text.Call("addr")),
					)
				} else {
					instruction.Pcode(text.Op(text.Goto("addr")))
				}
			}
		}
	})
}
