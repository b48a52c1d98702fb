package families

import (
	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/slaspec/pattern"
)

func NOP16() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "NOP16",
		Description: "16-bit Slot Nop",
		Prefix:      "nop",
		Base: [][]pattern.FieldTemplate{
			{pattern.Template("sig", 16, pattern.Mask(0x0000))},
		},
	}, func(f *instructions.Family) {
		f.Register("NOP").Display("NOP")
	})
}

func NOP32() (*instructions.Family, error) {
	return newFamily(instructions.FamilyDescriptor{
		Name:        "NOP32",
		Description: "32-bit Slot Nop",
		Prefix:      "mnop",
		Base: [][]pattern.FieldTemplate{
			pattern.MSBFirst(
				pattern.Template("sigDsp", 4, pattern.Mask(0xc)),
				pattern.Template("m", 1, pattern.Blank()),
				pattern.Template("sigH", 11, pattern.Mask(0x003)),
			),
			{pattern.Template("sigL", 16, pattern.Mask(0x1800))},
		},
	}, func(f *instructions.Family) {
		f.Register("NOP32").Apply(flag("m", false)).Display("NOP")
		// multi-issue slot
		f.Register("MNOP").Apply(flag("m", true)).Display("MNOP")
	})
}
