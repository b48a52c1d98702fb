package families

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/sawfish/pkg/slaspec/instructions"
	"github.com/Manu343726/sawfish/pkg/utils"
)

var ErrUnknownFamily = errors.New("unknown instruction family")

// Builds a family with all its instructions registered, not yet aggregated
type Constructor func() (*instructions.Family, error)

type Entry struct {
	Name  string
	Build Constructor
}

// Families of one instruction width
type Group struct {
	Bits     int
	Families []Entry
}

// Returns the directory family files of this group are written to
func (g Group) Dir() string {
	return fmt.Sprintf("instr%v", g.Bits)
}

// Returns every family grouped by instruction width, in emission order
func All() []Group {
	return []Group{
		{
			Bits: 16,
			Families: []Entry{
				{Name: "NOP16", Build: NOP16},
				{Name: "ProgCtrl", Build: ProgCtrl},
				{Name: "PushPopReg", Build: PushPopReg},
				{Name: "CC2Dreg", Build: CC2Dreg},
				{Name: "CCMV", Build: CCMV},
				{Name: "BrCC", Build: BrCC},
				{Name: "UJump", Build: UJump},
			},
		},
		{
			Bits: 32,
			Families: []Entry{
				{Name: "NOP32", Build: NOP32},
			},
		},
		{
			Bits: 64,
			Families: []Entry{
				{Name: "Jump32", Build: Jump32},
			},
		},
	}
}

// Returns the groups keeping only the named families. Names are matched
// case-insensitively, and an empty filter keeps every family
func Select(groups []Group, names []string) ([]Group, error) {
	if len(names) == 0 {
		return groups, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.ToLower(name)] = false
	}

	selected := utils.Map(groups, func(group Group) Group {
		return Group{
			Bits: group.Bits,
			Families: utils.Filter(group.Families, func(entry Entry) bool {
				key := strings.ToLower(entry.Name)
				if _, hasName := wanted[key]; hasName {
					wanted[key] = true
					return true
				}

				return false
			}),
		}
	})

	for _, name := range utils.SortedKeys(wanted) {
		if !wanted[name] {
			return nil, utils.MakeError(ErrUnknownFamily, "'%v'", name)
		}
	}

	return selected, nil
}

func newFamily(descriptor instructions.FamilyDescriptor, build func(*instructions.Family)) (*instructions.Family, error) {
	family, err := instructions.NewFamily(descriptor)
	if err != nil {
		return nil, err
	}

	build(family)
	return family, nil
}
