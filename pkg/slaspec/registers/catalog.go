package registers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/sawfish/pkg/utils"
)

type CatalogDescriptor struct {
	sets  map[RegisterSet]*RegisterSetDescriptor
	banks []*BankDescriptor
}

var ErrUnknownRegisterSet = errors.New("unknown register set")

// Returns the descriptor of a register set
func (c *CatalogDescriptor) Set(set RegisterSet) (*RegisterSetDescriptor, error) {
	if descriptor, hasSet := c.sets[set]; hasSet {
		return descriptor, nil
	}

	return nil, utils.MakeError(ErrUnknownRegisterSet, "%v", uint(set))
}

// Returns the descriptor of a register set given its name. Names are matched case-insensitively
func (c *CatalogDescriptor) SetByName(name string) (*RegisterSetDescriptor, error) {
	for _, descriptor := range c.sets {
		if strings.EqualFold(descriptor.Name(), name) {
			return descriptor, nil
		}
	}

	return nil, utils.MakeError(ErrUnknownRegisterSet, "'%v'", name)
}

// Returns the ordered register names of the named register set
func (c *CatalogDescriptor) Lookup(name string) ([]string, error) {
	descriptor, err := c.SetByName(name)
	if err != nil {
		return nil, err
	}

	return descriptor.Registers(), nil
}

// Returns all register sets ordered by identifier
func (c *CatalogDescriptor) AllSets() []*RegisterSetDescriptor {
	return utils.Map(utils.SortedKeys(c.sets), func(set RegisterSet) *RegisterSetDescriptor {
		return c.sets[set]
	})
}

// Returns the register space layout
func (c *CatalogDescriptor) Banks() []*BankDescriptor {
	return c.banks
}

// Initializes a catalog with the given sets and register space banks
func NewCatalogDescriptor(sets []*RegisterSetDescriptor, banks []*BankDescriptor) CatalogDescriptor {
	setMap := make(map[RegisterSet]*RegisterSetDescriptor, len(sets))

	for _, set := range sets {
		setMap[set.Set] = set
	}

	for set := RegisterSet(0); set < TOTAL_REGISTER_SETS; set++ {
		if _, hasSet := setMap[set]; !hasSet {
			panic(fmt.Sprintf("missing entry for register set '%v' in register catalog. Make sure you've added all register sets in the NewCatalogDescriptor() call", set))
		}
	}

	return CatalogDescriptor{
		sets:  setMap,
		banks: banks,
	}
}
