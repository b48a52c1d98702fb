package registers

// Identifies a named set of registers an instruction field can select from
type RegisterSet uint

const (
	// Data registers R0-R7
	RegisterSet_DReg RegisterSet = iota
	// Low halves of the data registers
	RegisterSet_DRegL
	// High halves of the data registers
	RegisterSet_DRegH
	// Low bytes of the data registers
	RegisterSet_DRegB
	// Pointer registers P0-P5, SP and FP
	RegisterSet_PReg
	// DAG index registers
	RegisterSet_IReg
	// DAG modify registers
	RegisterSet_MReg
	// DAG base registers
	RegisterSet_BReg
	// DAG length registers
	RegisterSet_LReg
	// Loop and cycle counter registers
	RegisterSet_SyRg2
	// System and return registers
	RegisterSet_SyRg3

	// Number of register sets
	TOTAL_REGISTER_SETS
)

// Returns the register set name, used as the token name suffix of fields selecting registers from it
func (s RegisterSet) String() string {
	switch s {
	case RegisterSet_DReg:
		return "DReg"
	case RegisterSet_DRegL:
		return "DRegL"
	case RegisterSet_DRegH:
		return "DRegH"
	case RegisterSet_DRegB:
		return "DRegB"
	case RegisterSet_PReg:
		return "PReg"
	case RegisterSet_IReg:
		return "IReg"
	case RegisterSet_MReg:
		return "MReg"
	case RegisterSet_BReg:
		return "BReg"
	case RegisterSet_LReg:
		return "LReg"
	case RegisterSet_SyRg2:
		return "SyRg2"
	case RegisterSet_SyRg3:
		return "SyRg3"
	}

	return "RegisterSet(?)"
}

// Returns true if the set is one of the sets in the catalog
func (s RegisterSet) Valid() bool {
	return s < TOTAL_REGISTER_SETS
}
