package registers

var (
	dataRegisters    = IndexedRegisters("R", 8, "")
	pointerRegisters = append(IndexedRegisters("P", 6, ""), "SP", "FP")
	loopRegisters    = []string{"LC0", "LT0", "LB0", "LC1", "LT1", "LB1", "CYCLES", "CYCLES2"}
	systemRegisters  = []string{"USP", "SEQSTAT", "SYSCFG", "RETI", "RETX", "RETN", "RETE", "EMUDAT"}
)

// Contains every register set and the register space layout of the Blackfin+ core
var Catalog CatalogDescriptor = NewCatalogDescriptor(
	[]*RegisterSetDescriptor{
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_DReg, Description: "Data registers"}, dataRegisters),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_DRegL, Description: "Data registers, low 16 bits"}, IndexedRegisters("R", 8, ".L")),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_DRegH, Description: "Data registers, high 16 bits"}, IndexedRegisters("R", 8, ".H")),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_DRegB, Description: "Data registers, low byte"}, IndexedRegisters("R", 8, ".B")),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_PReg, Description: "Pointer registers"}, pointerRegisters),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_IReg, Description: "DAG index registers"}, IndexedRegisters("I", 4, "")),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_MReg, Description: "DAG modify registers"}, IndexedRegisters("M", 4, "")),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_BReg, Description: "DAG base registers"}, IndexedRegisters("B", 4, "")),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_LReg, Description: "DAG length registers"}, IndexedRegisters("L", 4, "")),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_SyRg2, Description: "Loop and cycle count registers"}, loopRegisters),
		NewRegisterSetDescriptor(&RegisterSetDescriptor{Set: RegisterSet_SyRg3, Description: "System and return address registers"}, systemRegisters),
	},
	[]*BankDescriptor{
		{Name: "data", Description: "Data registers", Offset: 0x00, Size: 4, Registers: dataRegisters},
		{Name: "data halves", Description: "Data register halves", Offset: 0x00, Size: 2, Registers: subRegisters(dataRegisters, []string{"L", "H"})},
		{Name: "data bytes", Description: "Data register low bytes", Offset: 0x00, Size: 1, Registers: subRegisters(dataRegisters, []string{"B", "", "", ""})},
		{Name: "pointer", Description: "Pointer registers", Offset: 0x20, Size: 4, Registers: pointerRegisters},
		{Name: "dag", Description: "DAG registers", Offset: 0x40, Size: 4, Registers: concat(IndexedRegisters("I", 4, ""), IndexedRegisters("M", 4, ""), IndexedRegisters("B", 4, ""), IndexedRegisters("L", 4, ""))},
		{Name: "loop", Description: "Loop and cycle count registers", Offset: 0x80, Size: 4, Registers: loopRegisters},
		{Name: "system", Description: "System and return address registers", Offset: 0xA0, Size: 4, Registers: systemRegisters},
		{Name: "sequencer", Description: "Subroutine return address and arithmetic status", Offset: 0xC0, Size: 4, Registers: []string{"RETS", "ASTAT"}},
		{Name: "flags", Description: "Condition code flag", Offset: 0xC8, Size: 1, Registers: []string{"CC"}},
	},
)

// Returns the ordered register names of the named register set
func Lookup(name string) ([]string, error) {
	return Catalog.Lookup(name)
}

func concat(groups ...[]string) []string {
	var out []string

	for _, group := range groups {
		out = append(out, group...)
	}

	return out
}
