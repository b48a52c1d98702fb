package registers

// Describes a run of same-sized registers laid out contiguously in the
// register space. Empty names are skipped slots
type BankDescriptor struct {
	Name        string
	Description string
	// Byte offset of the first register within the register space
	Offset uint
	// Size in bytes of each register
	Size int

	Registers []string
}

// Returns the register names with skipped slots written as "_"
func (b *BankDescriptor) Slots() []string {
	slots := make([]string, len(b.Registers))

	for i, name := range b.Registers {
		if name == "" {
			slots[i] = "_"
		} else {
			slots[i] = name
		}
	}

	return slots
}

// Returns the number of bytes the bank spans
func (b *BankDescriptor) Bytes() uint {
	return uint(len(b.Registers) * b.Size)
}

// Names the parts of each full register as "<reg>.<part>", in register order.
// An empty part leaves a skipped slot
func subRegisters(full []string, parts []string) []string {
	out := make([]string, 0, len(full)*len(parts))

	for _, reg := range full {
		for _, part := range parts {
			if part == "" {
				out = append(out, "")
			} else {
				out = append(out, reg+"."+part)
			}
		}
	}

	return out
}
