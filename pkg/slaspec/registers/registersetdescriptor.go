package registers

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/Manu343726/sawfish/pkg/utils"
)

// Contains the ordered register names of a register set. The position of a
// register within the set is the value its selecting field encodes
type RegisterSetDescriptor struct {
	Set         RegisterSet
	Description string

	registers []string
}

var ErrUnknownRegister = errors.New("unknown register")

// Returns the register set name
func (d *RegisterSetDescriptor) Name() string {
	return d.Set.String()
}

// Returns the number of registers in the set
func (d *RegisterSetDescriptor) TotalRegisters() int {
	return len(d.registers)
}

// Returns a copy of the ordered register names
func (d *RegisterSetDescriptor) Registers() []string {
	return append([]string(nil), d.registers...)
}

// Returns the name of the register encoded by the given field value
func (d *RegisterSetDescriptor) Register(index int) (string, error) {
	if index >= 0 && index < len(d.registers) {
		return d.registers[index], nil
	}

	return "", utils.MakeError(ErrUnknownRegister, "register with index '%v' not found in register set '%v', it has only %v registers", index, d.Set, d.TotalRegisters())
}

// Returns the number of bits a field needs to select any register of the set
func (d *RegisterSetDescriptor) EncodingBits() int {
	return bits.Len(uint(d.TotalRegisters() - 1))
}

// Generates count register names as prefix + index + suffix
func IndexedRegisters(prefix string, count int, suffix string) []string {
	return utils.Iota(count, func(i int) string {
		return prefix + fmt.Sprint(i) + suffix
	})
}

// Initializes a register set descriptor with the given register names
func NewRegisterSetDescriptor(descriptor *RegisterSetDescriptor, registers []string) *RegisterSetDescriptor {
	descriptor.registers = registers
	return descriptor
}
