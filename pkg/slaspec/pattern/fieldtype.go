package pattern

import (
	"github.com/Manu343726/sawfish/pkg/slaspec/registers"
	"github.com/Manu343726/sawfish/pkg/utils"
)

// Represents the kind of value a field holds
type FieldKind uint

const (
	// Unresolved placeholder, the only kind that can be split or typed
	FieldKind_Blank FieldKind = iota
	// Fixed constant the field must match
	FieldKind_Mask
	// Unsigned immediate operand
	FieldKind_UImm
	// Two's complement signed immediate operand
	FieldKind_SImm
	// Operand selecting a register from a register set
	FieldKind_Variable
)

func (k FieldKind) String() string {
	switch k {
	case FieldKind_Blank:
		return "Blank"
	case FieldKind_Mask:
		return "Mask"
	case FieldKind_UImm:
		return "UImm"
	case FieldKind_SImm:
		return "SImm"
	case FieldKind_Variable:
		return "Var"
	}

	panic("unreachable")
}

// The type of a field. The zero value is Blank
type FieldType struct {
	kind FieldKind
	mask uint16
	set  registers.RegisterSet
}

func Blank() FieldType {
	return FieldType{}
}

func Mask(value uint16) FieldType {
	return FieldType{kind: FieldKind_Mask, mask: value}
}

func UImm() FieldType {
	return FieldType{kind: FieldKind_UImm}
}

func SImm() FieldType {
	return FieldType{kind: FieldKind_SImm}
}

func Variable(set registers.RegisterSet) FieldType {
	return FieldType{kind: FieldKind_Variable, set: set}
}

// Returns a Variable type selecting from the named register set
func VariableByName(name string) (FieldType, error) {
	descriptor, err := registers.Catalog.SetByName(name)
	if err != nil {
		return FieldType{}, err
	}

	return Variable(descriptor.Set), nil
}

func (t FieldType) Kind() FieldKind {
	return t.kind
}

func (t FieldType) IsBlank() bool {
	return t.kind == FieldKind_Blank
}

// Returns the constant of a Mask type
func (t FieldType) MaskValue() uint16 {
	return t.mask
}

// Returns the register set of a Variable type
func (t FieldType) RegisterSet() registers.RegisterSet {
	return t.set
}

// Returns the token name suffix for fields of this type
func (t FieldType) Suffix() string {
	switch t.kind {
	case FieldKind_UImm:
		return "UImm"
	case FieldKind_SImm:
		return "SImm"
	case FieldKind_Variable:
		return t.set.String()
	}

	return ""
}

func (t FieldType) String() string {
	switch t.kind {
	case FieldKind_Mask:
		return "Mask:" + utils.FormatUintHex(uint64(t.mask), 16)
	case FieldKind_Variable:
		return "Var:" + t.set.String()
	}

	return t.kind.String()
}

// Checks the type can be assigned to a field of the given length
func (t FieldType) validate(length int) error {
	switch t.kind {
	case FieldKind_Mask:
		if !utils.FitsInBits(t.mask, length) {
			return utils.MakeError(ErrMaskOverflow, "%v needs more than %v bits", utils.FormatUintHex(uint64(t.mask), 16), length)
		}
	case FieldKind_Variable:
		if _, err := registers.Catalog.Set(t.set); err != nil {
			return err
		}
	case FieldKind_Blank, FieldKind_UImm, FieldKind_SImm:
	default:
		return utils.MakeError(ErrInvalidFieldType, "unknown field kind %v", uint(t.kind))
	}

	return nil
}
