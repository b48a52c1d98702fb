package pattern

import "github.com/Manu343726/sawfish/pkg/utils"

// Describes a field to be created by a split, before it gets its bit range
type FieldTemplate struct {
	ID   string
	Type FieldType
	Size int
}

func Template(id string, size int, ftype FieldType) FieldTemplate {
	return FieldTemplate{
		ID:   id,
		Type: ftype,
		Size: size,
	}
}

// Reverses templates written most significant field first, the order
// encodings are usually documented in, into split order
func MSBFirst(templates ...FieldTemplate) []FieldTemplate {
	return utils.Reversed(templates)
}

func (t FieldTemplate) toField(start int, prefix string) Field {
	return Field{
		ID:     t.ID,
		Type:   t.Type,
		Range:  NewBitRange(start, start+t.Size-1),
		Prefix: prefix,
	}
}

func templatesLength(templates []FieldTemplate) int {
	return utils.Accumulate(templates, func(t FieldTemplate) int { return t.Size })
}
