package pattern

import (
	"fmt"

	"github.com/Manu343726/sawfish/pkg/utils"
)

// A named, typed bit range within one encoding word
type Field struct {
	ID    string
	Type  FieldType
	Range BitRange
	// Token name prefix of the family owning the pattern the field belongs to
	Prefix string
}

func (f Field) Len() int {
	return f.Range.Len()
}

func (f Field) IsBlank() bool {
	return f.Type.IsBlank()
}

func (f Field) IsSigned() bool {
	return f.Type.Kind() == FieldKind_SImm
}

func (f Field) IsVariable() bool {
	return f.Type.Kind() == FieldKind_Variable
}

// Returns the field name without the family prefix
func (f Field) Name() string {
	return utils.Capitalize(f.ID) + f.Type.Suffix()
}

// Returns the name of the decode token declared for this field
func (f Field) TokenName() string {
	return f.Prefix + f.Name()
}

func (f Field) String() string {
	return fmt.Sprintf("%v - [type: %v, range: %v]", f.ID, f.Type, f.Range)
}
