package pattern

import "errors"

var (
	ErrUnknownField        = errors.New("unknown field")
	ErrFieldAlreadyTyped   = errors.New("cannot retype a resolved field")
	ErrFieldNotSplittable  = errors.New("field not splittable")
	ErrSplitLengthMismatch = errors.New("split length mismatch")
	ErrDuplicateField      = errors.New("duplicate field identifier")
	ErrMaskOverflow        = errors.New("mask value does not fit in field")
	ErrInvalidFieldType    = errors.New("invalid field type")
	ErrInvalidTemplate     = errors.New("invalid field template")
	ErrInvalidWordCount    = errors.New("invalid pattern word count")
	ErrInvalidCoverage     = errors.New("fields do not partition the word")
)
