package pattern

import "fmt"

// A closed interval of bit positions within one encoding word
type BitRange struct {
	Start int
	End   int
}

// Returns the range covering both bounds, in whatever order they are given
func NewBitRange(start, end int) BitRange {
	return BitRange{
		Start: min(start, end),
		End:   max(start, end),
	}
}

// Returns the number of bits in the range
func (r BitRange) Len() int {
	return r.End - r.Start + 1
}

// Returns true if the bit belongs to the range
func (r BitRange) Contains(bit int) bool {
	return bit >= r.Start && bit <= r.End
}

func (r BitRange) String() string {
	return fmt.Sprintf("(%v, %v)", r.Start, r.End)
}
