package utils

import (
	"golang.org/x/exp/constraints"
)

// Returns an all ones bitmask of n bits of the given unsigned integer type
func AllOnes[T constraints.Unsigned](bits int) T {
	return (T(1) << bits) - T(1)
}

// Checks whether a value can be represented with n bits
func FitsInBits[T constraints.Unsigned](value T, bits int) bool {
	return value&^AllOnes[T](bits) == 0
}
