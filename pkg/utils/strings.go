package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Formats an uint value into a fixed width binary string of n bits
func FormatUintBinary(value uint64, bits int) string {
	return fmt.Sprintf("%0*b", bits, value)
}

// Formats an uint value into a "0x" prefixed hex string wide enough to hold n bits
func FormatUintHex(value uint64, bits int) string {
	return fmt.Sprintf("0x%0*x", (bits+3)/4, value)
}

// Upper-cases the first rune of a string, leaving the rest untouched
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(first)) + s[size:]
}

// Returns an string containing all formatted sequence items separated by a given separator
func FormatSlice[T any](input []T, separator string) string {
	var builder strings.Builder

	for i, value := range input {
		builder.WriteString(fmt.Sprint(value))

		if i < len(input)-1 {
			builder.WriteString(separator)
		}
	}

	return builder.String()
}
