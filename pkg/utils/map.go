package utils

import (
	"cmp"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Generates a sequence constructed by applying a function to all elements of a given input sequence
func Map[T any, U any](input []T, mapFunction func(T) U) []U {
	output := make([]U, len(input))

	for i := range input {
		output[i] = mapFunction(input[i])
	}

	return output
}

// Returns the keys of a map in ascending order
func SortedKeys[Key cmp.Ordered, Value any](input map[Key]Value) []Key {
	keys := maps.Keys(input)
	slices.Sort(keys)
	return keys
}

// Returns the items of a set (a map to empty structs) sorted with the given comparison function
func SortedSet[T comparable](input map[T]struct{}, compare func(a, b T) int) []T {
	items := maps.Keys(input)
	slices.SortFunc(items, compare)
	return items
}

// Returns the items of a sequence that satisfy a predicate, in order
func Filter[T any](input []T, predicate func(T) bool) []T {
	output := make([]T, 0, len(input))

	for _, item := range input {
		if predicate(item) {
			output = append(output, item)
		}
	}

	return output
}
