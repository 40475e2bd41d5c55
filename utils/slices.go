package utils

import (
	"cmp"
	"sort"
)

func Map[A any, B any](input []A, mapper func(A) B) []B {
	output := make([]B, len(input))
	for i, item := range input {
		output[i] = mapper(item)
	}
	return output
}

// Filter always returns a fresh slice, even when nothing is dropped.
func Filter[A any](input []A, keep func(A) bool) []A {
	output := make([]A, 0, len(input))
	for _, item := range input {
		if keep(item) {
			output = append(output, item)
		}
	}
	return output
}

func SortedKeys[K cmp.Ordered, V any](input map[K]V) []K {
	keys := make([]K, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
