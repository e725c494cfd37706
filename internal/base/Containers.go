package base

import (
	"slices"

	"golang.org/x/exp/constraints"
)

/***************************************
 * Slices
 ***************************************/

func CopySlice[T any](in ...T) []T {
	result := make([]T, len(in))
	copy(result, in)
	return result
}

func IndexOf[T comparable](match T, values ...T) (int, bool) {
	for i, x := range values {
		if x == match {
			return i, true
		}
	}
	return -1, false
}

func Contains[T comparable](arr []T, values ...T) bool {
	for _, x := range values {
		if _, ok := IndexOf(x, arr...); !ok {
			return false
		}
	}
	return true
}

func AppendUniq[T comparable](src []T, elts ...T) (result []T) {
	result = src
	for _, x := range elts {
		if _, ok := IndexOf(x, result...); !ok {
			result = append(result, x)
		}
	}
	return result
}

func Map[T, R any](transform func(T) R, src ...T) (dst []R) {
	dst = make([]R, len(src))
	for i, x := range src {
		dst[i] = transform(x)
	}
	return
}

/***************************************
 * Maps
 ***************************************/

func Keys[K comparable, V any](elts ...map[K]V) []K {
	n := 0
	for _, it := range elts {
		n += len(it)
	}
	result := make([]K, 0, n)
	for _, it := range elts {
		for key := range it {
			result = append(result, key)
		}
	}
	return result
}

// SortedKeys iterates a map in a stable order, for deterministic outputs.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := Keys(m)
	slices.Sort(keys)
	return keys
}

/***************************************
 * Set (slice with unique items)
 ***************************************/

type SetT[T comparable] []T

func (set SetT[T]) Empty() bool {
	return len(set) == 0
}
func (set SetT[T]) Len() int {
	return len(set)
}
func (set SetT[T]) Slice() []T {
	return set
}
func (set SetT[T]) Contains(it ...T) bool {
	return Contains(set, it...)
}
func (set *SetT[T]) AppendUniq(it ...T) (modified bool) {
	before := len(*set)
	*set = AppendUniq(*set, it...)
	return len(*set) != before
}
