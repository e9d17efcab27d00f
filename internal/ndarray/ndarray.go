package ndarray

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrShape = errors.New("ndarray: shape mismatch")
	ErrIndex = errors.New("ndarray: index out of range")
)

// Array is a dense row-major N-dimensional array.
type Array[T any] struct {
	shape []int
	data  []T
}

// New creates an array over data with the given shape.
// The array takes ownership of data.
func New[T any](data []T, shape []int) (*Array[T], error) {
	for d, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative size %d in dimension %d", ErrShape, n, d)
		}
	}
	if n := NumElements(shape); n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrShape, shape, n, len(data))
	}
	return &Array[T]{shape: slices.Clone(shape), data: data}, nil
}

// Full creates an array of the given shape filled with v.
func Full[T any](shape []int, v T) *Array[T] {
	data := make([]T, NumElements(shape))
	for i := range data {
		data[i] = v
	}
	return &Array[T]{shape: slices.Clone(shape), data: data}
}

// NumElements returns the number of elements of an array with the given shape.
func NumElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Strides returns the row-major element strides for shape.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = s
		s *= shape[d]
	}
	return strides
}

// NormalizeIndex resolves a possibly negative position against size n.
func NormalizeIndex(i, n int) (int, error) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: index %d for size %d", ErrIndex, i, n)
	}
	return i, nil
}

// Shape returns a copy of the array shape.
func (a *Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array[T]) Size() int { return len(a.data) }

// Data returns the underlying element slice in row-major order.
func (a *Array[T]) Data() []T { return a.data }

// Clone returns a deep copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{shape: slices.Clone(a.shape), data: slices.Clone(a.data)}
}

func (a *Array[T]) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d indices for rank %d", ErrIndex, len(idx), len(a.shape))
	}
	strides := Strides(a.shape)
	off := 0
	for d, i := range idx {
		p, err := NormalizeIndex(i, a.shape[d])
		if err != nil {
			return 0, fmt.Errorf("dimension %d: %w", d, err)
		}
		off += p * strides[d]
	}
	return off, nil
}

// At returns the element at the given multi-index.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.offset(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[off], nil
}

// Set stores v at the given multi-index.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Unravel converts a flat row-major offset into a multi-index.
func Unravel(off int, shape []int) []int {
	idx := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		if shape[d] == 0 {
			continue
		}
		idx[d] = off % shape[d]
		off /= shape[d]
	}
	return idx
}

// Map2 applies f elementwise to two arrays of identical shape.
func Map2[T, U, R any](a *Array[T], b *Array[U], f func(T, U) R) (*Array[R], error) {
	if !slices.Equal(a.shape, b.shape) {
		return nil, fmt.Errorf("%w: %v and %v", ErrShape, a.shape, b.shape)
	}
	out := make([]R, len(a.data))
	for i := range out {
		out[i] = f(a.data[i], b.data[i])
	}
	return &Array[R]{shape: slices.Clone(a.shape), data: out}, nil
}
