package ndarray

import (
	"fmt"
	"slices"
)

// Transpose permutes the dimensions: dimension i of the result is dimension
// perm[i] of a.
func (a *Array[T]) Transpose(perm []int) (*Array[T], error) {
	ndims := len(a.shape)
	if len(perm) != ndims {
		return nil, fmt.Errorf("%w: permutation %v for rank %d", ErrShape, perm, ndims)
	}
	seen := make([]bool, ndims)
	for _, p := range perm {
		if p < 0 || p >= ndims || seen[p] {
			return nil, fmt.Errorf("%w: invalid permutation %v", ErrShape, perm)
		}
		seen[p] = true
	}

	shape := make([]int, ndims)
	for i, p := range perm {
		shape[i] = a.shape[p]
	}
	srcStrides := Strides(a.shape)
	strides := make([]int, ndims)
	for i, p := range perm {
		strides[i] = srcStrides[p]
	}

	out := make([]T, len(a.data))
	idx := make([]int, ndims)
	for i := range out {
		off := 0
		for d, v := range idx {
			off += v * strides[d]
		}
		out[i] = a.data[off]
		for d := ndims - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return &Array[T]{shape: shape, data: out}, nil
}

// MoveAxis moves dimension src to position dst, keeping the order of the rest.
func (a *Array[T]) MoveAxis(src, dst int) (*Array[T], error) {
	ndims := len(a.shape)
	if src < 0 || src >= ndims || dst < 0 || dst >= ndims {
		return nil, fmt.Errorf("%w: move %d to %d for rank %d", ErrIndex, src, dst, ndims)
	}
	order := make([]int, 0, ndims)
	for d := 0; d < ndims; d++ {
		if d != src {
			order = append(order, d)
		}
	}
	order = slices.Insert(order, dst, src)
	return a.Transpose(order)
}

// Stack repeats a n times along a new dimension inserted at position axis.
func (a *Array[T]) Stack(axis, n int) (*Array[T], error) {
	if axis < 0 || axis > len(a.shape) {
		return nil, fmt.Errorf("%w: stack axis %d for rank %d", ErrIndex, axis, len(a.shape))
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative repeat count %d", ErrShape, n)
	}
	outer := NumElements(a.shape[:axis])
	inner := NumElements(a.shape[axis:])
	out := make([]T, 0, outer*n*inner)
	for o := 0; o < outer; o++ {
		block := a.data[o*inner : (o+1)*inner]
		for k := 0; k < n; k++ {
			out = append(out, block...)
		}
	}
	return &Array[T]{shape: slices.Insert(slices.Clone(a.shape), axis, n), data: out}, nil
}

// ExpandDims inserts a dimension of size 1 at position axis.
func (a *Array[T]) ExpandDims(axis int) (*Array[T], error) {
	if axis < 0 || axis > len(a.shape) {
		return nil, fmt.Errorf("%w: new axis %d for rank %d", ErrIndex, axis, len(a.shape))
	}
	return &Array[T]{shape: slices.Insert(slices.Clone(a.shape), axis, 1), data: a.data}, nil
}

// Squeeze removes the dimension at axis, which must have size 1.
func (a *Array[T]) Squeeze(axis int) (*Array[T], error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, fmt.Errorf("%w: axis %d for rank %d", ErrIndex, axis, len(a.shape))
	}
	if a.shape[axis] != 1 {
		return nil, fmt.Errorf("%w: cannot squeeze dimension %d of size %d", ErrShape, axis, a.shape[axis])
	}
	return &Array[T]{shape: slices.Delete(slices.Clone(a.shape), axis, axis+1), data: a.data}, nil
}
