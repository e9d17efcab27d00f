package ndarray

import (
	"fmt"
	"slices"
)

// Gather returns the sub-array made of the cartesian product of the given
// per-dimension positions. positions must have one entry per dimension and
// every position must already be in range.
func (a *Array[T]) Gather(positions [][]int) (*Array[T], error) {
	ndims := len(a.shape)
	if len(positions) != ndims {
		return nil, fmt.Errorf("%w: %d position lists for rank %d", ErrShape, len(positions), ndims)
	}
	count := make([]int, ndims)
	for d, pos := range positions {
		for _, p := range pos {
			if p < 0 || p >= a.shape[d] {
				return nil, fmt.Errorf("%w: position %d in dimension %d of size %d", ErrIndex, p, d, a.shape[d])
			}
		}
		count[d] = len(pos)
	}

	result := make([]T, NumElements(count))
	if ndims == 0 {
		copy(result, a.data)
		return &Array[T]{shape: count, data: result}, nil
	}
	if len(result) > 0 {
		gatherRecursive(a.data, result, positions, Strides(a.shape), Strides(count), 0, 0, 0)
	}
	return &Array[T]{shape: count, data: result}, nil
}

// gatherRecursive copies one dimension at a time; the innermost dimension
// is copied as a block when its positions are contiguous.
func gatherRecursive[T any](
	src, dst []T,
	positions [][]int,
	srcStrides, dstStrides []int,
	srcOffset, dstOffset int,
	dim int,
) {
	pos := positions[dim]
	if dim == len(positions)-1 {
		if isRun(pos) {
			copy(dst[dstOffset:dstOffset+len(pos)], src[srcOffset+pos[0]:srcOffset+pos[0]+len(pos)])
			return
		}
		for i, p := range pos {
			dst[dstOffset+i] = src[srcOffset+p]
		}
		return
	}

	for i, p := range pos {
		gatherRecursive(src, dst, positions,
			srcStrides, dstStrides,
			srcOffset+p*srcStrides[dim], dstOffset+i*dstStrides[dim],
			dim+1)
	}
}

func isRun(pos []int) bool {
	for i := 1; i < len(pos); i++ {
		if pos[i] != pos[0]+i {
			return false
		}
	}
	return len(pos) > 0
}

// Range returns the positions start, start+1, ..., start+count-1.
func Range(start, count int) []int {
	pos := make([]int, count)
	for i := range pos {
		pos[i] = start + i
	}
	return pos
}

// Hyperslab reads a rectangular block: count[d] elements from start[d] in
// every dimension.
func (a *Array[T]) Hyperslab(start, count []int) (*Array[T], error) {
	if len(start) != len(a.shape) || len(count) != len(a.shape) {
		return nil, fmt.Errorf("%w: start and count must have %d dimensions, got %d and %d",
			ErrShape, len(a.shape), len(start), len(count))
	}
	positions := make([][]int, len(a.shape))
	for d := range a.shape {
		if start[d] < 0 || count[d] < 0 || start[d]+count[d] > a.shape[d] {
			return nil, fmt.Errorf("%w: slice out of bounds: dimension %d, start=%d, count=%d, size=%d",
				ErrIndex, d, start[d], count[d], a.shape[d])
		}
		positions[d] = Range(start[d], count[d])
	}
	return a.Gather(positions)
}

// Take gathers positions along one dimension, keeping every other dimension
// whole.
func (a *Array[T]) Take(axis int, positions []int) (*Array[T], error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, fmt.Errorf("%w: axis %d for rank %d", ErrIndex, axis, len(a.shape))
	}
	all := make([][]int, len(a.shape))
	for d, n := range a.shape {
		if d == axis {
			all[d] = positions
		} else {
			all[d] = Range(0, n)
		}
	}
	return a.Gather(all)
}

// TakePaired gathers several dimensions at once with position lists paired
// elementwise. All lists must have the same length L, or length 1, which is
// repeated. The listed dimensions are replaced by a single dimension of size
// L placed at position at of the result.
func (a *Array[T]) TakePaired(axes []int, positions [][]int, at int) (*Array[T], error) {
	if len(axes) != len(positions) || len(axes) == 0 {
		return nil, fmt.Errorf("%w: %d axes with %d position lists", ErrShape, len(axes), len(positions))
	}
	n := 1
	for _, pos := range positions {
		if len(pos) != 1 {
			if n != 1 && len(pos) != n {
				return nil, fmt.Errorf("%w: cannot pair position lists of length %d and %d", ErrShape, n, len(pos))
			}
			n = len(pos)
		}
	}

	// Move the paired dimensions to the front, in the order given.
	perm := slices.Clone(axes)
	for d := range a.shape {
		if !slices.Contains(axes, d) {
			perm = append(perm, d)
		}
	}
	front, err := a.Transpose(perm)
	if err != nil {
		return nil, err
	}

	k := len(axes)
	lead := front.shape[:k]
	rest := front.shape[k:]
	leadStrides := Strides(lead)
	block := NumElements(rest)

	out := make([]T, 0, n*block)
	for m := 0; m < n; m++ {
		off := 0
		for j, pos := range positions {
			p := pos[0]
			if len(pos) > 1 {
				p = pos[m]
			}
			if p < 0 || p >= lead[j] {
				return nil, fmt.Errorf("%w: position %d in dimension %d of size %d", ErrIndex, p, axes[j], lead[j])
			}
			off += p * leadStrides[j]
		}
		out = append(out, front.data[off*block:(off+1)*block]...)
	}

	shape := append([]int{n}, rest...)
	paired := &Array[T]{shape: shape, data: out}
	if at == 0 {
		return paired, nil
	}
	return paired.MoveAxis(0, at)
}

// MaskSelect collapses the dimensions axis..axis+rank(mask)-1 into a single
// dimension holding the elements where mask is true. maskShape must equal the
// collapsed part of the array shape.
func (a *Array[T]) MaskSelect(axis int, maskShape []int, mask []bool) (*Array[T], error) {
	r := len(maskShape)
	if axis < 0 || axis+r > len(a.shape) || !slices.Equal(a.shape[axis:axis+r], maskShape) {
		return nil, fmt.Errorf("%w: mask of shape %v at dimension %d of %v", ErrShape, maskShape, axis, a.shape)
	}
	if len(mask) != NumElements(maskShape) {
		return nil, fmt.Errorf("%w: mask shape %v with %d values", ErrShape, maskShape, len(mask))
	}
	outer := NumElements(a.shape[:axis])
	inner := NumElements(a.shape[axis+r:])
	mid := len(mask)

	selected := 0
	for _, m := range mask {
		if m {
			selected++
		}
	}
	out := make([]T, 0, outer*selected*inner)
	for o := 0; o < outer; o++ {
		base := o * mid * inner
		for i, m := range mask {
			if m {
				out = append(out, a.data[base+i*inner:base+(i+1)*inner]...)
			}
		}
	}
	shape := make([]int, 0, len(a.shape)-r+1)
	shape = append(shape, a.shape[:axis]...)
	shape = append(shape, selected)
	shape = append(shape, a.shape[axis+r:]...)
	return &Array[T]{shape: shape, data: out}, nil
}
