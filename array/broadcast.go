package array

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/robert-malhotra/go-coords/coords"
	"github.com/robert-malhotra/go-coords/internal/ndarray"
)

// BroadcastTo repeats the array along the axes of target it lacks. Every
// axis of the array must exist in target with the same size; the
// dimensions are reordered into target order as needed.
func (a *Array[T]) BroadcastTo(target *coords.Coordinates) (*Array[T], error) {
	shape := target.Shape()
	if a.coords.Equal(target) && slices.Equal(a.Dims(), shape) {
		return a, nil
	}
	if a.coords.HasUndef() {
		return nil, fmt.Errorf("%w: cannot broadcast array with axes %s", coords.ErrUndefinedAxis, a.coords)
	}

	var order []coords.AxisRef
	for i, ax := range target.Axes() {
		own, err := a.coords.Axis(ax.Ref())
		if err != nil {
			continue
		}
		if own.Len() != shape[i] {
			return nil, fmt.Errorf("%w: axis %s has size %d, cannot broadcast to %d",
				ErrShape, ax.Name(), own.Len(), shape[i])
		}
		order = append(order, ax.Ref())
	}
	if len(order) != a.Rank() {
		return nil, fmt.Errorf("%w: cannot broadcast array with axes %s to %s",
			coords.ErrCoordinate, a.coords, target)
	}

	_, perm, err := a.coords.Reordered(order)
	if err != nil {
		return nil, err
	}
	d, err := a.data.Transpose(perm)
	if err != nil {
		return nil, err
	}
	for i, ax := range target.Axes() {
		if a.coords.Has(ax.Ref()) {
			continue
		}
		if d, err = d.Stack(i, shape[i]); err != nil {
			return nil, err
		}
	}
	if got := d.Shape(); !slices.Equal(got, shape) {
		return nil, fmt.Errorf("%w: shape %v required but got %v", ErrShape, shape, got)
	}
	return wrap(d, target), nil
}

// BroadcastArrays broadcasts every array to the common coordinates given by
// coords.Broadcast.
func BroadcastArrays[T any](arrays ...*Array[T]) ([]*Array[T], error) {
	if len(arrays) < 2 {
		return slices.Clone(arrays), nil
	}
	cs := make([]*coords.Coordinates, len(arrays))
	for i, a := range arrays {
		cs[i] = a.coords
	}
	target, err := coords.Broadcast(cs...)
	if err != nil {
		return nil, err
	}
	out := make([]*Array[T], len(arrays))
	for i, a := range arrays {
		if out[i], err = a.BroadcastTo(target); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Apply2 applies f elementwise. When the axis names differ, the operand
// whose axes are a subset of the other's is broadcast to it. Operands with
// undefined axes are not broadcast and must have the same shape.
func Apply2[T, U, R any](a *Array[T], b *Array[U], f func(T, U) R) (*Array[R], error) {
	target := a.coords
	switch {
	case a.coords.HasUndef() || b.coords.HasUndef() || a.coords.Equal(b.coords):
	case a.coords.Contains(refs(b.coords), false):
		var err error
		if b, err = b.BroadcastTo(a.coords); err != nil {
			return nil, err
		}
	case b.coords.Contains(refs(a.coords), false):
		var err error
		if a, err = a.BroadcastTo(b.coords); err != nil {
			return nil, err
		}
		target = b.coords
	default:
		return nil, fmt.Errorf("%w: cannot broadcast arrays with axes %s and %s",
			coords.ErrCoordinate, a.coords, b.coords)
	}
	d, err := ndarray.Map2(a.data, b.data, f)
	if err != nil {
		return nil, err
	}
	return wrap(d, target), nil
}

func refs(c *coords.Coordinates) []coords.AxisRef {
	return coords.Refs(c.Names()...)
}

// ArgmaxND returns the position of the first maximum, by axis name.
func ArgmaxND[T cmp.Ordered](a *Array[T]) (coords.Named[int], error) {
	values := a.data.Data()
	if len(values) == 0 {
		return coords.Named[int]{}, fmt.Errorf("%w: argmax of an empty array", ErrShape)
	}
	best := 0
	for i, v := range values {
		if cmp.Compare(v, values[best]) > 0 {
			best = i
		}
	}
	return coords.Zip(a.coords, ndarray.Unravel(best, a.Dims()))
}
