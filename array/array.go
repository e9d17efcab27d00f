// Package array implements a dense N-dimensional array whose dimensions are
// named axes.
//
// An Array slices, transposes and broadcasts its storage and then asks the
// coords package what its axes become. Arrays are immutable; every method
// returns a new Array, which may share storage with the receiver.
package array

import (
	"slices"

	"github.com/robert-malhotra/go-coords/coords"
	"github.com/robert-malhotra/go-coords/internal/ndarray"
)

// Storage errors. Coordinate errors are passed through from the coords
// package unchanged.
var (
	ErrShape = ndarray.ErrShape
	ErrIndex = ndarray.ErrIndex
)

// Array is a dense row-major array of T with coordinates.
type Array[T any] struct {
	data   *ndarray.Array[T]
	coords *coords.Coordinates
}

// New creates an array from row-major data. input is any coordinate input
// accepted by coords.Build: nil, *coords.Coordinates, []string, a string of
// single-character names, []coords.Axis or []coords.AxisSpec.
func New[T any](data []T, shape []int, input any) (*Array[T], error) {
	d, err := ndarray.New(slices.Clone(data), shape)
	if err != nil {
		return nil, err
	}
	c, err := coords.Build(input, shape)
	if err != nil {
		return nil, err
	}
	return &Array[T]{data: d, coords: c}, nil
}

// FromCoords creates an array whose shape is given by c.
func FromCoords[T any](data []T, c *coords.Coordinates) (*Array[T], error) {
	return New(data, c.Shape(), c)
}

// Full returns an array described by c with every element set to v.
func Full[T any](c *coords.Coordinates, v T) *Array[T] {
	return &Array[T]{data: ndarray.Full(c.Shape(), v), coords: c}
}

func wrap[T any](d *ndarray.Array[T], c *coords.Coordinates) *Array[T] {
	return &Array[T]{data: d, coords: c}
}

// Shape returns the size of every dimension, accessible by axis name.
func (a *Array[T]) Shape() coords.Named[int] {
	n, _ := coords.Zip(a.coords, a.data.Shape())
	return n
}

// Dims returns the plain shape.
func (a *Array[T]) Dims() []int { return a.data.Shape() }

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return a.data.Rank() }

// Size returns the number of elements.
func (a *Array[T]) Size() int { return a.data.Size() }

// Coords returns the axes of a.
func (a *Array[T]) Coords() *coords.Coordinates { return a.coords }

// Values returns a copy of the elements in row-major order.
func (a *Array[T]) Values() []T { return slices.Clone(a.data.Data()) }

// At returns the element at the given position.
func (a *Array[T]) At(idx ...int) (T, error) { return a.data.At(idx...) }

// Copy returns an array with its own storage.
func (a *Array[T]) Copy() *Array[T] { return wrap(a.data.Clone(), a.coords) }

// SetCoords returns the array with new coordinates built from input.
func (a *Array[T]) SetCoords(input any) (*Array[T], error) {
	c, err := coords.Build(input, a.data.Shape())
	if err != nil {
		return nil, err
	}
	return wrap(a.data, c), nil
}

// UpdateCoords returns the array with the named axes bound to new indices.
func (a *Array[T]) UpdateCoords(updates map[string]coords.IndexSpec) (*Array[T], error) {
	c, err := a.coords.UpdateCoords(updates)
	if err != nil {
		return nil, err
	}
	return wrap(a.data, c), nil
}

// WithScale returns the array with the scale of one axis replaced.
func (a *Array[T]) WithScale(name string, scale float64) (*Array[T], error) {
	return a.WithScales(map[string]float64{name: scale})
}

// WithScales returns the array with the scales of the named axes replaced.
// The receiver and any array sharing its coordinates keep the old scales.
func (a *Array[T]) WithScales(scales map[string]float64) (*Array[T], error) {
	c, err := a.coords.UpdateScales(scales)
	if err != nil {
		return nil, err
	}
	return wrap(a.data, c), nil
}

// Scales returns the scale of every axis; axes without a scale report 0.
func (a *Array[T]) Scales() coords.Named[float64] {
	out := make([]float64, a.coords.Len())
	for i, ax := range a.coords.Axes() {
		out[i], _ = ax.Scale()
	}
	n, _ := coords.Zip(a.coords, out)
	return n
}

// Transpose reorders the dimensions into the order of refs.
func (a *Array[T]) Transpose(refs ...coords.AxisRef) (*Array[T], error) {
	c, perm, err := a.coords.Reordered(refs)
	if err != nil {
		return nil, err
	}
	d, err := a.data.Transpose(perm)
	if err != nil {
		return nil, err
	}
	return wrap(d, c), nil
}

// Squeeze removes every dimension of size 1.
func (a *Array[T]) Squeeze() (*Array[T], error) {
	d := a.data
	var drop []int
	shape := a.data.Shape()
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] != 1 {
			continue
		}
		var err error
		if d, err = d.Squeeze(i); err != nil {
			return nil, err
		}
		drop = append(drop, i)
	}
	c, err := a.coords.DropAt(drop...)
	if err != nil {
		return nil, err
	}
	return wrap(d, c), nil
}

// ExpandDims inserts an undefined dimension of size 1 at position pos.
func (a *Array[T]) ExpandDims(pos int) (*Array[T], error) {
	d, err := a.data.ExpandDims(pos)
	if err != nil {
		return nil, err
	}
	c, err := a.coords.Insert(pos, coords.Undef(1))
	if err != nil {
		return nil, err
	}
	return wrap(d, c), nil
}

// String returns the named shape, e.g. "Array(t=10, y=64, x=64)".
func (a *Array[T]) String() string { return "Array" + a.Shape().String() }
