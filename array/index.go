package array

import (
	"fmt"
	"slices"

	"github.com/robert-malhotra/go-coords/coords"
	"github.com/robert-malhotra/go-coords/internal/ndarray"
)

// Index returns the sub-array selected by key. Storage is indexed first;
// the resulting coordinates come from coords.SliceAxes with the same key.
//
// Two or more List components are paired elementwise and produce one
// dimension placed where the first list was.
func (a *Array[T]) Index(key coords.Key) (*Array[T], error) {
	if _, ok := key.(coords.Ellipsis); ok {
		return a, nil
	}
	items, err := coords.Expand(key, a.Rank())
	if err != nil {
		return nil, err
	}
	d, err := indexData(a.data, items)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", key, err)
	}
	c, err := coords.SliceAxes(a.coords, key, d.Shape())
	if err != nil {
		return nil, err
	}
	return wrap(d, c), nil
}

// indexData applies an expanded key to storage. dim tracks the dimension
// of the partially indexed array that the next component applies to.
func indexData[T any](d *ndarray.Array[T], items coords.Tuple) (*ndarray.Array[T], error) {
	nlists := 0
	for _, item := range items {
		if _, ok := item.(coords.List); ok {
			nlists++
		}
	}

	var (
		pairedAxes []int
		pairedPos  [][]int
		err        error
	)
	dim := 0
	for _, item := range items {
		shape := d.Shape()
		switch k := item.(type) {
		case coords.NewDim:
			d, err = d.ExpandDims(dim)
			dim++
		case coords.Int:
			var p int
			if p, err = ndarray.NormalizeIndex(int(k), shape[dim]); err != nil {
				return nil, err
			}
			if d, err = d.Take(dim, []int{p}); err != nil {
				return nil, err
			}
			d, err = d.Squeeze(dim)
		case coords.Slice:
			if !k.IsAll() {
				d, err = sliceData(d, dim, k)
			}
			dim++
		case coords.List:
			var pos []int
			if pos, err = normalize(k, shape[dim]); err != nil {
				return nil, err
			}
			if nlists > 1 {
				pairedAxes = append(pairedAxes, dim)
				pairedPos = append(pairedPos, pos)
			} else {
				d, err = d.Take(dim, pos)
			}
			dim++
		case coords.Mask:
			if k.IsBool() {
				d, err = d.MaskSelect(dim, k.Shape(), k.Bools())
			} else {
				var pos []int
				if pos, err = normalize(k.Ints(), shape[dim]); err != nil {
					return nil, err
				}
				d, err = d.Take(dim, pos)
			}
			dim++
		default:
			return nil, fmt.Errorf("%w: unsupported key component %s", coords.ErrInvalidValue, item)
		}
		if err != nil {
			return nil, err
		}
	}
	if len(pairedAxes) > 0 {
		return d.TakePaired(pairedAxes, pairedPos, pairedAxes[0])
	}
	return d, nil
}

// sliceData reads a unit-step slice as a hyperslab and gathers any other
// slice position by position.
func sliceData[T any](d *ndarray.Array[T], dim int, s coords.Slice) (*ndarray.Array[T], error) {
	shape := d.Shape()
	start, _, step, length := s.Indices(shape[dim])
	if step != 1 {
		return d.Take(dim, s.Positions(shape[dim]))
	}
	first := make([]int, len(shape))
	count := slices.Clone(shape)
	first[dim], count[dim] = start, length
	return d.Hyperslab(first, count)
}

func normalize(positions []int, n int) ([]int, error) {
	out := make([]int, len(positions))
	for i, p := range positions {
		q, err := ndarray.NormalizeIndex(p, n)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

// ISel selects positions per axis name, e.g. a slicer built with
// coords.Slicer.
func (a *Array[T]) ISel(sel coords.Selection) (*Array[T], error) {
	key, err := a.coords.CreateSlice(sel)
	if err != nil {
		return nil, err
	}
	return a.Index(key)
}

// Sel selects in coordinate space: labels of categorical axes, coordinates
// of scaled axes, and coords.ValueRange ranges of either.
func (a *Array[T]) Sel(sel ...coords.LabelSelector) (*Array[T], error) {
	key, err := a.coords.CreateLabelSlice(sel)
	if err != nil {
		return nil, err
	}
	return a.Index(key)
}

// IndexMask selects the elements where mask is true. A mask with defined
// axes is first broadcast to the array by axis name, so a mask over "yx"
// selects from a "tyx" array as if it had been stacked along t.
func (a *Array[T]) IndexMask(mask *Array[bool]) (*Array[T], error) {
	m := mask
	if !mask.coords.HasUndef() && !a.coords.HasUndef() {
		var err error
		if m, err = mask.BroadcastTo(a.coords); err != nil {
			return nil, err
		}
	}
	key, err := coords.BoolMask(m.Dims(), m.data.Data())
	if err != nil {
		return nil, err
	}
	return a.Index(key)
}

// SetWhere returns a copy of the array with v written wherever mask is true.
// A mask with defined axes may cover a subset of the axes by name; it is
// repeated along the others. A mask with undefined axes is matched against
// the trailing dimensions and repeated along the leading ones.
func (a *Array[T]) SetWhere(mask *Array[bool], v T) (*Array[T], error) {
	full, err := a.expandMask(mask)
	if err != nil {
		return nil, err
	}
	out := a.Copy()
	dims := a.Dims()
	for _, off := range full.Positions() {
		if err := out.data.Set(v, ndarray.Unravel(off, dims)...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// expandMask stacks mask into a boolean key with the shape of a.
func (a *Array[T]) expandMask(mask *Array[bool]) (coords.Mask, error) {
	if mask.coords.HasUndef() {
		lead := a.Rank() - mask.Rank()
		if lead < 0 {
			return coords.Mask{}, fmt.Errorf("%w: %d-dimensional mask for %d dimensions",
				coords.ErrDimension, mask.Rank(), a.Rank())
		}
		if trailing := a.coords.Sub(lead, a.Rank()); !slices.Equal(mask.Dims(), trailing.Shape()) {
			return coords.Mask{}, fmt.Errorf("%w: mask of shape %v for trailing axes %s of shape %v",
				ErrShape, mask.Dims(), trailing, trailing.Shape())
		}
		d := mask.data
		dims := a.Dims()
		for i := 0; i < lead; i++ {
			var err error
			if d, err = d.Stack(i, dims[i]); err != nil {
				return coords.Mask{}, err
			}
		}
		return coords.BoolMask(d.Shape(), d.Data())
	}

	var refs []coords.AxisRef
	for _, ax := range a.coords.Axes() {
		if mask.coords.Has(ax.Ref()) {
			refs = append(refs, ax.Ref())
		}
	}
	if len(refs) != mask.Rank() {
		return coords.Mask{}, fmt.Errorf("%w: cannot apply mask with axes %s to %s",
			coords.ErrAxisNotFound, mask.coords, a.coords)
	}
	m, err := mask.Transpose(refs...)
	if err != nil {
		return coords.Mask{}, err
	}
	key, err := coords.BoolMask(m.Dims(), m.data.Data())
	if err != nil {
		return coords.Mask{}, err
	}
	return coords.AddAxes(a.coords, a.Dims(), key, refs)
}
