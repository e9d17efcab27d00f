package coords

import (
	"fmt"
	"slices"
)

// SliceAxes derives the coordinates of an array after indexing it with key.
// shape is the shape of the indexed result. It is the only place that
// decides what happens to an axis under a key:
//
//   - Int removes the axis
//   - Slice, integer arrays and 1-D boolean masks keep it with a sliced index
//   - List keeps it as a fancy axis; two or more fancy axes collapse into one
//     undefined axis at the position of the first
//   - NewDim inserts an undefined axis
//   - a boolean mask of rank N > 1 collapses N axes into one undefined axis
//   - Ellipsis alone returns c unchanged
func SliceAxes(c *Coordinates, key Key, shape []int) (*Coordinates, error) {
	var axes []Axis
	switch k := key.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil key", ErrInvalidValue)
	case Ellipsis:
		return c, nil
	case NewDim:
		if len(shape) == 0 {
			return nil, fmt.Errorf("%w: new axis for a 0-dimensional result", ErrDimension)
		}
		axes = append([]Axis{Undef(shape[0])}, c.axes...)
	case Mask:
		var err error
		if axes, err = sliceMask(c, k); err != nil {
			return nil, err
		}
	case Tuple:
		var err error
		if axes, err = sliceTuple(c, k); err != nil {
			return nil, err
		}
	default:
		var err error
		if axes, err = sliceTuple(c, Tuple{k}); err != nil {
			return nil, err
		}
	}
	return resolve(axes, shape)
}

// placeholder marks an undefined axis whose size comes from the result shape.
var placeholder = Undef(-1)

func sliceMask(c *Coordinates, m Mask) ([]Axis, error) {
	n := m.consumes()
	if n > len(c.axes) {
		return nil, fmt.Errorf("%w: %d-dimensional mask for %d axes", ErrDimension, n, len(c.axes))
	}
	if n == 1 {
		first, err := c.axes[0].SliceAxis(m)
		if err != nil {
			return nil, err
		}
		return append([]Axis{first}, c.axes[1:]...), nil
	}
	return append([]Axis{placeholder}, c.axes[n:]...), nil
}

func sliceTuple(c *Coordinates, key Tuple) ([]Axis, error) {
	items, err := Expand(key, len(c.axes))
	if err != nil {
		return nil, err
	}

	out := make([]Axis, 0, len(items))
	var fancy []int
	next := 0
	for _, item := range items {
		switch k := item.(type) {
		case NewDim:
			out = append(out, placeholder)
		case Int:
			next++
		case List:
			a, err := c.axes[next].SliceAxis(k)
			if err != nil {
				return nil, err
			}
			fancy = append(fancy, len(out))
			out = append(out, a)
			next++
		case Mask:
			if n := k.consumes(); n > 1 {
				out = append(out, placeholder)
				next += n
				continue
			}
			a, err := c.axes[next].SliceAxis(k)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
			next++
		default:
			a, err := c.axes[next].SliceAxis(k)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
			next++
		}
	}

	if len(fancy) > 1 {
		collapsed := make([]Axis, 0, len(out)-len(fancy)+1)
		for i, a := range out {
			switch {
			case i == fancy[0]:
				collapsed = append(collapsed, placeholder)
			case slices.Contains(fancy, i):
			default:
				collapsed = append(collapsed, a)
			}
		}
		out = collapsed
	}
	return out, nil
}

// resolve sizes the undefined placeholders from shape and checks that every
// axis matches its dimension.
func resolve(axes []Axis, shape []int) (*Coordinates, error) {
	if len(axes) != len(shape) {
		return nil, fmt.Errorf("%w: %d axes for result shape %v", ErrDimension, len(axes), shape)
	}
	out := make([]Axis, len(axes))
	for i, a := range axes {
		if a.undef {
			out[i] = Undef(shape[i])
			continue
		}
		if a.Len() != shape[i] {
			return nil, fmt.Errorf("%w: axis %s has %d positions but dimension %d has size %d",
				ErrDimension, a.name, a.Len(), i, shape[i])
		}
		out[i] = a
	}
	return New(out...)
}

// AddAxes stacks a boolean mask defined over maskAxes along every axis of c
// it does not cover, so that it matches shape. shape must be the shape of
// the array c describes; a mask that already has that shape is returned as is.
func AddAxes(c *Coordinates, shape []int, mask Mask, maskAxes []AxisRef) (Mask, error) {
	if len(shape) != len(c.axes) {
		return Mask{}, fmt.Errorf("%w: coordinates %s for shape %v", ErrDimension, c, shape)
	}
	if slices.Equal(mask.shape, shape) {
		return mask, nil
	}
	arr, err := mask.array()
	if err != nil {
		return Mask{}, err
	}
	for i, a := range c.axes {
		if slices.ContainsFunc(maskAxes, a.Matches) {
			continue
		}
		if arr, err = arr.Stack(i, shape[i]); err != nil {
			return Mask{}, fmt.Errorf("%w: %w", ErrDimension, err)
		}
	}
	if got := arr.Shape(); !slices.Equal(got, shape) {
		return Mask{}, fmt.Errorf("%w: mask over (%s) stacked to %v, want %v",
			ErrDimension, refNames(maskAxes), got, shape)
	}
	return maskFromArray(arr), nil
}

func refNames(refs []AxisRef) string {
	s := ""
	for i, r := range refs {
		if i > 0 {
			s += ", "
		}
		s += r.name
	}
	return s
}
