package coords

import (
	"fmt"
	"math"
)

// UndefName is the name of every undefined axis.
const UndefName = "#"

// Axis is a name bound to an Index. The name is the identity of the axis.
//
// The undefined axis (see Undef) has name "#" and no index; it only
// remembers the size of its dimension.
type Axis struct {
	name  string
	index Index
	undef bool
	size  int
}

// NewAxis binds name to index. The reserved name "#" yields an undefined
// axis of the index length.
func NewAxis(name string, index Index) (Axis, error) {
	if index == nil {
		return Axis{}, fmt.Errorf("%w: axis %q has no index", ErrInvalidValue, name)
	}
	if name == "" {
		return Axis{}, fmt.Errorf("%w: empty axis name", ErrInvalidValue)
	}
	if name == UndefName {
		return Undef(index.Len()), nil
	}
	return Axis{name: name, index: index}, nil
}

// AxisOfSize returns the axis name with the index 0, 1, ..., size-1.
func AxisOfSize(name string, size int) (Axis, error) {
	idx, err := Arange(size, 1)
	if err != nil {
		return Axis{}, err
	}
	return NewAxis(name, idx)
}

// Undef returns an undefined axis for a dimension of the given size.
func Undef(size int) Axis {
	return Axis{name: UndefName, undef: true, size: size}
}

// Name returns the axis name; UndefName for an undefined axis.
func (a Axis) Name() string   { return a.name }
func (a Axis) String() string { return a.name }

// Index returns the bound index; nil for an undefined axis.
func (a Axis) Index() Index { return a.index }

// IsUndef reports whether a is an undefined axis.
func (a Axis) IsUndef() bool { return a.undef }

// Ref returns a reference to a by name.
func (a Axis) Ref() AxisRef { return ByAxis(a) }

// Len returns the number of positions along a.
func (a Axis) Len() int {
	if a.undef {
		return a.size
	}
	return a.index.Len()
}

// Scale returns the physical scale of the axis, if its index has one.
func (a Axis) Scale() (float64, bool) {
	if a.undef {
		return 0, false
	}
	return a.index.Scale()
}

// Unit returns the unit of the bound index, if any.
func (a Axis) Unit() string {
	if a.undef {
		return ""
	}
	return a.index.Unit()
}

// Equal reports whether a and b are the same axis: equal names. Undefined
// axes carry no identity and are never equal to another axis.
func (a Axis) Equal(b Axis) bool {
	return !a.undef && !b.undef && a.name == b.name
}

// Matches reports whether the axis is referred to by r.
func (a Axis) Matches(r AxisRef) bool { return a.name == r.name }

// WithScale returns the axis with its index rescaled. The scale must be
// strictly positive.
func (a Axis) WithScale(scale float64) (Axis, error) {
	if a.undef {
		return Axis{}, fmt.Errorf("%w: cannot set scale on an undefined axis", ErrUndefinedAxis)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Axis{}, fmt.Errorf("%w: scale of %s must be positive: %v", ErrInvalidValue, a.name, scale)
	}
	a.index = a.index.Rescaled(scale)
	return a, nil
}

// WithUnit returns the axis with a new unit. Undefined axes are returned
// unchanged.
func (a Axis) WithUnit(unit string) Axis {
	if a.undef {
		return a
	}
	a.index = a.index.WithUnit(unit)
	return a
}

// WithIndex returns the axis bound to a new index of the same length.
func (a Axis) WithIndex(index Index) (Axis, error) {
	if index == nil {
		return Axis{}, fmt.Errorf("%w: nil index for %s", ErrInvalidValue, a.name)
	}
	if index.Len() != a.Len() {
		return Axis{}, fmt.Errorf("%w: length of coordinates must be %d, got %d", ErrInvalidValue, a.Len(), index.Len())
	}
	if a.undef {
		return Axis{}, fmt.Errorf("%w: cannot set coordinates on an undefined axis", ErrUndefinedAxis)
	}
	a.index = index
	return a, nil
}

// WithSpec returns the axis bound to the index described by spec.
func (a Axis) WithSpec(spec IndexSpec) (Axis, error) {
	idx, err := AsIndex(spec, a.Len())
	if err != nil {
		return Axis{}, fmt.Errorf("axis %s: %w", a.name, err)
	}
	return a.WithIndex(idx)
}

// SliceAxis returns the axis after applying one key component to its
// dimension. Slices slice the index; lists, integer arrays and
// one-dimensional boolean masks take a subset. Other keys leave the axis
// unchanged.
func (a Axis) SliceAxis(key Key) (Axis, error) {
	switch k := key.(type) {
	case Slice:
		if a.undef {
			_, _, _, n := k.Indices(a.size)
			return Undef(n), nil
		}
		idx, err := a.index.Slice(k)
		if err != nil {
			return Axis{}, err
		}
		a.index = idx
		return a, nil
	case List:
		return a.subset([]int(k))
	case Mask:
		if k.IsBool() {
			if k.Rank() != 1 || k.shape[0] != a.Len() {
				return Axis{}, fmt.Errorf("%w: mask of shape %v for axis %s of size %d",
					ErrInvalidValue, k.shape, a.name, a.Len())
			}
		}
		return a.subset(k.Positions())
	}
	return a, nil
}

func (a Axis) subset(positions []int) (Axis, error) {
	if a.undef {
		for _, p := range positions {
			if p < -a.size || p >= a.size {
				return Axis{}, fmt.Errorf("%w: position %d for size %d", ErrOutOfRange, p, a.size)
			}
		}
		return Undef(len(positions)), nil
	}
	idx, err := a.index.Subset(positions)
	if err != nil {
		return Axis{}, fmt.Errorf("axis %s: %w", a.name, err)
	}
	a.index = idx
	return a, nil
}

// IsIn reports, for every position, whether its coordinate is one of values.
func (a Axis) IsIn(values []any) ([]bool, error) {
	if a.undef {
		return nil, fmt.Errorf("%w: axis has no coordinates", ErrInvalidValue)
	}
	set := make(map[any]struct{}, len(values))
	for _, v := range values {
		if err := checkComparable(v); err != nil {
			return nil, err
		}
		set[labelKey(v)] = struct{}{}
	}
	labels := a.index.Labels()
	out := make([]bool, len(labels))
	for i, l := range labels {
		_, out[i] = set[labelKey(l)]
	}
	return out, nil
}

// Repr returns a detailed representation including the index.
func (a Axis) Repr() string {
	if a.undef {
		return "#undef"
	}
	return fmt.Sprintf("Axis(name=%q, index=%s)", a.name, a.index.Short())
}

// AxisRef refers to an axis by name. It is the single form in which axes are
// passed to lookups; build one with ByName or ByAxis.
type AxisRef struct {
	name string
}

// ByName refers to the axis called name. "#" refers to undefined axes.
func ByName(name string) AxisRef { return AxisRef{name: name} }

// ByAxis refers to a by its name.
func ByAxis(a Axis) AxisRef { return AxisRef{name: a.name} }

// Refs converts names into references.
func Refs(names ...string) []AxisRef {
	out := make([]AxisRef, len(names))
	for i, n := range names {
		out[i] = ByName(n)
	}
	return out
}

// Name returns the referenced axis name.
func (r AxisRef) Name() string   { return r.name }
func (r AxisRef) String() string { return r.name }
