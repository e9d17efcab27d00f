package coords

import (
	"fmt"
	"slices"
	"strings"
)

// Coordinates is the ordered, name-unique axis metadata of one array.
//
// A Coordinates value is immutable. Slicing, dropping, broadcasting and
// updating always return a new value, so one Coordinates can be shared by
// any number of arrays.
type Coordinates struct {
	axes []Axis
}

// New creates Coordinates from axes. Names must be unique; undefined axes
// may repeat.
func New(axes ...Axis) (*Coordinates, error) {
	seen := make(map[string]struct{}, len(axes))
	for _, a := range axes {
		if a.name == "" {
			return nil, fmt.Errorf("%w: zero Axis value", ErrInvalidValue)
		}
		if a.undef {
			continue
		}
		if _, ok := seen[a.name]; ok {
			return nil, fmt.Errorf("%w: %q in %v", ErrDuplicateAxis, a.name, axisNames(axes))
		}
		seen[a.name] = struct{}{}
	}
	return &Coordinates{axes: slices.Clone(axes)}, nil
}

// UndefCoords returns all-undefined coordinates for shape.
func UndefCoords(shape []int) *Coordinates {
	axes := make([]Axis, len(shape))
	for i, n := range shape {
		axes[i] = Undef(n)
	}
	return &Coordinates{axes: axes}
}

// FromNames creates coordinates with default indices for the given names.
func FromNames(names []string, shape []int) (*Coordinates, error) {
	if len(names) != len(shape) {
		return nil, fmt.Errorf("%w: length of input (%d) and shape (%d) do not match", ErrDimension, len(names), len(shape))
	}
	axes := make([]Axis, len(names))
	for i, name := range names {
		if name == UndefName {
			axes[i] = Undef(shape[i])
			continue
		}
		a, err := AxisOfSize(name, shape[i])
		if err != nil {
			return nil, err
		}
		axes[i] = a
	}
	return New(axes...)
}

// AxisSpec names an axis and describes its index.
type AxisSpec struct {
	Name string
	IndexSpec
}

// FromSpecs creates coordinates from ordered axis descriptions.
func FromSpecs(specs []AxisSpec, shape []int) (*Coordinates, error) {
	if len(specs) != len(shape) {
		return nil, fmt.Errorf("%w: length of input (%d) and shape (%d) do not match", ErrDimension, len(specs), len(shape))
	}
	axes := make([]Axis, len(specs))
	for i, spec := range specs {
		idx, err := AsIndex(spec.IndexSpec, shape[i])
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", spec.Name, err)
		}
		a, err := NewAxis(spec.Name, idx)
		if err != nil {
			return nil, err
		}
		axes[i] = a
	}
	return New(axes...)
}

// Build converts a host array's coordinate input for an array of the given
// shape. Accepted inputs are nil (all undefined), *Coordinates, []string,
// a string of single-character names, []Axis and []AxisSpec.
func Build(input any, shape []int) (*Coordinates, error) {
	switch in := input.(type) {
	case nil:
		return UndefCoords(shape), nil
	case *Coordinates:
		if in == nil {
			return UndefCoords(shape), nil
		}
		return in.checkShape(shape)
	case []string:
		return FromNames(in, shape)
	case string:
		names := make([]string, 0, len(in))
		for _, r := range in {
			names = append(names, string(r))
		}
		return FromNames(names, shape)
	case []Axis:
		c, err := New(in...)
		if err != nil {
			return nil, err
		}
		return c.checkShape(shape)
	case []AxisSpec:
		return FromSpecs(in, shape)
	}
	return nil, fmt.Errorf("%w: cannot convert %T to coordinates", ErrInvalidValue, input)
}

func (c *Coordinates) checkShape(shape []int) (*Coordinates, error) {
	if len(c.axes) != len(shape) {
		return nil, fmt.Errorf("%w: coordinates %s for shape %v", ErrDimension, c, shape)
	}
	for i, a := range c.axes {
		if a.Len() != shape[i] {
			return nil, fmt.Errorf("%w: axis %s has %d positions but dimension %d has size %d",
				ErrDimension, a.name, a.Len(), i, shape[i])
		}
	}
	return c, nil
}

// Len returns the number of axes.
func (c *Coordinates) Len() int { return len(c.axes) }

// At returns the axis at position i. It panics if i is out of range.
func (c *Coordinates) At(i int) Axis {
	if i < 0 {
		i += len(c.axes)
	}
	return c.axes[i]
}

// Axes returns a copy of the axis list.
func (c *Coordinates) Axes() []Axis { return slices.Clone(c.axes) }

// Names returns the axis names in order.
func (c *Coordinates) Names() []string { return axisNames(c.axes) }

// Shape returns the size of every axis.
func (c *Coordinates) Shape() []int {
	out := make([]int, len(c.axes))
	for i, a := range c.axes {
		out[i] = a.Len()
	}
	return out
}

// String concatenates the axis names, e.g. "tzyx".
func (c *Coordinates) String() string { return strings.Join(c.Names(), "") }

// Repr quotes every axis name, e.g. Coordinates["t", "y", "x"].
func (c *Coordinates) Repr() string {
	quoted := make([]string, len(c.axes))
	for i, a := range c.axes {
		quoted[i] = fmt.Sprintf("%q", a.name)
	}
	return "Coordinates[" + strings.Join(quoted, ", ") + "]"
}

// Equal compares the ordered axis names.
func (c *Coordinates) Equal(o *Coordinates) bool {
	return slices.Equal(c.Names(), o.Names())
}

// EqualString compares the printed form with s.
func (c *Coordinates) EqualString(s string) bool { return c.String() == s }

// EqualNames compares the ordered axis names with names.
func (c *Coordinates) EqualNames(names ...string) bool {
	return slices.Equal(c.Names(), names)
}

// HashKey returns a key identifying the ordered axis names, usable as a map
// key where Coordinates are grouped by structure.
func (c *Coordinates) HashKey() string { return strings.Join(c.Names(), "\x1f") }

// Find returns the position of the axis r refers to.
func (c *Coordinates) Find(r AxisRef) (int, error) {
	for i, a := range c.axes {
		if a.Matches(r) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: coordinates do not have %s-axis: (%s)",
		ErrAxisNotFound, r.name, strings.Join(c.Names(), ", "))
}

// FindOr returns the position of the axis r refers to, or def.
func (c *Coordinates) FindOr(r AxisRef, def int) int {
	if i, err := c.Find(r); err == nil {
		return i
	}
	return def
}

// Axis returns the axis r refers to.
func (c *Coordinates) Axis(r AxisRef) (Axis, error) {
	i, err := c.Find(r)
	if err != nil {
		return Axis{}, err
	}
	return c.axes[i], nil
}

// Has reports whether c contains the axis r refers to.
func (c *Coordinates) Has(r AxisRef) bool { return c.FindOr(r, -1) >= 0 }

// Contains reports whether c has every referenced axis. With ignoreUndef,
// references to "#" are not required.
func (c *Coordinates) Contains(refs []AxisRef, ignoreUndef bool) bool {
	for _, r := range refs {
		if ignoreUndef && r.name == UndefName {
			continue
		}
		if !c.Has(r) {
			return false
		}
	}
	return true
}

// HasUndef reports whether any axis is undefined.
func (c *Coordinates) HasUndef() bool {
	return slices.ContainsFunc(c.axes, Axis.IsUndef)
}

// Drop removes the referenced axes, keeping the order of the rest. Absent
// references are ignored.
func (c *Coordinates) Drop(refs ...AxisRef) *Coordinates {
	out := make([]Axis, 0, len(c.axes))
	for _, a := range c.axes {
		if !slices.ContainsFunc(refs, a.Matches) {
			out = append(out, a)
		}
	}
	return &Coordinates{axes: out}
}

// DropAt removes the axes at the given positions.
func (c *Coordinates) DropAt(positions ...int) (*Coordinates, error) {
	drop := make([]bool, len(c.axes))
	for _, p := range positions {
		if p < 0 {
			p += len(c.axes)
		}
		if p < 0 || p >= len(c.axes) {
			return nil, fmt.Errorf("%w: axis position %d for %d axes", ErrOutOfRange, p, len(c.axes))
		}
		drop[p] = true
	}
	out := make([]Axis, 0, len(c.axes))
	for i, a := range c.axes {
		if !drop[i] {
			out = append(out, a)
		}
	}
	return &Coordinates{axes: out}, nil
}

// Extend appends axes.
func (c *Coordinates) Extend(axes ...Axis) (*Coordinates, error) {
	return New(append(c.Axes(), axes...)...)
}

// Insert returns c with a inserted at position i.
func (c *Coordinates) Insert(i int, a Axis) (*Coordinates, error) {
	if i < 0 || i > len(c.axes) {
		return nil, fmt.Errorf("%w: insert position %d for %d axes", ErrOutOfRange, i, len(c.axes))
	}
	return New(slices.Insert(c.Axes(), i, a)...)
}

// Replace renames the axis old to name, keeping its index.
func (c *Coordinates) Replace(old AxisRef, name string) (*Coordinates, error) {
	i, err := c.Find(old)
	if err != nil {
		return nil, err
	}
	a := c.axes[i]
	var renamed Axis
	switch {
	case name == UndefName:
		renamed = Undef(a.Len())
	case a.undef:
		renamed, err = AxisOfSize(name, a.size)
		if err != nil {
			return nil, err
		}
	default:
		renamed = a
		renamed.name = name
	}
	return c.replaceAt(i, old, renamed)
}

// ReplaceAxis substitutes the axis old with a.
func (c *Coordinates) ReplaceAxis(old AxisRef, a Axis) (*Coordinates, error) {
	i, err := c.Find(old)
	if err != nil {
		return nil, err
	}
	if a.Len() != c.axes[i].Len() {
		return nil, fmt.Errorf("%w: axis %s has %d positions, replaced axis has %d",
			ErrDimension, a.name, a.Len(), c.axes[i].Len())
	}
	return c.replaceAt(i, old, a)
}

func (c *Coordinates) replaceAt(i int, old AxisRef, a Axis) (*Coordinates, error) {
	if a.name != old.name && !a.undef && c.Has(ByAxis(a)) {
		return nil, fmt.Errorf("%w: axis %s already exists: %s", ErrDuplicateAxis, a.name, c)
	}
	axes := c.Axes()
	axes[i] = a
	return New(axes...)
}

// Sub returns the axes in positions [start, stop).
func (c *Coordinates) Sub(start, stop int) *Coordinates {
	return &Coordinates{axes: slices.Clone(c.axes[start:stop])}
}

// Reordered returns the axes in the order given by refs, which must be a
// permutation of c.
func (c *Coordinates) Reordered(refs []AxisRef) (*Coordinates, []int, error) {
	if len(refs) != len(c.axes) {
		return nil, nil, fmt.Errorf("%w: %d axes to order %d", ErrDimension, len(refs), len(c.axes))
	}
	perm := make([]int, len(refs))
	used := make([]bool, len(c.axes))
	axes := make([]Axis, len(refs))
	for i, r := range refs {
		j := slices.IndexFunc(c.axes, func(a Axis) bool { return a.Matches(r) })
		for j >= 0 && used[j] {
			next := slices.IndexFunc(c.axes[j+1:], func(a Axis) bool { return a.Matches(r) })
			if next < 0 {
				j = -1
				break
			}
			j += next + 1
		}
		if j < 0 {
			return nil, nil, fmt.Errorf("%w: %s is not a permutation of %s", ErrAxisNotFound, r.name, c)
		}
		used[j] = true
		perm[i] = j
		axes[i] = c.axes[j]
	}
	return &Coordinates{axes: axes}, perm, nil
}

// UpdateCoords returns c with the named axes bound to new indices. All
// updates are validated before any is applied.
func (c *Coordinates) UpdateCoords(updates map[string]IndexSpec) (*Coordinates, error) {
	if len(updates) == 0 {
		return c, nil
	}
	axes := c.Axes()
	for name, spec := range updates {
		i, err := c.Find(ByName(name))
		if err != nil {
			return nil, err
		}
		a, err := axes[i].WithSpec(spec)
		if err != nil {
			return nil, err
		}
		axes[i] = a
	}
	return &Coordinates{axes: axes}, nil
}

// UpdateScales returns c with the named axes rescaled. Every scale must be
// strictly positive.
func (c *Coordinates) UpdateScales(scales map[string]float64) (*Coordinates, error) {
	if len(scales) == 0 {
		return c, nil
	}
	axes := c.Axes()
	for name, s := range scales {
		i, err := c.Find(ByName(name))
		if err != nil {
			return nil, err
		}
		a, err := axes[i].WithScale(s)
		if err != nil {
			return nil, err
		}
		axes[i] = a
	}
	return &Coordinates{axes: axes}, nil
}

// Copy returns an independent copy of c.
func (c *Coordinates) Copy() *Coordinates {
	return &Coordinates{axes: slices.Clone(c.axes)}
}

func axisNames(axes []Axis) []string {
	out := make([]string, len(axes))
	for i, a := range axes {
		out[i] = a.name
	}
	return out
}
