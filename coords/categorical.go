package coords

import (
	"fmt"
	"slices"
	"strings"
)

// CategoricalIndex is an ordered label sequence with constant-time label
// lookup. Labels may repeat; lookups resolve to the first position.
type CategoricalIndex struct {
	labels    []any
	positions map[any]int
	scale     float64
	hasScale  bool
	unit      string
}

// NewCategoricalIndex creates a CategoricalIndex. Labels must be comparable.
func NewCategoricalIndex(labels []any, unit string) (*CategoricalIndex, error) {
	for _, l := range labels {
		if err := checkComparable(l); err != nil {
			return nil, err
		}
	}
	return newCategorical(slices.Clone(labels), unit), nil
}

// newCategorical takes ownership of labels, which must be comparable.
func newCategorical(labels []any, unit string) *CategoricalIndex {
	positions := make(map[any]int, len(labels))
	for i, l := range labels {
		k := labelKey(l)
		if _, ok := positions[k]; !ok {
			positions[k] = i
		}
	}
	return &CategoricalIndex{labels: labels, positions: positions, unit: unit}
}

func (x *CategoricalIndex) derive(labels []any) *CategoricalIndex {
	out := newCategorical(labels, x.unit)
	out.scale, out.hasScale = x.scale, x.hasScale
	return out
}

// Len returns the number of labels.
func (x *CategoricalIndex) Len() int { return len(x.labels) }

// Scale returns the user-assigned scale; categorical indices have none
// until Rescaled.
func (x *CategoricalIndex) Scale() (float64, bool) { return x.scale, x.hasScale }

// Unit returns the physical unit, possibly empty.
func (x *CategoricalIndex) Unit() string { return x.unit }

// At returns the label at position i, counting from the end when negative.
func (x *CategoricalIndex) At(i int) (any, error) {
	n := len(x.labels)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: position %d for size %d", ErrOutOfRange, i, n)
	}
	return x.labels[i], nil
}

// Labels returns a copy of the labels.
func (x *CategoricalIndex) Labels() []any { return slices.Clone(x.labels) }

// HasDuplicate reports whether any label appears more than once.
func (x *CategoricalIndex) HasDuplicate() bool {
	return len(x.positions) != len(x.labels)
}

// Lookup returns the first position of label.
func (x *CategoricalIndex) Lookup(label any) (int, bool) {
	if checkComparable(label) != nil {
		return 0, false
	}
	i, ok := x.positions[labelKey(label)]
	return i, ok
}

// ToIndexer looks up a label, or the start and stop labels of a ValueRange.
// Both forms fail when the index has duplicate labels.
func (x *CategoricalIndex) ToIndexer(v any) (Key, error) {
	if x.HasDuplicate() {
		return nil, fmt.Errorf("%w: cannot convert %v to a position", ErrDuplicateLabel, v)
	}
	if r, ok := v.(ValueRange); ok {
		s := Slice{step: r.Step}
		if r.Start != nil {
			i, ok := x.Lookup(r.Start)
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrLabelNotFound, r.Start)
			}
			s.start = &i
		}
		if r.Stop != nil {
			i, ok := x.Lookup(r.Stop)
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrLabelNotFound, r.Stop)
			}
			s.stop = &i
		}
		return s, nil
	}
	i, ok := x.Lookup(v)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrLabelNotFound, v)
	}
	return Int(i), nil
}

// Locate returns the position of label v.
func (x *CategoricalIndex) Locate(v any) (int, error) {
	i, ok := x.Lookup(v)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrLabelNotFound, v)
	}
	return i, nil
}

// Slice keeps the labels at the positions s selects.
func (x *CategoricalIndex) Slice(s Slice) (Index, error) {
	pos := s.Positions(len(x.labels))
	labels := make([]any, len(pos))
	for i, p := range pos {
		labels[i] = x.labels[p]
	}
	return x.derive(labels), nil
}

// Subset keeps the labels at positions, in the given order.
func (x *CategoricalIndex) Subset(positions []int) (Index, error) {
	labels := make([]any, len(positions))
	for i, p := range positions {
		l, err := x.At(p)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return x.derive(labels), nil
}

// Shifted returns a copy; labels have no arithmetic.
func (x *CategoricalIndex) Shifted(float64) Index { return x.Copy() }

// Inverted reverses the label order.
func (x *CategoricalIndex) Inverted() Index {
	labels := slices.Clone(x.labels)
	slices.Reverse(labels)
	return x.derive(labels)
}

// Rescaled returns a copy with scale assigned.
func (x *CategoricalIndex) Rescaled(scale float64) Index {
	out := x.derive(slices.Clone(x.labels))
	out.scale, out.hasScale = scale, true
	return out
}

// WithUnit returns a copy carrying unit.
func (x *CategoricalIndex) WithUnit(unit string) Index {
	out := x.derive(slices.Clone(x.labels))
	out.unit = unit
	return out
}

// Copy returns an independent copy.
func (x *CategoricalIndex) Copy() Index {
	return x.derive(slices.Clone(x.labels))
}

func (x *CategoricalIndex) String() string {
	return "CategoricalIndex<" + formatLabels(x.labels) + ">"
}

// Short abbreviates long label lists.
func (x *CategoricalIndex) Short() string {
	if len(x.labels) < 4 {
		return x.String()
	}
	l := x.labels
	return fmt.Sprintf("CategoricalIndex<%#v, %#v, ..., %#v>", l[0], l[1], l[len(l)-1])
}

func formatLabels(labels []any) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%#v", l)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
