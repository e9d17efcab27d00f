package coords

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robert-malhotra/go-coords/internal/ndarray"
)

// Key is one indexing key: a single component or a Tuple of components.
// The concrete types are Int, Slice, List, Mask, NewDim, Ellipsis and Tuple.
type Key interface {
	isKey()
	String() string
}

// Int selects a single position and removes the dimension.
type Int int

// List selects positions by a list (fancy indexing).
type List []int

// NewDim inserts a new dimension of size 1.
type NewDim struct{}

// Ellipsis expands to as many full slices as needed.
type Ellipsis struct{}

// Tuple is a multi-dimensional key, one component per dimension.
type Tuple []Key

func (Int) isKey()      {}
func (List) isKey()     {}
func (NewDim) isKey()   {}
func (Ellipsis) isKey() {}
func (Tuple) isKey()    {}
func (Slice) isKey()    {}
func (Mask) isKey()     {}

// Keys print in subscript notation, e.g. "0, 2:6, None".
func (k Int) String() string    { return fmt.Sprint(int(k)) }
func (NewDim) String() string   { return "None" }
func (Ellipsis) String() string { return "..." }

func (k List) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = fmt.Sprint(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (k Tuple) String() string {
	parts := make([]string, len(k))
	for i, c := range k {
		if c == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Slice is a positional slice with optional start and stop and a step.
// The zero value selects everything.
type Slice struct {
	start, stop *int
	step        int
}

// All selects every position.
func All() Slice { return Slice{} }

// Span selects positions start <= i < stop.
func Span(start, stop int) Slice { return Slice{start: &start, stop: &stop} }

// SpanStep selects start, start+step, ... up to but excluding stop.
func SpanStep(start, stop, step int) Slice {
	return Slice{start: &start, stop: &stop, step: step}
}

// From selects positions from start to the end.
func From(start int) Slice { return Slice{start: &start} }

// Until selects positions before stop.
func Until(stop int) Slice { return Slice{stop: &stop} }

// WithStep returns s with the given step.
func (s Slice) WithStep(step int) Slice {
	s.step = step
	return s
}

// Start returns the start bound, if set.
func (s Slice) Start() (int, bool) {
	if s.start == nil {
		return 0, false
	}
	return *s.start, true
}

// Stop returns the stop bound, if set.
func (s Slice) Stop() (int, bool) {
	if s.stop == nil {
		return 0, false
	}
	return *s.stop, true
}

// Step returns the step, 1 when unset.
func (s Slice) Step() int {
	if s.step == 0 {
		return 1
	}
	return s.step
}

// IsAll reports whether s selects every position in order.
func (s Slice) IsAll() bool {
	return s.start == nil && s.stop == nil && s.Step() == 1
}

// Indices resolves s against a dimension of size n, clamping out-of-range
// bounds the way sequence slicing does. It returns the resolved start, stop
// and step and the number of selected positions.
func (s Slice) Indices(n int) (start, stop, step, length int) {
	step = s.Step()
	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	resolve := func(b *int, def int) int {
		if b == nil {
			return def
		}
		v := *b
		if v < 0 {
			v += n
			if v < lower {
				v = lower
			}
		} else if v > upper {
			v = upper
		}
		return v
	}
	if step > 0 {
		start = resolve(s.start, lower)
		stop = resolve(s.stop, upper)
		if start < stop {
			length = (stop-start-1)/step + 1
		}
	} else {
		start = resolve(s.start, upper)
		stop = resolve(s.stop, lower)
		if stop < start {
			length = (start-stop-1)/(-step) + 1
		}
	}
	return start, stop, step, length
}

// Positions returns the positions of a dimension of size n selected by s.
func (s Slice) Positions(n int) []int {
	start, _, step, length := s.Indices(n)
	pos := make([]int, length)
	for i := range pos {
		pos[i] = start + i*step
	}
	return pos
}

// String prints s as start:stop:step, omitting unset parts.
func (s Slice) String() string {
	var b strings.Builder
	if s.start != nil {
		fmt.Fprint(&b, *s.start)
	}
	b.WriteByte(':')
	if s.stop != nil {
		fmt.Fprint(&b, *s.stop)
	}
	if s.step != 0 {
		fmt.Fprintf(&b, ":%d", s.step)
	}
	return b.String()
}

// Mask is an array key: either an N-dimensional boolean mask or a
// one-dimensional integer position array.
type Mask struct {
	shape   []int
	bools   []bool
	ints    []int
	boolean bool
}

// BoolMask creates a boolean mask with the given shape.
func BoolMask(shape []int, values []bool) (Mask, error) {
	if len(shape) == 0 {
		return Mask{}, fmt.Errorf("%w: mask must have at least one dimension", ErrInvalidValue)
	}
	if n := ndarray.NumElements(shape); n != len(values) {
		return Mask{}, fmt.Errorf("%w: mask shape %v needs %d values, got %d", ErrInvalidValue, shape, n, len(values))
	}
	return Mask{shape: slices.Clone(shape), bools: slices.Clone(values), boolean: true}, nil
}

// IntArray creates a one-dimensional integer array key.
func IntArray(positions ...int) Mask {
	return Mask{shape: []int{len(positions)}, ints: slices.Clone(positions)}
}

// IsBool reports whether m is a boolean mask.
func (m Mask) IsBool() bool { return m.boolean }

// Rank returns the number of dimensions of the mask.
func (m Mask) Rank() int { return len(m.shape) }

// Shape returns a copy of the mask shape.
func (m Mask) Shape() []int { return slices.Clone(m.shape) }

// Bools returns the boolean values in row-major order; nil for integer arrays.
func (m Mask) Bools() []bool { return slices.Clone(m.bools) }

// Ints returns the integer positions; nil for boolean masks.
func (m Mask) Ints() []int { return slices.Clone(m.ints) }

// Count returns the number of selected elements.
func (m Mask) Count() int {
	if !m.IsBool() {
		return len(m.ints)
	}
	n := 0
	for _, b := range m.bools {
		if b {
			n++
		}
	}
	return n
}

// Positions returns the flat positions of the true values of a boolean mask,
// or the positions of an integer array.
func (m Mask) Positions() []int {
	if !m.IsBool() {
		return slices.Clone(m.ints)
	}
	pos := make([]int, 0, len(m.bools))
	for i, b := range m.bools {
		if b {
			pos = append(pos, i)
		}
	}
	return pos
}

// consumes returns how many existing dimensions the mask indexes.
func (m Mask) consumes() int {
	if m.IsBool() {
		return len(m.shape)
	}
	return 1
}

// String reports the mask shape, or the positions of an integer array.
func (m Mask) String() string {
	if m.IsBool() {
		return fmt.Sprintf("mask%v", m.shape)
	}
	return fmt.Sprintf("array%v", m.ints)
}

func (m Mask) array() (*ndarray.Array[bool], error) {
	if !m.IsBool() {
		return nil, fmt.Errorf("%w: %s is not a boolean mask", ErrInvalidValue, m)
	}
	return ndarray.New(slices.Clone(m.bools), m.shape)
}

func maskFromArray(a *ndarray.Array[bool]) Mask {
	return Mask{shape: a.Shape(), bools: a.Data(), boolean: true}
}

// Expand normalizes key against ndim existing dimensions into a Tuple with
// exactly one component per existing dimension plus one per NewDim. An
// Ellipsis is replaced by as many All() slices as needed; without one the
// tuple is padded with All() on the right. A non-tuple key is treated as a
// one-element tuple.
func Expand(key Key, ndim int) (Tuple, error) {
	var items Tuple
	switch k := key.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil key", ErrInvalidValue)
	case Tuple:
		items = k
	default:
		items = Tuple{k}
	}

	consumed := 0
	ellipsis := -1
	for i, item := range items {
		switch k := item.(type) {
		case nil:
			return nil, fmt.Errorf("%w: nil key component at %d", ErrInvalidValue, i)
		case Tuple:
			return nil, fmt.Errorf("%w: nested tuple key at %d", ErrInvalidValue, i)
		case Ellipsis:
			if ellipsis >= 0 {
				return nil, fmt.Errorf("%w: key can only have a single ellipsis", ErrInvalidValue)
			}
			ellipsis = i
		case NewDim:
		case Mask:
			consumed += k.consumes()
		default:
			consumed++
		}
	}
	if consumed > ndim {
		return nil, fmt.Errorf("%w: too many indices: %d for %d dimensions", ErrDimension, consumed, ndim)
	}

	fill := make(Tuple, ndim-consumed)
	for i := range fill {
		fill[i] = All()
	}
	out := make(Tuple, 0, len(items)+len(fill))
	if ellipsis < 0 {
		out = append(out, items...)
		return append(out, fill...), nil
	}
	out = append(out, items[:ellipsis]...)
	out = append(out, fill...)
	return append(out, items[ellipsis+1:]...), nil
}
