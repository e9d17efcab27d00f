package coords

import (
	"fmt"
	"math"
	"reflect"
)

// Index maps storage positions of one axis to coordinate values.
// Implementations are immutable: every method that derives an index returns
// a new value.
type Index interface {
	// Len returns the number of positions.
	Len() int
	// Scale returns the physical spacing of the index, if it has one.
	Scale() (float64, bool)
	Unit() string
	// At returns the coordinate value at position i (negative counts from the end).
	At(i int) (any, error)
	// Labels returns every coordinate value in position order.
	Labels() []any
	// ToIndexer converts a coordinate value to an Int key, or a ValueRange
	// to a Slice key.
	ToIndexer(v any) (Key, error)
	// Locate returns the first position holding the coordinate value v.
	Locate(v any) (int, error)
	Slice(s Slice) (Index, error)
	Subset(positions []int) (Index, error)
	Shifted(delta float64) Index
	Inverted() Index
	Rescaled(scale float64) Index
	WithUnit(unit string) Index
	Copy() Index
	String() string
	// Short is a compact representation used when printing axes.
	Short() string
}

// ValueRange is a slice in coordinate space. A nil bound is open.
type ValueRange struct {
	Start, Stop any
	Step        int
}

// Between returns the coordinate range [start, stop).
func Between(start, stop any) ValueRange {
	return ValueRange{Start: start, Stop: stop}
}

// IndexSpec describes an index by options: labels make a CategoricalIndex,
// otherwise a ScaledIndex starting at 0 with the given scale (1 when zero).
type IndexSpec struct {
	Scale  float64
	Unit   string
	Labels []any
}

// AsIndex builds the index described by spec for an axis of the given size.
func AsIndex(spec IndexSpec, size int) (Index, error) {
	if spec.Scale < 0 || math.IsNaN(spec.Scale) {
		return nil, fmt.Errorf("%w: scale must be positive: %v", ErrInvalidValue, spec.Scale)
	}
	if spec.Labels != nil {
		if len(spec.Labels) != size {
			return nil, fmt.Errorf("%w: length of coordinates must be %d, got %d", ErrInvalidValue, size, len(spec.Labels))
		}
		idx, err := NewCategoricalIndex(spec.Labels, spec.Unit)
		if err != nil {
			return nil, err
		}
		if spec.Scale > 0 {
			return idx.Rescaled(spec.Scale), nil
		}
		return idx, nil
	}
	step := spec.Scale
	if step == 0 {
		step = 1
	}
	return NewScaledIndex(0, step, size, spec.Unit)
}

// LabelsOf converts a typed slice into index labels.
func LabelsOf[T comparable](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// labelKey normalizes numeric labels so that 1 and 1.0 compare equal.
func labelKey(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	return v
}

func checkComparable(v any) error {
	if v == nil {
		return nil
	}
	if t := reflect.TypeOf(v); !t.Comparable() {
		return fmt.Errorf("%w: label of type %s is not comparable", ErrInvalidValue, t)
	}
	return nil
}
