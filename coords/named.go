package coords

import (
	"fmt"
	"slices"
	"strings"
)

// Named is a tuple of per-axis values accessible by axis name, such as a
// shape (t=10, z=4, y=64, x=64).
type Named[T any] struct {
	names  []string
	values []T
}

// Zip pairs values with the axis names of c.
func Zip[T any](c *Coordinates, values []T) (Named[T], error) {
	if len(values) != c.Len() {
		return Named[T]{}, fmt.Errorf("%w: %d values for %d axes", ErrDimension, len(values), c.Len())
	}
	return Named[T]{names: c.Names(), values: slices.Clone(values)}, nil
}

// Len returns the number of values.
func (n Named[T]) Len() int { return len(n.values) }

// Get returns the value of the axis r refers to.
func (n Named[T]) Get(r AxisRef) (T, error) {
	i := slices.Index(n.names, r.name)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: no %s-axis in (%s)", ErrAxisNotFound, r.name, strings.Join(n.names, ", "))
	}
	return n.values[i], nil
}

// At returns the i-th value.
func (n Named[T]) At(i int) T { return n.values[i] }

// Values and Names return copies of the paired slices.
func (n Named[T]) Values() []T { return slices.Clone(n.values) }
func (n Named[T]) Names() []string { return slices.Clone(n.names) }

func (n Named[T]) String() string {
	parts := make([]string, len(n.values))
	for i, v := range n.values {
		parts[i] = fmt.Sprintf("%s=%v", n.names[i], v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
