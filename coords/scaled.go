package coords

import (
	"fmt"
	"math"
)

// ScaledIndex is an arithmetic progression start, start+step, ... of size
// positions. A negative step describes a reversed axis.
type ScaledIndex struct {
	start float64
	step  float64
	size  int
	unit  string
}

// NewScaledIndex creates a ScaledIndex.
func NewScaledIndex(start, step float64, size int, unit string) (*ScaledIndex, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: size must be non-negative: %d", ErrInvalidValue, size)
	}
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step must be finite and non-zero: %v", ErrInvalidValue, step)
	}
	return &ScaledIndex{start: start, step: step, size: size, unit: unit}, nil
}

// Arange returns the progression 0, step, 2*step, ... of the given size.
func Arange(size int, step float64) (*ScaledIndex, error) {
	return NewScaledIndex(0, step, size, "")
}

// Start returns the coordinate of position 0.
func (x *ScaledIndex) Start() float64 { return x.start }

// Step returns the signed step.
func (x *ScaledIndex) Step() float64 { return x.step }

// Stop returns the coordinate one step past the last position.
func (x *ScaledIndex) Stop() float64 { return x.start + x.step*float64(x.size) }

// Len returns the number of positions.
func (x *ScaledIndex) Len() int { return x.size }

// Scale returns the absolute step.
func (x *ScaledIndex) Scale() (float64, bool) { return math.Abs(x.step), true }

// Unit returns the physical unit, possibly empty.
func (x *ScaledIndex) Unit() string { return x.unit }

// Value returns the coordinate at position i.
func (x *ScaledIndex) Value(i int) (float64, error) {
	if i < 0 {
		i += x.size
	}
	if i < 0 || i >= x.size {
		return 0, fmt.Errorf("%w: position %d for size %d", ErrOutOfRange, i, x.size)
	}
	return x.start + float64(i)*x.step, nil
}

// At returns the coordinate at position i as a float64.
func (x *ScaledIndex) At(i int) (any, error) {
	v, err := x.Value(i)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Labels returns every coordinate as a float64.
func (x *ScaledIndex) Labels() []any {
	out := make([]any, x.size)
	for i := range out {
		out[i] = x.start + float64(i)*x.step
	}
	return out
}

// ToIndexer maps a coordinate c to round((c-start)/step). A ValueRange maps
// its start with ceil and its stop with truncation; only steps 0, 1 and -1
// are accepted in coordinate space.
func (x *ScaledIndex) ToIndexer(v any) (Key, error) {
	if r, ok := v.(ValueRange); ok {
		if r.Step != 0 && r.Step != 1 && r.Step != -1 {
			return nil, fmt.Errorf("%w: step size must be 1 or -1, got %d", ErrInvalidValue, r.Step)
		}
		var s Slice
		if r.Start != nil {
			c, err := coordinate(r.Start, "range start")
			if err != nil {
				return nil, err
			}
			start := int(math.Ceil((c - x.start) / x.step))
			s.start = &start
		}
		if r.Stop != nil {
			c, err := coordinate(r.Stop, "range stop")
			if err != nil {
				return nil, err
			}
			stop := int((c - x.start) / x.step)
			s.stop = &stop
		}
		s.step = r.Step
		return s, nil
	}
	c, err := coordinate(v, "coordinate")
	if err != nil {
		return nil, err
	}
	return Int(int(math.RoundToEven((c - x.start) / x.step))), nil
}

// coordinate converts v to a finite float64.
func coordinate(v any, what string) (float64, error) {
	c, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%w: non-numeric %s %v", ErrInvalidValue, what, v)
	}
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, fmt.Errorf("%w: non-finite %s %v", ErrInvalidValue, what, v)
	}
	return c, nil
}

// Locate returns the position nearest to coordinate v. It fails with
// ErrLabelNotFound when that position lies outside the index.
func (x *ScaledIndex) Locate(v any) (int, error) {
	k, err := x.ToIndexer(v)
	if err != nil {
		return 0, err
	}
	i, ok := k.(Int)
	if !ok || int(i) < 0 || int(i) >= x.size {
		return 0, fmt.Errorf("%w: coordinate %v outside %s", ErrLabelNotFound, v, x)
	}
	return int(i), nil
}

// Slice selects positions by s. The new start is the coordinate of the first
// selected position and the new step is s.Step() times the old step, so a
// step of 2 doubles the spacing and a negative step reverses the axis.
// The new size is the number of positions s selects, so a span that the
// step does not divide evenly keeps its last partial step: 2:8:4 on ten
// positions selects 2 and 6.
func (x *ScaledIndex) Slice(s Slice) (Index, error) {
	start, _, step, length := s.Indices(x.size)
	return &ScaledIndex{
		start: x.start + float64(start)*x.step,
		step:  float64(step) * x.step,
		size:  length,
		unit:  x.unit,
	}, nil
}

// Subset returns the coordinates at the given positions as a
// CategoricalIndex.
func (x *ScaledIndex) Subset(positions []int) (Index, error) {
	labels := make([]any, len(positions))
	for i, p := range positions {
		v, err := x.Value(p)
		if err != nil {
			return nil, err
		}
		labels[i] = v
	}
	return newCategorical(labels, x.unit), nil
}

// Shifted adds delta to every coordinate.
func (x *ScaledIndex) Shifted(delta float64) Index {
	return &ScaledIndex{start: x.start + delta, step: x.step, size: x.size, unit: x.unit}
}

// Inverted negates the step, keeping the start.
func (x *ScaledIndex) Inverted() Index {
	return &ScaledIndex{start: x.start, step: -x.step, size: x.size, unit: x.unit}
}

// Rescaled sets the absolute step to scale, keeping the direction.
func (x *ScaledIndex) Rescaled(scale float64) Index {
	return &ScaledIndex{start: x.start, step: math.Copysign(scale, x.step), size: x.size, unit: x.unit}
}

// WithUnit returns a copy carrying unit.
func (x *ScaledIndex) WithUnit(unit string) Index {
	return &ScaledIndex{start: x.start, step: x.step, size: x.size, unit: unit}
}

// Copy returns an independent copy.
func (x *ScaledIndex) Copy() Index {
	c := *x
	return &c
}

func (x *ScaledIndex) String() string {
	return fmt.Sprintf("ScaledIndex<start=%g, stop=%g, step=%g>", x.start, x.Stop(), x.step)
}

// Short is the same as String.
func (x *ScaledIndex) Short() string { return x.String() }
