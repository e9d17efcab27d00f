package coords

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Term is an operand of axis algebra: an Axis or a LinearAxis.
type Term interface {
	Name() string
	components() ([]component, error)
}

// TermCoef is one coefficient-term pair of a linear combination.
type TermCoef struct {
	Coef float64
	Term Term
}

type component struct {
	axis Axis
	coef float64
}

// LinearAxis is a symbolic linear combination of base axes, such as
// "0.3x+0.4y". It has no index.
type LinearAxis struct {
	name  string
	comps []component
	scale float64
	unit  string
}

func (a Axis) components() ([]component, error) {
	if a.undef {
		return nil, fmt.Errorf("%w: cannot use undefined axis in a linear combination", ErrUndefinedAxis)
	}
	return []component{{axis: a, coef: 1}}, nil
}

func (l LinearAxis) components() ([]component, error) { return l.comps, nil }

// Combine builds the LinearAxis sum(coef*term). Linear terms are flattened
// and coefficients of the same base axis are summed.
func Combine(terms []TermCoef, opts ...LinearOption) (LinearAxis, error) {
	o := defaultLinearOptions()
	for _, opt := range opts {
		opt(o)
	}

	var comps []component
	for _, tc := range terms {
		if tc.Term == nil {
			return LinearAxis{}, fmt.Errorf("%w: nil term", ErrInvalidValue)
		}
		cs, err := tc.Term.components()
		if err != nil {
			return LinearAxis{}, err
		}
		for _, c := range cs {
			i := slices.IndexFunc(comps, func(x component) bool { return x.axis.name == c.axis.name })
			if i < 0 {
				comps = append(comps, component{axis: c.axis, coef: tc.Coef * c.coef})
			} else {
				comps[i].coef += tc.Coef * c.coef
			}
		}
	}
	if len(comps) == 0 {
		return LinearAxis{}, fmt.Errorf("%w: empty linear combination", ErrInvalidValue)
	}

	name := o.name
	if name == "" {
		var b strings.Builder
		for _, c := range comps {
			fmt.Fprintf(&b, "%+.2g%s", c.coef, c.axis.name)
		}
		name = strings.TrimLeft(b.String(), "+")
	}

	weighted := make([]float64, len(comps))
	units := make([]string, 0, 1)
	for i, c := range comps {
		s, ok := c.axis.Scale()
		if !ok {
			s = 1
		}
		weighted[i] = s * math.Abs(c.coef)
		if !slices.Contains(units, c.axis.Unit()) {
			units = append(units, c.axis.Unit())
		}
	}

	l := LinearAxis{name: name, comps: comps, scale: floats.Norm(weighted, 2)}
	if len(units) == 1 {
		l.unit = units[0]
	} else {
		o.logger.Warn("inconsistent units in transformed axis", "axis", name, "units", units)
	}
	return l, nil
}

// Name returns the combined axis name.
func (l LinearAxis) Name() string   { return l.name }
func (l LinearAxis) String() string { return l.name }

// Scale is the Euclidean norm of coefficient times base scale. Bases
// without a scale count as 1.
func (l LinearAxis) Scale() float64 { return l.scale }

// Unit is the common unit of the bases, empty when they disagree.
func (l LinearAxis) Unit() string { return l.unit }

// Bases returns the base axes in component order.
func (l LinearAxis) Bases() []Axis {
	out := make([]Axis, len(l.comps))
	for i, c := range l.comps {
		out[i] = c.axis
	}
	return out
}

// Vector returns the coefficients in component order.
func (l LinearAxis) Vector() []float64 {
	out := make([]float64, len(l.comps))
	for i, c := range l.comps {
		out[i] = c.coef
	}
	return out
}

// Coef returns the coefficient of the base axis called name.
func (l LinearAxis) Coef(name string) (float64, bool) {
	for _, c := range l.comps {
		if c.axis.name == name {
			return c.coef, true
		}
	}
	return 0, false
}

// Equal reports whether both combinations have the same coefficients over
// the same bases.
func (l LinearAxis) Equal(o LinearAxis) bool {
	if len(l.comps) != len(o.comps) {
		return false
	}
	for _, c := range l.comps {
		k, ok := o.Coef(c.axis.name)
		if !ok || k != c.coef {
			return false
		}
	}
	return true
}

// Transform returns the combination with coefficient vector v*m over the
// same bases. m must be n-by-n for n components.
func (l LinearAxis) Transform(m mat.Matrix, opts ...LinearOption) (LinearAxis, error) {
	n := len(l.comps)
	r, c := m.Dims()
	if r != n || c != n {
		return LinearAxis{}, fmt.Errorf("%w: %dx%d matrix for %d components", ErrInvalidValue, r, c, n)
	}
	var out mat.VecDense
	out.MulVec(m.T(), mat.NewVecDense(n, l.Vector()))

	terms := make([]TermCoef, n)
	for i, comp := range l.comps {
		terms[i] = TermCoef{Coef: out.AtVec(i), Term: comp.axis}
	}
	return Combine(terms, opts...)
}

// Neg returns -a.
func (a Axis) Neg(opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{-1, a}}, opts...)
}

// Times returns coef*a.
func (a Axis) Times(coef float64, opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{coef, a}}, opts...)
}

// Plus returns a+t.
func (a Axis) Plus(t Term, opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{1, a}, {1, t}}, opts...)
}

// Minus returns a-t.
func (a Axis) Minus(t Term, opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{1, a}, {-1, t}}, opts...)
}

// Neg returns -l.
func (l LinearAxis) Neg(opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{-1, l}}, opts...)
}

// Times returns coef*l.
func (l LinearAxis) Times(coef float64, opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{coef, l}}, opts...)
}

// Plus returns l+t.
func (l LinearAxis) Plus(t Term, opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{1, l}, {1, t}}, opts...)
}

// Minus returns l-t.
func (l LinearAxis) Minus(t Term, opts ...LinearOption) (LinearAxis, error) {
	return Combine([]TermCoef{{1, l}, {-1, t}}, opts...)
}
