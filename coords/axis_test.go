package coords

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func axis(t *testing.T, name string, size int) Axis {
	t.Helper()
	a, err := AxisOfSize(name, size)
	require.NoError(t, err)
	return a
}

func scaledAxis(t *testing.T, name string, size int, scale float64, unit string) Axis {
	t.Helper()
	idx, err := NewScaledIndex(0, scale, size, unit)
	require.NoError(t, err)
	a, err := NewAxis(name, idx)
	require.NoError(t, err)
	return a
}

func TestNewAxis(t *testing.T) {
	idx, err := Arange(3, 1)
	require.NoError(t, err)

	a, err := NewAxis("#", idx)
	require.NoError(t, err)
	assert.True(t, a.IsUndef())
	assert.Equal(t, 3, a.Len())
	assert.Nil(t, a.Index())

	_, err = NewAxis("", idx)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = NewAxis("x", nil)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAxisEqual(t *testing.T) {
	x := axis(t, "x", 3)
	other := axis(t, "x", 5)
	y := axis(t, "y", 3)

	assert.True(t, x.Equal(other), "identity is the name")
	assert.False(t, x.Equal(y))
	assert.False(t, Undef(3).Equal(Undef(3)))
	assert.True(t, x.Matches(ByName("x")))
	assert.True(t, Undef(2).Matches(ByName(UndefName)))
}

func TestAxisWithScale(t *testing.T) {
	x := axis(t, "x", 4)

	scaledX, err := x.WithScale(0.5)
	require.NoError(t, err)
	s, ok := scaledX.Scale()
	require.True(t, ok)
	assert.Equal(t, 0.5, s)

	s, _ = x.Scale()
	assert.Equal(t, 1.0, s, "receiver is unchanged")

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := x.WithScale(bad)
		assert.ErrorIs(t, err, ErrInvalidValue, "scale %v", bad)
	}

	_, err = Undef(4).WithScale(1)
	assert.ErrorIs(t, err, ErrUndefinedAxis)
}

func TestAxisWithSpec(t *testing.T) {
	c := axis(t, "c", 3)

	got, err := c.WithSpec(IndexSpec{Labels: LabelsOf([]string{"r", "g", "b"})})
	require.NoError(t, err)
	assert.Equal(t, []any{"r", "g", "b"}, got.Index().Labels())

	_, err = c.WithSpec(IndexSpec{Labels: LabelsOf([]string{"r", "g"})})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Undef(3).WithSpec(IndexSpec{})
	assert.ErrorIs(t, err, ErrUndefinedAxis)
}

func TestSliceAxis(t *testing.T) {
	x := scaledAxis(t, "x", 10, 0.5, "um")

	tests := []struct {
		name   string
		key    Key
		length int
		first  any
	}{
		{"slice", SpanStep(2, 8, 2), 3, 1.0},
		{"list", List{9, 0}, 2, 4.5},
		{"int array", IntArray(3), 1, 1.5},
		{"int leaves axis", Int(3), 10, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := x.SliceAxis(tt.key)
			require.NoError(t, err)
			assert.Equal(t, "x", got.Name())
			assert.Equal(t, tt.length, got.Len())
			v, err := got.Index().At(0)
			require.NoError(t, err)
			assert.Equal(t, tt.first, v)
			assert.Equal(t, "um", got.Unit())
		})
	}
}

func TestSliceAxisMask(t *testing.T) {
	c, err := NewAxis("c", mustCategorical(t, "a", "b", "c"))
	require.NoError(t, err)

	m, err := BoolMask([]int{3}, []bool{true, false, true})
	require.NoError(t, err)
	got, err := c.SliceAxis(m)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "c"}, got.Index().Labels())

	short, err := BoolMask([]int{2}, []bool{true, false})
	require.NoError(t, err)
	_, err = c.SliceAxis(short)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSliceUndefAxis(t *testing.T) {
	got, err := Undef(10).SliceAxis(Span(2, 5))
	require.NoError(t, err)
	assert.True(t, got.IsUndef())
	assert.Equal(t, 3, got.Len())

	got, err = Undef(10).SliceAxis(List{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Len())

	_, err = Undef(3).SliceAxis(List{3})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAxisIsIn(t *testing.T) {
	c, err := NewAxis("c", mustCategorical(t, "a", "b", "c", "a"))
	require.NoError(t, err)

	got, err := c.IsIn([]any{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, true}, got)

	x := axis(t, "x", 4)
	got, err = x.IsIn([]any{1, 3.0})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, got)

	_, err = Undef(2).IsIn([]any{0})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAxisRepr(t *testing.T) {
	assert.Equal(t, "#undef", Undef(3).Repr())
	x := axis(t, "x", 3)
	assert.Equal(t, `Axis(name="x", index=ScaledIndex<start=0, stop=3, step=1>)`, x.Repr())
}

func mustCategorical(t *testing.T, labels ...string) *CategoricalIndex {
	t.Helper()
	idx, err := NewCategoricalIndex(LabelsOf(labels), "")
	require.NoError(t, err)
	return idx
}

func TestLinearCombination(t *testing.T) {
	x := scaledAxis(t, "x", 4, 2, "nm")
	y := scaledAxis(t, "y", 4, 1, "nm")

	twoX, err := x.Times(2)
	require.NoError(t, err)
	u, err := twoX.Plus(y)
	require.NoError(t, err)
	assert.Equal(t, "2x+1y", u.Name())
	assert.InDelta(t, math.Hypot(2*2, 1*1), u.Scale(), 1e-12)
	assert.Equal(t, "nm", u.Unit())

	twoY, err := y.Times(2)
	require.NoError(t, err)
	v, err := x.Minus(twoY)
	require.NoError(t, err)
	assert.Equal(t, "1x-2y", v.Name())
	assert.InDelta(t, math.Hypot(1*2, 2*1), v.Scale(), 1e-12)
	assert.Equal(t, "nm", v.Unit())

	w, err := u.Plus(v)
	require.NoError(t, err)
	assert.Equal(t, "3x-1y", w.Name())
	assert.InDelta(t, math.Hypot(3*2, 1*1), w.Scale(), 1e-12)
	assert.Equal(t, "nm", w.Unit())
	assert.Equal(t, []float64{3, -1}, w.Vector())
	assert.Equal(t, []string{"x", "y"}, []string{w.Bases()[0].Name(), w.Bases()[1].Name()})

	neg, err := w.Neg()
	require.NoError(t, err)
	assert.Equal(t, "-3x+1y", neg.Name())

	k, ok := w.Coef("y")
	require.True(t, ok)
	assert.Equal(t, -1.0, k)
	_, ok = w.Coef("z")
	assert.False(t, ok)
}

func TestLinearScaleUsesBaseScales(t *testing.T) {
	x := scaledAxis(t, "x", 4, 3, "")
	y := scaledAxis(t, "y", 4, 4, "")

	l, err := Combine([]TermCoef{{1, x}, {-1, y}})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, l.Scale(), 1e-12)
}

func TestLinearInconsistentUnits(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	x := scaledAxis(t, "x", 4, 1, "nm")
	t1 := scaledAxis(t, "t", 4, 1, "s")

	l, err := x.Plus(t1, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, "", l.Unit())
	assert.Contains(t, buf.String(), "inconsistent units in transformed axis")
	assert.Contains(t, buf.String(), "axis=1x+1t")
}

func TestLinearWithName(t *testing.T) {
	x := axis(t, "x", 2)
	y := axis(t, "y", 2)

	l, err := x.Plus(y, WithName("diag"))
	require.NoError(t, err)
	assert.Equal(t, "diag", l.Name())
	assert.Equal(t, "diag", l.String())
}

func TestLinearEqual(t *testing.T) {
	x := axis(t, "x", 2)
	y := axis(t, "y", 2)

	a, err := Combine([]TermCoef{{1, x}, {2, y}})
	require.NoError(t, err)
	b, err := Combine([]TermCoef{{2, y}, {1, x}})
	require.NoError(t, err)
	c, err := Combine([]TermCoef{{1, x}})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestLinearTransform(t *testing.T) {
	x := axis(t, "x", 2)
	y := axis(t, "y", 2)
	l, err := Combine([]TermCoef{{1, x}, {2, y}})
	require.NoError(t, err)

	m := mat.NewDense(2, 2, []float64{
		0, 1,
		1, 0,
	})
	got, err := l.Transform(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, got.Vector())
	assert.Equal(t, "2x+1y", got.Name())

	_, err = l.Transform(mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLinearRejectsUndef(t *testing.T) {
	x := axis(t, "x", 2)

	_, err := x.Plus(Undef(2))
	assert.ErrorIs(t, err, ErrUndefinedAxis)

	_, err = Combine(nil)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
