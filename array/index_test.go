package array

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-coords/coords"
)

func TestIndexCoords(t *testing.T) {
	all := coords.All()
	tests := []struct {
		name  string
		key   coords.Key
		want  string
		shape []int
	}{
		{"int", coords.Int(0), "zyx", []int{10, 10, 10}},
		{"two ints", coords.Tuple{coords.Int(0), coords.Int(0)}, "yx", []int{10, 10}},
		{"three ints", coords.Tuple{coords.Int(1), coords.Int(1), coords.Int(2)}, "x", []int{10}},
		{"int slice int", coords.Tuple{coords.Int(1), all, coords.Int(2)}, "zx", []int{10, 10}},
		{"int slice range", coords.Tuple{coords.Int(1), all, coords.Span(5, 7)}, "zyx", []int{10, 2, 10}},
		{"second int", coords.Tuple{all, coords.Int(0)}, "tyx", []int{10, 10, 10}},
		{"list", coords.List{1, 3, 5}, "tzyx", []int{3, 10, 10, 10}},
		{"int list", coords.Tuple{coords.Int(5), coords.List{1, 3, 5}}, "zyx", []int{3, 10, 10}},
		{"two lists", coords.Tuple{coords.List{1, 2, 3}, coords.List{1, 2, 3}}, "#yx", []int{3, 10, 10}},
		{"separated lists", coords.Tuple{coords.List{1, 2, 3}, all, coords.List{1, 2, 3}}, "#zx", []int{3, 10, 10}},
		{"inner lists", coords.Tuple{all, coords.List{1, 2, 3}, all, coords.List{1, 2, 3}}, "t#y", []int{10, 3, 10}},
		{"three lists", coords.Tuple{coords.List{1, 3, 5}, coords.List{1, 2, 3}, all, coords.List{1, 2, 3}}, "#y", []int{3, 10}},
		{"new axis", coords.NewDim{}, "#tzyx", []int{1, 10, 10, 10, 10}},
		{"inner new axis", coords.Tuple{all, all, coords.NewDim{}}, "tz#yx", []int{10, 10, 1, 10, 10}},
		{"two new axes", coords.Tuple{coords.NewDim{}, all, coords.NewDim{}}, "#t#zyx", []int{1, 10, 1, 10, 10, 10}},
		{"ellipsis int", coords.Tuple{coords.Ellipsis{}, coords.Int(0)}, "tzy", []int{10, 10, 10}},
		{"ellipsis int slice", coords.Tuple{coords.Ellipsis{}, coords.Int(0), all}, "tzx", []int{10, 10, 10}},
		{"int ellipsis int", coords.Tuple{coords.Int(0), coords.Ellipsis{}, coords.Int(0)}, "zy", []int{10, 10}},
	}
	a := arange(t, "tzyx", 10, 10, 10, 10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Index(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Coords().String())
			assert.Equal(t, tt.shape, got.Dims())
		})
	}
}

func TestIndexValues(t *testing.T) {
	a := arange(t, "yx", 3, 4)

	got, err := a.Index(coords.Tuple{coords.Int(-1), coords.SpanStep(3, 0, -2)})
	require.NoError(t, err)
	assert.Equal(t, []int{11, 9}, got.Values())

	got, err = a.Index(coords.Tuple{coords.Span(1, 3), coords.Span(1, 3)})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, got.Dims())
	assert.Equal(t, []int{5, 6, 9, 10}, got.Values())

	got, err = a.Index(coords.Tuple{coords.List{0, 2}, coords.List{1, -1}})
	require.NoError(t, err)
	assert.Equal(t, "#", got.Coords().String())
	assert.Equal(t, []int{1, 11}, got.Values())

	got, err = a.Index(coords.Tuple{coords.List{2}, coords.List{0, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 9, 10}, got.Values(), "length-1 lists are repeated")

	got, err = a.Index(coords.Tuple{coords.All(), coords.IntArray(3, 0)})
	require.NoError(t, err)
	assert.Equal(t, "yx", got.Coords().String())
	assert.Equal(t, []int{3, 0, 7, 4, 11, 8}, got.Values())

	_, err = a.Index(coords.Int(3))
	assert.ErrorIs(t, err, ErrIndex)

	_, err = a.Index(coords.Tuple{coords.List{0, 1}, coords.List{0, 1, 2}})
	assert.ErrorIs(t, err, ErrShape)

	got, err = a.Index(coords.IntArray())
	require.NoError(t, err)
	assert.Equal(t, "yx", got.Coords().String())
	assert.Equal(t, []int{0, 4}, got.Dims())
	assert.Empty(t, got.Values())

	same, err := a.Index(coords.Ellipsis{})
	require.NoError(t, err)
	assert.Same(t, a, same)
}

func TestIndexMask(t *testing.T) {
	a := arange(t, "tzyx", 10, 10, 10, 10)

	pick := func(n int, shape ...int) coords.Mask {
		size := 1
		for _, s := range shape {
			size *= s
		}
		values := make([]bool, size)
		for i := 0; i < size; i += 3 {
			values[i] = true
		}
		m, err := coords.BoolMask(shape, values)
		require.NoError(t, err)
		require.Equal(t, n, m.Count())
		return m
	}

	got, err := a.Index(pick(4, 10))
	require.NoError(t, err)
	assert.Equal(t, "tzyx", got.Coords().String())
	assert.Equal(t, []int{4, 10, 10, 10}, got.Dims())

	got, err = a.Index(coords.Tuple{coords.Int(0), pick(4, 10)})
	require.NoError(t, err)
	assert.Equal(t, "zyx", got.Coords().String())

	got, err = a.Index(pick(34, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "#yx", got.Coords().String())
	assert.Equal(t, []int{34, 10, 10}, got.Dims())

	got, err = a.Index(pick(334, 10, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "#x", got.Coords().String())
	assert.Equal(t, []int{334, 10}, got.Dims())
}

func TestISel(t *testing.T) {
	a := arange(t, "tcyx", 10, 2, 30, 40)

	tests := []struct {
		name string
		sel  coords.Slicer
		key  coords.Key
	}{
		{
			"ints",
			coords.Slicer{}.On("t", coords.Int(4)).On("c", coords.Int(0)),
			coords.Tuple{coords.Int(4), coords.Int(0)},
		},
		{
			"int and range",
			coords.Slicer{}.On("c", coords.Int(0)).On("x", coords.Span(10, 30)),
			coords.Tuple{coords.All(), coords.Int(0), coords.All(), coords.Span(10, 30)},
		},
		{
			"paired lists",
			coords.Slicer{}.On("y", coords.List{3, 6, 20, 26}).On("x", coords.List{7, 3, 4, 13}),
			coords.Tuple{coords.All(), coords.All(), coords.List{3, 6, 20, 26}, coords.List{7, 3, 4, 13}},
		},
		{
			"reversed and stepped",
			coords.Slicer{}.On("t", coords.All().WithStep(-1)).On("x", coords.SpanStep(2, -1, 3)),
			coords.Tuple{coords.All().WithStep(-1), coords.All(), coords.All(), coords.SpanStep(2, -1, 3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.ISel(tt.sel.Selection())
			require.NoError(t, err)
			want, err := a.Index(tt.key)
			require.NoError(t, err)
			assert.Equal(t, want.Dims(), got.Dims())
			assert.Equal(t, want.Values(), got.Values())
			assert.Equal(t, want.Coords().String(), got.Coords().String())
		})
	}
}

func TestSel(t *testing.T) {
	labels := func(prefix string, n int) []any {
		out := make([]any, n)
		for i := range out {
			out[i] = prefix + strconv.Itoa(i)
		}
		return out
	}
	a := arange(t, []coords.AxisSpec{
		{Name: "t", IndexSpec: coords.IndexSpec{Labels: labels("t=", 10)}},
		{Name: "c", IndexSpec: coords.IndexSpec{Labels: coords.LabelsOf([]string{"blue", "red"})}},
		{Name: "y", IndexSpec: coords.IndexSpec{Labels: labels("", 30)}},
		{Name: "x", IndexSpec: coords.IndexSpec{Labels: labels("", 40)}},
	}, 10, 2, 30, 40)

	tests := []struct {
		name string
		sel  []coords.LabelSelector
		key  coords.Key
	}{
		{
			"labels",
			[]coords.LabelSelector{{Axis: coords.ByName("t"), Value: "t=4"}, {Axis: coords.ByName("c"), Value: "blue"}},
			coords.Tuple{coords.Int(4), coords.Int(0)},
		},
		{
			"label range",
			[]coords.LabelSelector{{Axis: coords.ByName("c"), Value: "blue"}, {Axis: coords.ByName("x"), Value: coords.Between("10", "30")}},
			coords.Tuple{coords.All(), coords.Int(0), coords.All(), coords.Span(10, 30)},
		},
		{
			"label lists",
			[]coords.LabelSelector{
				{Axis: coords.ByName("y"), Value: []any{"3", "6", "20", "26"}},
				{Axis: coords.ByName("x"), Value: []any{"7", "3", "4", "13"}},
			},
			coords.Tuple{coords.All(), coords.All(), coords.List{3, 6, 20, 26}, coords.List{7, 3, 4, 13}},
		},
		{
			"reversed and stepped",
			[]coords.LabelSelector{
				{Axis: coords.ByName("t"), Value: coords.ValueRange{Step: -1}},
				{Axis: coords.ByName("x"), Value: coords.ValueRange{Start: "2", Stop: "39", Step: 3}},
			},
			coords.Tuple{coords.All().WithStep(-1), coords.All(), coords.All(), coords.SpanStep(2, 40, 3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Sel(tt.sel...)
			require.NoError(t, err)
			want, err := a.Index(tt.key)
			require.NoError(t, err)
			assert.Equal(t, want.Dims(), got.Dims())
			assert.Equal(t, want.Values(), got.Values())
		})
	}

	_, err := a.Sel(coords.LabelSelector{Axis: coords.ByName("c"), Value: "green"})
	assert.ErrorIs(t, err, coords.ErrLabelNotFound)
}

func TestSliceScale(t *testing.T) {
	a := arange(t, "yx", 10, 10)
	a, err := a.WithScales(map[string]float64{"y": 0.2, "x": 0.2})
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   coords.Key
		scale float64
	}{
		{"int", coords.Int(0), 0.2},
		{"range", coords.Tuple{coords.Int(0), coords.Span(2, 4)}, 0.2},
		{"reversed", coords.Tuple{coords.Int(0), coords.All().WithStep(-1)}, 0.2},
		{"every second", coords.Tuple{coords.Int(0), coords.All().WithStep(2)}, 0.4},
		{"every third reversed", coords.Tuple{coords.Int(0), coords.All().WithStep(-3)}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Index(tt.key)
			require.NoError(t, err)
			x, err := got.Scales().Get(coords.ByName("x"))
			require.NoError(t, err)
			assert.InDelta(t, tt.scale, x, 1e-12)
		})
	}
}

func TestSetWhere(t *testing.T) {
	a := arange(t, "tyx", 2, 2, 3)

	mask, err := New([]bool{true, false, false, false, false, true}, []int{3, 2}, "xy")
	require.NoError(t, err)

	got, err := a.SetWhere(mask, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{
		-1, 1, 2, 3, 4, -1,
		-1, 7, 8, 9, 10, -1,
	}, got.Values())
	assert.Equal(t, 1, a.Values()[1], "receiver is unchanged")
	v, _ := a.At(0, 0, 0)
	assert.Equal(t, 0, v)

	bad, err := New([]bool{true, false}, []int{2}, "z")
	require.NoError(t, err)
	_, err = a.SetWhere(bad, -1)
	assert.ErrorIs(t, err, coords.ErrAxisNotFound)

	full, err := New(make([]bool, 12), []int{2, 2, 3}, nil)
	require.NoError(t, err)
	got, err = a.SetWhere(full, -1)
	require.NoError(t, err)
	assert.Equal(t, a.Values(), got.Values())
}

func TestSetWhereUndefMaskMatchesTrailingAxes(t *testing.T) {
	a := arange(t, "tyx", 2, 2, 3)

	mask, err := New([]bool{true, false, false, false, false, true}, []int{2, 3}, nil)
	require.NoError(t, err)
	got, err := a.SetWhere(mask, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{
		-1, 1, 2, 3, 4, -1,
		-1, 7, 8, 9, 10, -1,
	}, got.Values())

	tests := []struct {
		name  string
		shape []int
		err   error
	}{
		{"too many dimensions", []int{1, 2, 2, 3}, coords.ErrDimension},
		{"trailing shape mismatch", []int{3, 2}, ErrShape},
		{"leading shape only", []int{2, 2}, ErrShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := 1
			for _, s := range tt.shape {
				n *= s
			}
			m, err := New(make([]bool, n), tt.shape, nil)
			require.NoError(t, err)
			_, err = a.SetWhere(m, -1)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
