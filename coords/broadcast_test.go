package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"zyx", "tzyx"}, "tzyx"},
		{[]string{"yx", "tzyx"}, "tzyx"},
		{[]string{"z", "tzyx"}, "tzyx"},
		{[]string{"tzcyx", "tyx"}, "tzcyx"},
		{[]string{"tzyx", "tcyx"}, "tzcyx"},
		{[]string{"zyx", "yx"}, "zyx"},
		{[]string{"yx", "xy"}, "yx"},
		{[]string{"tyx", "xy"}, "tyx"},
		{[]string{"y", "x"}, "yx"},
		{[]string{"z", "y", "x"}, "zyx"},
		{[]string{"dz", "dy", "dx"}, "dzyx"},
		{[]string{"zyx", "yx", "zy"}, "zyx"},
		{[]string{"tzyx", "tyx", "tzyx", "yzx"}, "tzyx"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cs := make([]*Coordinates, len(tt.in))
			for i, s := range tt.in {
				cs[i] = named(t, s)
			}
			got, err := Broadcast(cs...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBroadcastKeepsIndices(t *testing.T) {
	a, err := FromSpecs([]AxisSpec{
		{Name: "y", IndexSpec: IndexSpec{Scale: 0.5}},
		{Name: "x", IndexSpec: IndexSpec{Scale: 0.5}},
	}, []int{4, 5})
	require.NoError(t, err)
	b, err := FromSpecs([]AxisSpec{
		{Name: "c", IndexSpec: IndexSpec{Labels: LabelsOf([]string{"r", "g"})}},
		{Name: "x", IndexSpec: IndexSpec{}},
	}, []int{2, 5})
	require.NoError(t, err)

	got, err := BroadcastTwo(a, b)
	require.NoError(t, err)
	assert.Equal(t, "ycx", got.String())
	assert.Equal(t, []int{4, 2, 5}, got.Shape())
	s, _ := got.At(2).Scale()
	assert.Equal(t, 0.5, s, "axes of the base win")
	assert.Equal(t, []any{"r", "g"}, got.At(1).Index().Labels())
}

func TestBroadcastErrors(t *testing.T) {
	_, err := Broadcast(named(t, "yx"))
	assert.ErrorIs(t, err, ErrInvalidValue)

	u, err := Build(nil, []int{3, 3})
	require.NoError(t, err)
	_, err = Broadcast(named(t, "yx"), u)
	assert.ErrorIs(t, err, ErrUndefinedAxis)
	assert.ErrorIs(t, err, ErrCoordinate)
}

func TestBroadcastAssociative(t *testing.T) {
	tests := []struct {
		a, b, c string
		ordered bool
	}{
		{"zyx", "tzyx", "zy", true},
		{"y", "x", "z", true},
		{"tyx", "tcyx", "zyx", true},
		{"yx", "xy", "yx", true},
		{"ty", "cx", "xt", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b+"_"+tt.c, func(t *testing.T) {
			a, b, c := named(t, tt.a), named(t, tt.b), named(t, tt.c)

			ab, err := BroadcastTwo(a, b)
			require.NoError(t, err)
			left, err := BroadcastTwo(ab, c)
			require.NoError(t, err)

			bc, err := BroadcastTwo(b, c)
			require.NoError(t, err)
			right, err := BroadcastTwo(a, bc)
			require.NoError(t, err)

			assert.ElementsMatch(t, left.Names(), right.Names())
			if tt.ordered {
				assert.Equal(t, left.String(), right.String())
			}
		})
	}
}
