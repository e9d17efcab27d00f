package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arange(shape ...int) *Array[int] {
	data := make([]int, NumElements(shape))
	for i := range data {
		data[i] = i
	}
	a, _ := New(data, shape)
	return a
}

func TestNewShapeMismatch(t *testing.T) {
	_, err := New([]int{1, 2, 3}, []int{2, 2})
	require.ErrorIs(t, err, ErrShape)

	_, err = New([]int{}, []int{-1})
	require.ErrorIs(t, err, ErrShape)
}

func TestAtAndSet(t *testing.T) {
	a := arange(2, 3)

	v, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = a.At(-1, -1)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	require.NoError(t, a.Set(42, 0, 1))
	v, _ = a.At(0, 1)
	assert.Equal(t, 42, v)

	_, err = a.At(2, 0)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.At(0)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestHyperslab(t *testing.T) {
	a := arange(3, 4)

	sub, err := a.Hyperslab([]int{1, 1}, []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, sub.Shape())
	assert.Equal(t, []int{5, 6, 9, 10}, sub.Data())

	_, err = a.Hyperslab([]int{2, 0}, []int{2, 1})
	assert.ErrorIs(t, err, ErrIndex)
}

func TestGatherNonContiguous(t *testing.T) {
	a := arange(3, 4)

	sub, err := a.Gather([][]int{{2, 0}, {3, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{11, 9, 3, 1}, sub.Data())

	_, err = a.Gather([][]int{{3}, {0}})
	assert.ErrorIs(t, err, ErrIndex)
}

func TestTake(t *testing.T) {
	a := arange(2, 3, 4)

	out, err := a.Take(1, []int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 4}, out.Shape())
	v, _ := out.At(1, 0, 3)
	assert.Equal(t, 12+8+3, v)
}

func TestTakePaired(t *testing.T) {
	a := arange(4, 5, 6)

	// a[[1, 2], :, [3, 4]] with the paired dimension kept in front
	out, err := a.TakePaired([]int{0, 2}, [][]int{{1, 2}, {3, 4}}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, out.Shape())
	v, _ := out.At(1, 4)
	want, _ := a.At(2, 4, 4)
	assert.Equal(t, want, v)

	// a[:, [1, 2], [3, 4]] placed at the first listed dimension
	out, err = arange(4, 5, 6).TakePaired([]int{1, 2}, [][]int{{1, 2}, {3, 4}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, out.Shape())
	v, _ = out.At(3, 0)
	want, _ = a.At(3, 1, 3)
	assert.Equal(t, want, v)

	// length-1 lists repeat
	out, err = a.TakePaired([]int{0, 1}, [][]int{{0}, {1, 2, 3}}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6}, out.Shape())

	_, err = a.TakePaired([]int{0, 1}, [][]int{{0, 1}, {1, 2, 3}}, 0)
	assert.ErrorIs(t, err, ErrShape)
}

func TestMaskSelect(t *testing.T) {
	a := arange(2, 3, 2)
	mask := []bool{true, false, true, false, false, true}

	out, err := a.MaskSelect(0, []int{2, 3}, mask)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, out.Shape())
	assert.Equal(t, []int{0, 1, 4, 5, 10, 11}, out.Data())

	_, err = a.MaskSelect(0, []int{3, 2}, mask)
	assert.ErrorIs(t, err, ErrShape)
}

func TestTranspose(t *testing.T) {
	a := arange(2, 3)

	out, err := a.Transpose([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, out.Shape())
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, out.Data())

	_, err = a.Transpose([]int{0, 0})
	assert.ErrorIs(t, err, ErrShape)
}

func TestMoveAxis(t *testing.T) {
	a := arange(2, 3, 4)
	out, err := a.MoveAxis(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, out.Shape())
}

func TestStack(t *testing.T) {
	a := arange(2)

	out, err := a.Stack(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, out.Shape())
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1}, out.Data())

	out, err = a.Stack(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, out.Shape())
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, out.Data())
}

func TestExpandAndSqueeze(t *testing.T) {
	a := arange(2, 3)

	out, err := a.ExpandDims(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, out.Shape())

	back, err := out.Squeeze(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, back.Shape())

	_, err = a.Squeeze(0)
	assert.ErrorIs(t, err, ErrShape)
}

func TestUnravel(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Unravel(1*20+2*5+3, []int{3, 4, 5}))
}

func TestMap2(t *testing.T) {
	a := arange(2, 2)
	out, err := Map2(a, a, func(x, y int) int { return x * y })
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4, 9}, out.Data())

	_, err = Map2(a, arange(4), func(x, y int) int { return x })
	assert.ErrorIs(t, err, ErrShape)
}
