// Package ndarray provides the dense, row-major storage used by host arrays.
//
// An [Array] is a flat element slice plus a shape. The package knows nothing
// about axis names or coordinates; it only moves elements around:
//
//   - [Array.Gather] copies the cartesian product of per-dimension position
//     lists, the general form of a hyperslab read
//   - [Array.Hyperslab] reads a rectangular start/count block
//   - [Array.Take] gathers along a single dimension
//   - [Array.TakePaired] pairs several position lists elementwise into one
//     result dimension (advanced indexing)
//   - [Array.MaskSelect] collapses a run of dimensions through a boolean mask
//   - [Array.Stack], [Array.Transpose], [Array.Squeeze], [Array.ExpandDims]
//     reshape without changing element values
//
// # Layout
//
// Elements are stored in row-major (C) order. For shape (d0, d1, ..., dn-1)
// the stride of dimension k is the product of d(k+1)...d(n-1):
//
//	arr, err := ndarray.New([]float64{0, 1, 2, 3, 4, 5}, []int{2, 3})
//	v, err := arr.At(1, 2) // 5
package ndarray
