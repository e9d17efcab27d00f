// Package coords provides named, typed axes for multidimensional arrays and
// keeps them consistent under indexing and broadcasting.
//
// The package never touches array storage. A host array asks it what its
// axis metadata must become after an operation, given the indexing key and
// the resulting shape.
//
// # Data Model
//
//   - [Index] maps storage positions of one axis to coordinates.
//     [ScaledIndex] is an arithmetic progression (start, step, size, unit);
//     [CategoricalIndex] is an ordered label sequence.
//   - [Axis] binds a name to an Index. The name is the identity of the axis.
//     [Undef] axes, named "#", stand for new or ambiguous dimensions.
//   - [LinearAxis] is a symbolic combination of axes such as "2x+1y".
//   - [Coordinates] is the ordered, name-unique axis list of one array. It
//     is immutable; every derivation returns a new value.
//
// # Indexing
//
// Keys are built from [Int], [Slice], [List], [Mask], [NewDim], [Ellipsis]
// and [Tuple]. After slicing its storage, the host calls [SliceAxes] with
// the same key and the resulting shape:
//
//	c, _ := coords.FromNames([]string{"t", "z", "y", "x"}, []int{10, 10, 10, 10})
//	out, _ := coords.SliceAxes(c, coords.Tuple{coords.Int(0)}, []int{10, 10, 10})
//	fmt.Println(out) // zyx
//
// Named selections are expanded to positional keys by
// [Coordinates.CreateSlice] (positional) and [Coordinates.CreateLabelSlice]
// (coordinate space).
//
// # Broadcasting
//
// [Broadcast] aligns coordinates by axis name rather than by position:
//
//	b, _ := coords.Broadcast(tzyx, tcyx) // tzcyx
//
// # Errors
//
// Errors match [ErrCoordinate] (structural problems with axes) or
// [ErrInvalidValue] (bad scalar input) with errors.Is.
package coords
