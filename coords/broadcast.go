package coords

import "fmt"

// Broadcast aligns two or more coordinates into one consensus ordering,
// folding BroadcastTwo from left to right:
//
//	Broadcast(zyx, tzyx)  // tzyx
//	Broadcast(tzyx, tcyx) // tzcyx
//	Broadcast(yx, xy)     // yx
func Broadcast(cs ...*Coordinates) (*Coordinates, error) {
	if len(cs) < 2 {
		return nil, fmt.Errorf("%w: less than two coordinates were given", ErrInvalidValue)
	}
	out := cs[0]
	for _, c := range cs[1:] {
		var err error
		if out, err = BroadcastTwo(out, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BroadcastTwo merges b into the ordering of a. Axes of b that a lacks are
// inserted, as a contiguous run in b's order, right before the next axis of
// b that a has; a trailing run is appended. b must not contain undefined
// axes.
func BroadcastTwo(a, b *Coordinates) (*Coordinates, error) {
	found := make([]int, len(b.axes))
	for i, ax := range b.axes {
		if ax.undef {
			return nil, fmt.Errorf("%w: cannot broadcast coordinates %s with an undefined axis", ErrUndefinedAxis, b)
		}
		found[i] = a.FindOr(ByAxis(ax), -1)
	}

	out := a.Axes()
	var pending []Axis
	inserted := 0
	for i, idx := range found {
		if idx < 0 {
			pending = append(pending, b.axes[i])
			continue
		}
		for _, ax := range pending {
			out = insertAxis(out, idx+inserted, ax)
			inserted++
		}
		pending = pending[:0]
	}
	out = append(out, pending...)
	return New(out...)
}

func insertAxis(axes []Axis, i int, a Axis) []Axis {
	axes = append(axes, Axis{})
	copy(axes[i+1:], axes[i:])
	axes[i] = a
	return axes
}
