package coords

import (
	"fmt"
	"strings"
)

// Selector assigns a positional key component to one axis.
type Selector struct {
	Axis AxisRef
	Key  Key
}

// Selection is an ordered set of per-axis positional keys.
type Selection []Selector

// Slicer builds a Selection fluently:
//
//	var s coords.Slicer
//	key, err := c.CreateSlice(s.On("t", coords.Int(4)).On("c", coords.Int(0)).Selection())
type Slicer struct {
	sel Selection
}

// On returns a slicer that additionally selects key on the named axis.
func (s Slicer) On(name string, key Key) Slicer {
	sel := make(Selection, len(s.sel), len(s.sel)+1)
	copy(sel, s.sel)
	return Slicer{sel: append(sel, Selector{Axis: ByName(name), Key: key})}
}

// Selection returns the accumulated selectors in the order they were added.
func (s Slicer) Selection() Selection { return s.sel }

func (s Slicer) String() string {
	parts := make([]string, len(s.sel))
	for i, sel := range s.sel {
		parts[i] = fmt.Sprintf("%s=%s", sel.Axis.name, sel.Key)
	}
	return "Slicer<" + strings.Join(parts, ";") + ">"
}

// CreateSlice expands a selection into a full positional Tuple with All()
// for every axis the selection does not mention.
func (c *Coordinates) CreateSlice(sel Selection) (Tuple, error) {
	if len(sel) == 0 {
		return nil, fmt.Errorf("%w: slice not given", ErrInvalidValue)
	}
	out := make(Tuple, len(c.axes))
	for i := range out {
		out[i] = All()
	}
	for _, s := range sel {
		if err := checkAxisKey(s.Key); err != nil {
			return nil, fmt.Errorf("axis %s: %w", s.Axis.name, err)
		}
		i, err := c.Find(s.Axis)
		if err != nil {
			return nil, err
		}
		out[i] = s.Key
	}
	return out, nil
}

func checkAxisKey(k Key) error {
	switch k := k.(type) {
	case Int, Slice, List:
		return nil
	case Mask:
		if k.Rank() == 1 {
			return nil
		}
		return fmt.Errorf("%w: per-axis mask must be one-dimensional, got shape %v", ErrInvalidValue, k.shape)
	}
	return fmt.Errorf("%w: %v is not a per-axis key", ErrInvalidValue, k)
}

// LabelSelector selects on one axis in coordinate space. Value is a
// coordinate or label, a ValueRange, or a []any list of labels.
type LabelSelector struct {
	Axis  AxisRef
	Value any
}

// CreateLabelSlice converts coordinate-space selectors into a positional
// Tuple. Label lists resolve each label to its first position.
func (c *Coordinates) CreateLabelSlice(sel []LabelSelector) (Tuple, error) {
	if len(sel) == 0 {
		return nil, fmt.Errorf("%w: selection not given", ErrInvalidValue)
	}
	out := make(Tuple, len(c.axes))
	for i := range out {
		out[i] = All()
	}
	for _, s := range sel {
		i, err := c.Find(s.Axis)
		if err != nil {
			return nil, err
		}
		a := c.axes[i]
		if a.undef {
			return nil, fmt.Errorf("%w: cannot select %s because it has no coordinates", ErrUndefinedAxis, s.Axis.name)
		}
		if list, ok := s.Value.([]any); ok {
			pos := make(List, len(list))
			for j, v := range list {
				p, err := a.index.Locate(v)
				if err != nil {
					return nil, fmt.Errorf("axis %s: %w", a.name, err)
				}
				pos[j] = p
			}
			out[i] = pos
			continue
		}
		k, err := a.index.ToIndexer(s.Value)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", a.name, err)
		}
		out[i] = k
	}
	return out, nil
}
