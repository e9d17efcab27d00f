// Package keyexpr parses the textual key forms used on the command line.
//
// Positional keys are comma separated components:
//
//	0, :, [1,3,5], None, ..., 2:8:2
//
// Selections are semicolon separated axis=component pairs. Positional
// selections take positional components ("t=0;x=3:6"); label selections take
// coordinates and labels ("t=0;c=red;x=1.5:3;y=[a,b]"). Labels may be quoted
// to keep them from being read as numbers.
package keyexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-coords/coords"
)

// ErrSyntax is returned for malformed expressions.
var ErrSyntax = fmt.Errorf("%w: syntax error", coords.ErrInvalidValue)

// ParseKey parses a positional key. A single component is returned as is;
// several become a coords.Tuple.
func ParseKey(s string) (coords.Key, error) {
	parts, err := split(s, ',')
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parseComponent(parts[0])
	}
	out := make(coords.Tuple, len(parts))
	for i, p := range parts {
		if out[i], err = parseComponent(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseComponent(s string) (coords.Key, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty key component", ErrSyntax)
	case s == "None" || s == "newaxis":
		return coords.NewDim{}, nil
	case s == "...":
		return coords.Ellipsis{}, nil
	case strings.HasPrefix(s, "["):
		return parseList(s)
	case strings.Contains(s, ":"):
		return parseSlice(s)
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrSyntax, s)
	}
	return coords.Int(i), nil
}

func parseList(s string) (coords.List, error) {
	items, err := listItems(s)
	if err != nil {
		return nil, err
	}
	out := make(coords.List, len(items))
	for i, item := range items {
		if out[i], err = strconv.Atoi(item); err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer in %s", ErrSyntax, item, s)
		}
	}
	return out, nil
}

func listItems(s string) ([]string, error) {
	if !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: unterminated list %s", ErrSyntax, s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}
	items, err := split(inner, ',')
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
		if items[i] == "" {
			return nil, fmt.Errorf("%w: empty list item in %s", ErrSyntax, s)
		}
	}
	return items, nil
}

func parseSlice(s string) (coords.Slice, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return coords.Slice{}, fmt.Errorf("%w: too many colons in %q", ErrSyntax, s)
	}
	bounds := make([]*int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return coords.Slice{}, fmt.Errorf("%w: %q is not an integer in %q", ErrSyntax, p, s)
		}
		bounds[i] = &v
	}
	step := 0
	if bounds[2] != nil {
		if *bounds[2] == 0 {
			return coords.Slice{}, fmt.Errorf("%w: slice step cannot be zero", ErrSyntax)
		}
		step = *bounds[2]
	}
	return makeSlice(bounds[0], bounds[1], step), nil
}

func makeSlice(start, stop *int, step int) coords.Slice {
	var s coords.Slice
	switch {
	case start != nil && stop != nil:
		s = coords.Span(*start, *stop)
	case start != nil:
		s = coords.From(*start)
	case stop != nil:
		s = coords.Until(*stop)
	}
	return s.WithStep(step)
}

// ParseSelection parses positional per-axis keys such as "t=0;y=4;x=3:6".
func ParseSelection(s string) (coords.Selection, error) {
	pairs, err := pairs(s)
	if err != nil {
		return nil, err
	}
	out := make(coords.Selection, len(pairs))
	for i, p := range pairs {
		k, err := parseComponent(p.value)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", p.axis, err)
		}
		out[i] = coords.Selector{Axis: coords.ByName(p.axis), Key: k}
	}
	return out, nil
}

// ParseLabelSelection parses coordinate-space selections such as
// "t=0;c=red;x=1.5:3".
func ParseLabelSelection(s string) ([]coords.LabelSelector, error) {
	pairs, err := pairs(s)
	if err != nil {
		return nil, err
	}
	out := make([]coords.LabelSelector, len(pairs))
	for i, p := range pairs {
		v, err := parseLabelValue(p.value)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", p.axis, err)
		}
		out[i] = coords.LabelSelector{Axis: coords.ByName(p.axis), Value: v}
	}
	return out, nil
}

func parseLabelValue(s string) (any, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		items, err := listItems(s)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = parseScalar(item)
		}
		return out, nil
	}
	parts, err := split(s, ':')
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parseScalar(s), nil
	}
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: too many colons in %q", ErrSyntax, s)
	}
	var r coords.ValueRange
	if p := strings.TrimSpace(parts[0]); p != "" {
		r.Start = parseScalar(p)
	}
	if p := strings.TrimSpace(parts[1]); p != "" {
		r.Stop = parseScalar(p)
	}
	if len(parts) == 3 {
		if p := strings.TrimSpace(parts[2]); p != "" {
			step, err := strconv.Atoi(p)
			if err != nil || step == 0 {
				return nil, fmt.Errorf("%w: invalid step %q", ErrSyntax, p)
			}
			r.Step = step
		}
	}
	return r, nil
}

// parseScalar reads a quoted string, an int, a float or a bare label.
func parseScalar(s string) any {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

type pair struct {
	axis, value string
}

func pairs(s string) ([]pair, error) {
	parts, err := split(s, ';')
	if err != nil {
		return nil, err
	}
	out := make([]pair, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		axis, value, ok := strings.Cut(p, "=")
		axis = strings.TrimSpace(axis)
		if !ok || axis == "" {
			return nil, fmt.Errorf("%w: expected axis=value, got %q", ErrSyntax, p)
		}
		out = append(out, pair{axis: axis, value: value})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrSyntax)
	}
	return out, nil
}

// ParseAxes parses an axis name list: comma separated ("t,z,y,x") or, without
// commas, one name per character ("tzyx").
func ParseAxes(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, ",") {
		out := make([]string, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out
	}
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// split cuts s at sep outside brackets and quotes.
func split(s string, sep byte) ([]string, error) {
	var (
		out   []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced ']' in %q", ErrSyntax, s)
			}
		case c == sep && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 || quote != 0 {
		return nil, fmt.Errorf("%w: unterminated bracket or quote in %q", ErrSyntax, s)
	}
	return append(out, s[start:]), nil
}

// ParseCoefficients parses linear combination terms such as "x=2;y=-0.5".
func ParseCoefficients(s string) ([]string, []float64, error) {
	pairs, err := pairs(s)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(pairs))
	coefs := make([]float64, len(pairs))
	for i, p := range pairs {
		c, err := strconv.ParseFloat(strings.TrimSpace(p.value), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: coefficient of %s: %q is not a number", ErrSyntax, p.axis, p.value)
		}
		names[i], coefs[i] = p.axis, c
	}
	return names, coefs, nil
}
