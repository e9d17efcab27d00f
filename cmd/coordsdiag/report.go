package main

import (
	"fmt"
	"io"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-coords/coords"
)

// Output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
)

type axisReport struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Size   int      `yaml:"size"`
	Start  *float64 `yaml:"start,omitempty"`
	Step   *float64 `yaml:"step,omitempty"`
	Scale  *float64 `yaml:"scale,omitempty"`
	Unit   string   `yaml:"unit,omitempty"`
	Labels []any    `yaml:"labels,omitempty"`
}

type coordsReport struct {
	Axes  []axisReport `yaml:"axes"`
	Shape []int        `yaml:"shape"`
}

func newAxisReport(ax coords.Axis) axisReport {
	r := axisReport{Name: ax.Name(), Size: ax.Len()}
	if ax.IsUndef() {
		r.Kind = "undef"
		return r
	}
	if s, ok := ax.Scale(); ok {
		r.Scale = &s
	}
	r.Unit = ax.Unit()
	switch idx := ax.Index().(type) {
	case *coords.ScaledIndex:
		r.Kind = "scaled"
		start, step := idx.Start(), idx.Step()
		r.Start, r.Step = &start, &step
	case *coords.CategoricalIndex:
		r.Kind = "categorical"
		r.Labels = idx.Labels()
	}
	return r
}

func (a *app) print(w io.Writer, c *coords.Coordinates) error {
	switch a.output {
	case formatYAML:
		rep := coordsReport{Shape: c.Shape()}
		for _, ax := range c.Axes() {
			rep.Axes = append(rep.Axes, newAxisReport(ax))
		}
		out, err := yaml.Marshal(rep)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		_, err = w.Write(out)
		return err
	case formatText:
		fmt.Fprintln(w, c.Repr())
		if shape, err := coords.Zip(c, c.Shape()); err == nil {
			fmt.Fprintf(w, "  shape: %s\n", shape)
		}
		for _, ax := range c.Axes() {
			fmt.Fprintf(w, "  %s\n", ax.Repr())
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", a.output)
}

// maxSuggestDistance bounds the edit distance of axis name suggestions.
const maxSuggestDistance = 2

// checkAxes fails on the first name the configured coordinates lack,
// suggesting the closest configured name.
func (a *app) checkAxes(names ...string) error {
	for _, name := range names {
		if a.coords.Has(coords.ByName(name)) {
			continue
		}
		best, dist := "", maxSuggestDistance+1
		for _, cand := range a.coords.Names() {
			if d := levenshtein.ComputeDistance(name, cand); d < dist {
				best, dist = cand, d
			}
		}
		if best != "" {
			return fmt.Errorf("%w: %q (did you mean %q?)", coords.ErrAxisNotFound, name, best)
		}
		return fmt.Errorf("%w: %q not in %s", coords.ErrAxisNotFound, name, a.coords.Repr())
	}
	return nil
}
