package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-coords/coords"
	"github.com/robert-malhotra/go-coords/internal/keyexpr"
)

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configured coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.print(cmd.OutOrStdout(), a.coords)
		},
	}
}

func (a *app) sliceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slice KEY",
		Short: "Index with a positional key such as '0, :, [1,3], None, ...'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyexpr.ParseKey(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("slice", "key", key.String())
			out, err := a.zeros().Index(key)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), out.Coords())
		},
	}
}

func (a *app) iselCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isel EXPR",
		Short: "Index selected axes by position, e.g. 't=0;x=3:6'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := keyexpr.ParseSelection(args[0])
			if err != nil {
				return err
			}
			for _, s := range sel {
				if err := a.checkAxes(s.Axis.Name()); err != nil {
					return err
				}
			}
			key, err := a.coords.CreateSlice(sel)
			if err != nil {
				return err
			}
			a.logger.Debug("isel", "key", key.String())
			out, err := a.zeros().ISel(sel)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), out.Coords())
		},
	}
}

func (a *app) selCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sel EXPR",
		Short: "Select by coordinate values or labels, e.g. 'c=red;x=1.5:3'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := keyexpr.ParseLabelSelection(args[0])
			if err != nil {
				return err
			}
			for _, s := range sel {
				if err := a.checkAxes(s.Axis.Name()); err != nil {
					return err
				}
			}
			key, err := a.coords.CreateLabelSlice(sel)
			if err != nil {
				return err
			}
			a.logger.Debug("sel", "key", key.String())
			out, err := a.zeros().Index(key)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), out.Coords())
		},
	}
}

func (a *app) broadcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast AXES AXES [AXES...]",
		Short: "Broadcast axis lists such as 'zyx' or 't,y' drawn from the configured axes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := make([]*coords.Coordinates, len(args))
			for i, arg := range args {
				c, err := a.subset(keyexpr.ParseAxes(arg))
				if err != nil {
					return err
				}
				inputs[i] = c
			}
			out, err := coords.Broadcast(inputs...)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), out)
		},
	}
}

// subset returns coordinates made of the named configured axes, in order.
func (a *app) subset(names []string) (*coords.Coordinates, error) {
	if err := a.checkAxes(names...); err != nil {
		return nil, err
	}
	axes := make([]coords.Axis, len(names))
	for i, name := range names {
		ax, err := a.coords.Axis(coords.ByName(name))
		if err != nil {
			return nil, err
		}
		axes[i] = ax
	}
	return coords.New(axes...)
}

func (a *app) combineCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "combine TERMS",
		Short: "Combine configured axes linearly, e.g. 'x=2;y=-1'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, coefs, err := keyexpr.ParseCoefficients(args[0])
			if err != nil {
				return err
			}
			if err := a.checkAxes(names...); err != nil {
				return err
			}
			terms := make([]coords.TermCoef, len(names))
			for i, n := range names {
				ax, err := a.coords.Axis(coords.ByName(n))
				if err != nil {
					return err
				}
				terms[i] = coords.TermCoef{Coef: coefs[i], Term: ax}
			}
			opts := []coords.LinearOption{coords.WithLogger(a.logger)}
			if name != "" {
				opts = append(opts, coords.WithName(name))
			}
			l, err := coords.Combine(terms, opts...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n  scale: %g\n  unit: %q\n", l.Name(), l.Scale(), l.Unit())
			for _, b := range l.Bases() {
				c, _ := l.Coef(b.Name())
				fmt.Fprintf(w, "  %s: %g\n", b.Name(), c)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the combined axis")
	return cmd
}
