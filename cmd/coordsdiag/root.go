package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-coords/array"
	"github.com/robert-malhotra/go-coords/coords"
	"github.com/robert-malhotra/go-coords/internal/config"
)

type app struct {
	cfgFile string
	verbose bool
	output  string

	logger *slog.Logger
	coords *coords.Coordinates
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "coordsdiag",
		Short: "Inspect named array coordinates",
		Long: `coordsdiag loads an axis layout (names, sizes, scales, labels) from
a config file and prints the coordinates produced by indexing, label
selection, broadcasting and linear axis combination.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./coordsdiag.yaml or $HOME/.config/coordsdiag/coordsdiag.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatText, "output format: text or yaml")

	root.AddCommand(
		a.showCmd(),
		a.sliceCmd(),
		a.iselCmd(),
		a.selCmd(),
		a.broadcastCmd(),
		a.combineCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.output != formatText && a.output != formatYAML {
		return fmt.Errorf("unknown output format %q", a.output)
	}
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	level := cfg.Log.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if a.coords, err = cfg.Coordinates(); err != nil {
		return fmt.Errorf("build coordinates: %w", err)
	}
	a.logger.Debug("loaded coordinates", "coords", a.coords.Repr(), "shape", a.coords.Shape())
	return nil
}

// zeros returns a zero array over the configured coordinates.
func (a *app) zeros() *array.Array[float64] {
	return array.Full(a.coords, 0.0)
}
