// Package config loads the coordinate layout used by coordsdiag.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/robert-malhotra/go-coords/coords"
)

// EnvPrefix prefixes environment overrides, e.g. COORDSDIAG_LOG_LEVEL.
const EnvPrefix = "COORDSDIAG"

// ErrInvalid is returned when a loaded configuration does not validate.
var ErrInvalid = errors.New("invalid configuration")

// Config describes the array the diagnostics operate on.
type Config struct {
	Shape []int        `mapstructure:"shape" validate:"required,min=1,dive,gte=0"`
	Axes  []AxisConfig `mapstructure:"axes" validate:"required,min=1,dive"`
	Log   LogConfig    `mapstructure:"log"`
}

// AxisConfig describes one axis. Labels make the axis categorical.
type AxisConfig struct {
	Name   string   `mapstructure:"name" validate:"required"`
	Scale  float64  `mapstructure:"scale" validate:"gte=0"`
	Unit   string   `mapstructure:"unit"`
	Labels []string `mapstructure:"labels"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads the configuration from path, or from coordsdiag.yaml in the
// working directory or ~/.config/coordsdiag when path is empty. A missing
// default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("coordsdiag")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "coordsdiag"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("shape", []int{5, 4, 6, 8})
	v.SetDefault("axes", []map[string]any{
		{"name": "t"},
		{"name": "z", "scale": 0.5, "unit": "um"},
		{"name": "y", "scale": 0.2, "unit": "um"},
		{"name": "x", "scale": 0.2, "unit": "um"},
	})
	v.SetDefault("log.level", "info")
}

// Validate checks field constraints and that axes agree with the shape.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Axes) != len(c.Shape) {
		return fmt.Errorf("%w: %d axes for shape %v", ErrInvalid, len(c.Axes), c.Shape)
	}
	for i, a := range c.Axes {
		if len(a.Labels) > 0 && len(a.Labels) != c.Shape[i] {
			return fmt.Errorf("%w: axis %s has %d labels but size %d",
				ErrInvalid, a.Name, len(a.Labels), c.Shape[i])
		}
	}
	return nil
}

// Specs converts the axes to coordinate specs.
func (c Config) Specs() []coords.AxisSpec {
	specs := make([]coords.AxisSpec, len(c.Axes))
	for i, a := range c.Axes {
		specs[i] = coords.AxisSpec{
			Name: a.Name,
			IndexSpec: coords.IndexSpec{
				Scale: a.Scale,
				Unit:  a.Unit,
			},
		}
		if len(a.Labels) > 0 {
			specs[i].Labels = coords.LabelsOf(a.Labels)
		}
	}
	return specs
}

// Coordinates builds the configured coordinates.
func (c Config) Coordinates() (*coords.Coordinates, error) {
	return coords.FromSpecs(c.Specs(), c.Shape)
}

// SlogLevel returns the configured log level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
