package coords

import "log/slog"

// LinearOption configures the construction of a LinearAxis.
type LinearOption func(*linearOptions)

type linearOptions struct {
	name   string
	logger *slog.Logger
}

func defaultLinearOptions() *linearOptions {
	return &linearOptions{logger: slog.Default()}
}

// WithName overrides the generated name of the combined axis.
func WithName(name string) LinearOption {
	return func(o *linearOptions) {
		o.name = name
	}
}

// WithLogger sets the logger that receives non-fatal warnings, such as
// inconsistent units across components.
func WithLogger(l *slog.Logger) LinearOption {
	return func(o *linearOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
