package engine

import (
	"log/slog"
)

// Option configures an Executor or Transducer.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	maxScanFactor int
}

func defaultOptions() options {
	return options{
		logger:        slog.New(slog.DiscardHandler),
		maxScanFactor: DefaultMaxScanFactor,
	}
}

// WithLogger sets the logger receiving one Debug record per rule site
// rewritten or suppressed. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxScanFactor sets the per-rune iteration bound of one rule pass.
//
// Default: 16 (DefaultMaxScanFactor). Non-positive values keep the default.
func WithMaxScanFactor(factor int) Option {
	return func(o *options) {
		if factor > 0 {
			o.maxScanFactor = factor
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
