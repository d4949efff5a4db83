package realize

import "log/slog"

// Config holds realizer settings.
type Config struct {
	Workers int
	Logger  *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a config using all available processors and
// discarding log output.
func DefaultConfig() Config {
	return Config{
		Workers: 0,
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// WithWorkers bounds the number of goroutines filling and transforming the
// grid. Non-positive values select runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		cfg.Workers = workers
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
