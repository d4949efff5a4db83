package powerspec

import "github.com/cwbudde/algo-cosmo/field/mas"

// Config holds estimator settings.
type Config struct {
	Workers int
	Kernel  mas.Kernel
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a config using all available processors and no
// window correction.
func DefaultConfig() Config {
	return Config{Workers: 0, Kernel: mas.None}
}

// WithWorkers bounds the number of goroutines. Non-positive values select
// runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		cfg.Workers = workers
	}
}

// WithKernel divides every |δ_k|² by the squared window of the mass
// assignment kernel that produced the grid.
func WithKernel(k mas.Kernel) Option {
	return func(cfg *Config) {
		cfg.Kernel = k
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
