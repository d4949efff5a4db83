package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RunConfig describes one realization. It can be read from a YAML run file
// and overridden by command-line flags.
type RunConfig struct {
	GridSize  int     `yaml:"gridsize"`
	BoxSize   float64 `yaml:"boxsize"`
	Phases    string  `yaml:"phases"`
	Spectrum  string  `yaml:"spectrum"`
	Output    string  `yaml:"output"`
	Powerspec string  `yaml:"powerspec,omitempty"`
	Workers   int     `yaml:"workers,omitempty"`
}

// LoadRunConfig reads a YAML run file. Relative input and output paths are
// resolved against the directory holding the file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	// Reject unknown fields so typos do not silently fall back to defaults.
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&cfg.Phases, &cfg.Spectrum, &cfg.Output, &cfg.Powerspec} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}

	return &cfg, nil
}

// Validate checks that every required field is set.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.GridSize <= 0 {
		errs = append(errs, errors.New("gridsize is required"))
	}

	if c.BoxSize <= 0 {
		errs = append(errs, errors.New("boxsize is required"))
	}

	if c.Phases == "" {
		errs = append(errs, errors.New("phases is required"))
	}

	if c.Spectrum == "" {
		errs = append(errs, errors.New("spectrum is required"))
	}

	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}

	return errors.Join(errs...)
}
