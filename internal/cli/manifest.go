package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-cosmo/field/grid"
	"github.com/cwbudde/algo-cosmo/field/mas"
)

// Manifest describes a grid file written by the CLI. It is stored next to
// the grid as <output>.json.
type Manifest struct {
	RunID    string      `json:"run_id"`
	Command  string      `json:"command"`
	Created  time.Time   `json:"created"`
	GridSize int         `json:"gridsize"`
	BoxSize  float64     `json:"boxsize,omitempty"`
	Kernel   *mas.Kernel `json:"kernel,omitempty"`
	Phases   string      `json:"phases,omitempty"`
	Spectrum string      `json:"spectrum,omitempty"`
	Source   string      `json:"source,omitempty"`
	Stats    grid.Stats  `json:"stats"`
}

func newManifest(command string, g *grid.Grid) Manifest {
	return Manifest{
		RunID:    uuid.Must(uuid.NewV7()).String(),
		Command:  command,
		Created:  time.Now().UTC(),
		GridSize: g.N,
		Stats:    g.Stats(),
	}
}

// writeGrid stores g as raw float32 values at path and its manifest at
// path + ".json". Nothing is written unless the manifest encodes, so a grid
// with non-finite statistics leaves no files behind.
func writeGrid(path string, g *grid.Grid, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := g.WriteRaw(f); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.WriteFile(path+".json", append(data, '\n'), 0o644)
}

// readGrid loads an n³ raw grid from path.
func readGrid(path string, n int) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return grid.ReadRaw(f, n)
}
