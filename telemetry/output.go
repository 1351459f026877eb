// Package telemetry holds statistics helpers and structured run output.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/wildwood/config"
)

// RunManifest identifies one run for later analysis.
type RunManifest struct {
	RunID      string    `json:"run_id"`
	Seed       uint64    `json:"seed"`
	ConfigPath string    `json:"config_path,omitempty"`
	StartedAt  time.Time `json:"started_at"`
}

// OutputManager handles structured experiment output with CSV logging.
// T is the per-tick record type; its csv tags define the columns.
type OutputManager[T any] struct {
	dir       string
	runID     string
	ticksFile *os.File

	// Track if the header has been written
	headerWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager[T any](dir string) (*OutputManager[T], error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager[T]{dir: dir, runID: uuid.NewString()}

	ticksPath := filepath.Join(dir, "ticks.csv")
	f, err := os.Create(ticksPath)
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	om.ticksFile = f

	return om, nil
}

// RunID returns the unique identifier of this run.
func (om *OutputManager[T]) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager[T]) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteManifest saves the run manifest as JSON.
func (om *OutputManager[T]) WriteManifest(seed uint64, configPath string) error {
	if om == nil {
		return nil
	}
	m := RunManifest{
		RunID:      om.runID,
		Seed:       seed,
		ConfigPath: configPath,
		StartedAt:  time.Now().UTC(),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "run.json"), data, 0644); err != nil {
		return fmt.Errorf("writing run.json: %w", err)
	}
	return nil
}

// WriteRow appends one record to ticks.csv.
func (om *OutputManager[T]) WriteRow(rec T) error {
	if om == nil {
		return nil
	}

	records := []T{rec}

	if !om.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing ticks: %w", err)
		}
		om.headerWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing ticks: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager[T]) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager[T]) Close() error {
	if om == nil || om.ticksFile == nil {
		return nil
	}
	return om.ticksFile.Close()
}
