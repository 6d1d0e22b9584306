package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest describes one batch run.
type Manifest struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Format  string   `json:"format"`
	Views   []Result `json:"views"`
	Failed  int      `json:"failed"`
	Created string   `json:"created"`
}

// WriteManifest writes the run description as indented JSON to path.
func WriteManifest(path string, cfg Config, results []Result, created string) error {
	m := Manifest{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Format:  cfg.Format,
		Views:   results,
		Created: created,
	}
	for _, r := range results {
		if !r.Success {
			m.Failed++
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
