package capture

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one capture run.
type Manifest struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Source    string          `json:"source,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Frames    []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one written frame.
type ManifestEntry struct {
	Frame int    `json:"frame"`
	Image string `json:"image"`
}

// NewManifest lists the successful results under a fresh run id.
func NewManifest(source string, width, height int, results []Result) Manifest {
	m := Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Width:     width,
		Height:    height,
		Frames:    make([]ManifestEntry, 0, len(results)),
	}
	for _, r := range results {
		if r.Success {
			m.Frames = append(m.Frames, ManifestEntry{Frame: r.Frame, Image: r.Image})
		}
	}
	return m
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("capture: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("capture: write %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("capture: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("capture: parse %s: %w", path, err)
	}
	return m, nil
}
