package pipeline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file name of the run manifest.
const ManifestName = "manifest.yaml"

// Manifest records what a run read and wrote.
type Manifest struct {
	RunID        string             `yaml:"run_id"`
	CreatedAt    time.Time          `yaml:"created_at"`
	Input        string             `yaml:"input"`
	Samples      int                `yaml:"samples"`
	SamplingRate float64            `yaml:"sampling_rate"`
	InferredRate float64            `yaml:"inferred_rate"`
	Method       string             `yaml:"method"`
	Filtered     bool               `yaml:"filtered"`
	Segments     int                `yaml:"segments"`
	Features     map[string]float64 `yaml:"features"`
	Outputs      []string           `yaml:"outputs"`
}

// WriteManifest saves m as YAML.
func WriteManifest(path string, m Manifest) error {
	raw, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	raw, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}
