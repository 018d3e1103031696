// Package file loads dataset directories from disk: an optional
// dataset.yaml manifest next to a long-format CSV file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbondash/carbondash/internal/dataset"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ManifestName is the optional manifest file inside a dataset directory.
const ManifestName = "dataset.yaml"

// DefaultFile is the CSV consulted when the manifest names none.
const DefaultFile = "monthly.csv"

// Manifest describes a dataset directory. It uses "mapstructure" tags so
// the YAML keys survive the generic decode step unchanged.
type Manifest struct {
	Title  string         `json:"title" mapstructure:"title"`
	File   string         `json:"file" mapstructure:"file"`
	Strict bool           `json:"strict" mapstructure:"strict"`
	Metric *domain.Metric `json:"metric" mapstructure:"metric"`
}

// ResolvedMetric returns the manifest's metric override, or the default
// power-sector CO2 intensity slice.
func (m *Manifest) ResolvedMetric() domain.Metric {
	if m.Metric != nil {
		return *m.Metric
	}
	return domain.DefaultMetric()
}

// Loader reads a dataset directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the dataset directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Manifest reads and decodes dataset.yaml. A missing manifest is not an
// error: the defaults (monthly.csv, default metric, lenient parse) apply.
func (l *Loader) Manifest() (*Manifest, error) {
	m := &Manifest{File: DefaultFile}

	data, err := os.ReadFile(filepath.Join(l.dir, ManifestName))
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	// Two-step decode: YAML into a generic map, then mapstructure into
	// the typed manifest. Unknown keys are tolerated.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := mapstructure.Decode(raw, m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	if m.File == "" {
		m.File = DefaultFile
	}
	return m, nil
}

// Load reads the manifest and parses the CSV it points at.
// Parse errors from a strict manifest propagate unchanged so callers can
// report the full aggregated list.
func (l *Loader) Load() ([]domain.Observation, *Manifest, error) {
	m, err := l.Manifest()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(l.dir, m.File))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	parser := dataset.NewParser(dataset.WithStrict(m.Strict))
	obs, err := parser.Parse(f)
	if err != nil {
		return obs, m, err
	}
	return obs, m, nil
}
