package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var SegmentsFS embed.FS

// SegmentSpec describes one level segment in segment-local coordinates.
// World placement (index * level spacing) is applied by the sequencer.
type SegmentSpec struct {
	Name      string     `yaml:"name"`
	Spawn     PointSpec  `yaml:"spawn"`
	Platforms []RectSpec `yaml:"platforms"`
	// Collectables are positions of the segment's collectables.
	Collectables []PointSpec `yaml:"collectables"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoadSegment reads and parses a single embedded segment file.
func LoadSegment(name string) (*SegmentSpec, error) {
	data, err := fs.ReadFile(SegmentsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var spec SegmentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if len(spec.Platforms) == 0 {
		return nil, fmt.Errorf("levels: %s has no platforms", name)
	}
	return &spec, nil
}

// LoadAll returns every embedded segment, ordered by file name. File names
// are zero-padded (segment_00.yaml, segment_01.yaml, ...) so lexical order
// is segment order.
func LoadAll() ([]*SegmentSpec, error) {
	entries, err := fs.ReadDir(SegmentsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: read dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	specs := make([]*SegmentSpec, 0, len(names))
	for _, name := range names {
		spec, err := LoadSegment(name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("levels: no segment files embedded")
	}
	return specs, nil
}
