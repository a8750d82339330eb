package memory

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const manifestFile = "topics.yaml"

// Manifest describes which source files feed each topic. It lives next to
// the question banks as data/topics.yaml.
type Manifest struct {
	Topics []TopicSpec `yaml:"topics"`
}

// TopicSpec binds one topic key to its ordered list of sources. Sources are
// concatenated in order; duplicate questions across sources are retained.
type TopicSpec struct {
	Key     string       `yaml:"key"`
	Sources []SourceSpec `yaml:"sources"`
}

// SourceSpec names a single bank file or a directory of banks, relative to
// the data directory. Header controls header-row handling: nil keeps the
// content heuristic, true always skips the first row, false never skips one.
type SourceSpec struct {
	File   string `yaml:"file,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
	Header *bool  `yaml:"header,omitempty"`
}

// LoadManifest reads the topic manifest from dataDir. A missing manifest is
// not an error: callers fall back to the conventional bank layout.
func LoadManifest(dataDir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read topic manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse topic manifest: %w", err)
	}
	return &m, nil
}

// DefaultManifest mirrors the conventional layout: data/{topic}-questions.csv
// plus an optional data/{topic}/ directory of additional banks.
func DefaultManifest(topics []string) *Manifest {
	m := &Manifest{}
	for _, topic := range topics {
		m.Topics = append(m.Topics, TopicSpec{
			Key: topic,
			Sources: []SourceSpec{
				{File: topic + "-questions.csv"},
				{Dir: topic},
			},
		})
	}
	return m
}
