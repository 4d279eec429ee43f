// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queryfile saves a search run to a YAML file and loads it
// back, so a run can be reviewed or shared without re-querying the
// provider.
package queryfile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// QueryFile is the on-disk representation of one search run.
type QueryFile struct {
	Params   types.SearchParams `yaml:"params"`
	Compiled string             `yaml:"compiled"`
	Results  []types.Brief      `yaml:"results"`
	Summary  Summary            `yaml:"summary"`
}

// Summary stores result statistics and a timestamp.
type Summary struct {
	Shown     int       `yaml:"shown"`
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Write saves a run to a YAML file.
func Write(path string, params types.SearchParams, compiled string, briefs []types.Brief, total int) error {
	qf := QueryFile{
		Params:   params,
		Compiled: compiled,
		Results:  briefs,
		Summary: Summary{
			Shown:     len(briefs),
			Total:     total,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously saved query file from disk.
func Read(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
