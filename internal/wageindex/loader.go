package wageindex

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/wage_index.yaml
var embeddedData []byte

type dataset struct {
	Metadata Metadata `yaml:"metadata"`
	Entries  []Entry  `yaml:"entries"`
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the table built from the embedded dataset. The data is
// parsed on first use only.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(embeddedData)
	})
	return defaultTable, defaultErr
}

// MustDefault is like Default but panics if the embedded dataset is invalid.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded wage index: %v", err))
	}
	return t
}

// Parse builds a table from YAML data.
func Parse(data []byte) (*Table, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse wage index YAML: %w", err)
	}
	t, err := NewTable(ds.Metadata, ds.Entries)
	if err != nil {
		return nil, fmt.Errorf("invalid wage index data: %w", err)
	}
	return t, nil
}

// LoadFile reads a wage index dataset from disk.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the table at path, or the embedded table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
