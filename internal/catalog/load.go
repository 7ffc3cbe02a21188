package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// file is the on-disk catalog layout.
type file struct {
	Destinations map[string]Destination `yaml:"destinations"`
}

// Load parses a YAML catalog and validates every record.
// Unknown fields are rejected so typos in cost keys fail early.
func Load(r io.Reader) (*Store, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing catalog: empty document")
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if len(f.Destinations) == 0 {
		return nil, errors.New("catalog has no destinations")
	}

	s, err := NewStore(f.Destinations)
	if err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return s, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Store, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing catalog: %v\n", cerr)
		}
	}()

	return Load(fh)
}

// Default returns the built-in catalog.
func Default() (*Store, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// Open loads the catalog at path, or the built-in catalog when path is empty.
func Open(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
