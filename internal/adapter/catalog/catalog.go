// Package catalog loads the item, recipe and crop catalog into an
// economy.Registry.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hearthvale/internal/domain/economy"
)

//go:embed default.yaml
var defaultCatalog []byte

// Default parses the catalog compiled into the binary.
func Default() (*economy.Registry, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the default one when path is empty.
func Load(path string) (*economy.Registry, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse rejects unknown keys so a typo in the catalog fails at startup.
func Parse(raw []byte) (*economy.Registry, error) {
	var def economy.Definition
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("catalog yaml: %w", err)
	}
	return economy.NewRegistry(def)
}
