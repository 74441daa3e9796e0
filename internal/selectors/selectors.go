// Package selectors serves the CSS selectors the browser extension uses to
// scrape project pages, so scraping can be fixed without a store release.
package selectors

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectors []byte

// Set is a versioned selector table keyed by page element.
type Set struct {
	Version   string            `yaml:"version" json:"version"`
	Selectors map[string]string `yaml:"selectors" json:"selectors"`
}

// Required lists the elements the extension cannot work without.
var Required = []string{
	"clientName", "projectTitle", "projectDescription",
	"proposalTextarea", "proposalValue", "proposalDeadline",
}

// Default returns the built-in selector set.
func Default() Set {
	set, err := Parse(defaultSelectors)
	if err != nil {
		panic(fmt.Sprintf("embedded selectors are invalid: %v", err))
	}
	return set
}

// Load reads a selector set from path, or returns the default when path is empty.
func Load(path string) (Set, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read selectors file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML selector set.
func Parse(data []byte) (Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("failed to parse selectors: %w", err)
	}
	if set.Version == "" {
		return Set{}, fmt.Errorf("selectors: version is required")
	}
	for _, key := range Required {
		if set.Selectors[key] == "" {
			return Set{}, fmt.Errorf("selectors: %q is required", key)
		}
	}
	return set, nil
}
