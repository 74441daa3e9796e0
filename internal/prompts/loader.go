// Package prompts holds the proposal texts sent to and received from the
// text generator. The texts live in proposal.json, embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed proposal.json
var proposalJSON []byte

// catalog maps a prompt key to its text.
type catalog map[string]string

func parseCatalog(data []byte) (catalog, error) {
	var c catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse proposal prompts: %w", err)
	}
	for key, text := range c {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("proposal prompt %q is empty", key)
		}
	}
	return c, nil
}

var embedded = sync.OnceValues(func() (catalog, error) {
	return parseCatalog(proposalJSON)
})

// Text returns the prompt stored under key.
func Text(key string) (string, error) {
	c, err := embedded()
	if err != nil {
		return "", err
	}
	text, ok := c[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return text, nil
}

// MustText is Text for keys known at build time.
func MustText(key string) string {
	text, err := Text(key)
	if err != nil {
		panic(err)
	}
	return text
}

// Keys lists the embedded prompt keys, sorted.
func Keys() ([]string, error) {
	c, err := embedded()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format replaces {{.Key}} placeholders with values from data in a single
// pass, so a value that itself looks like a placeholder is left alone.
// Placeholders without a value are kept.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}

	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
