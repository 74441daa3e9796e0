// Package schemas embeds the JSON Schemas for the service's structured payloads.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// Embedded schema file names
const (
	GenerationResponse = "generation_response.schema.json"
	ProjectInput       = "project_input.schema.json"
	ProposalResult     = "proposal_result.schema.json"
)

// Load returns the content of an embedded schema.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema.
func Names() []string {
	return []string{GenerationResponse, ProjectInput, ProposalResult}
}
