// Package schemas checks payloads against the embedded JSON Schemas before
// they are decoded into typed values.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/proposal-assistant/schemas"
)

// Violation is one rule a document broke.
type Violation struct {
	Field   string
	Message string
}

// DocumentError lists every violation found in a document.
type DocumentError struct {
	Schema     string
	Violations []Violation
}

func (e *DocumentError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("document does not match %s: %s", e.Schema, strings.Join(parts, "; "))
}

// LoadError means the schema could not be compiled or the document is not
// JSON at all.
type LoadError struct {
	Schema string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Schema, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// embedded compiles an embedded schema on first use.
func embedded(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	content, err := schemafiles.Load(name)
	if err != nil {
		return nil, &LoadError{Schema: name, Err: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &LoadError{Schema: name, Err: err}
	}
	compiled[name] = s
	return s, nil
}

// ValidateEmbedded checks doc against one of the embedded schemas.
func ValidateEmbedded(name, doc string) error {
	s, err := embedded(name)
	if err != nil {
		return err
	}
	return check(name, s, doc)
}

// ValidateJSONString checks doc against an inline schema.
func ValidateJSONString(schema, doc string) error {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return &LoadError{Schema: "inline", Err: err}
	}
	return check("inline", s, doc)
}

func check(name string, s *gojsonschema.Schema, doc string) error {
	result, err := s.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return &LoadError{Schema: name, Err: err}
	}
	if result.Valid() {
		return nil
	}

	docErr := &DocumentError{Schema: name}
	for _, re := range result.Errors() {
		field := re.Field()
		if field == "" {
			field = "(root)"
		}
		docErr.Violations = append(docErr.Violations, Violation{Field: field, Message: re.Description()})
	}
	return docErr
}
