package analysis

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips every tag; proposals are pasted into a plain textarea.
var textPolicy = bluemonday.StrictPolicy()

// sanitizeGenerated removes markup from model output and undoes the entity
// escaping the policy applies, so "R$ 1.000 & cia" survives intact.
func sanitizeGenerated(text string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(text)))
}
