package rules

import (
	"strings"

	"github.com/jonathan/proposal-assistant/internal/types"
)

// AssessViability checks the operator's blacklist first, then the fixed
// list of forbidden activities. Blacklist entries are tested in the order
// given and the verdict names the first match.
func (e *Engine) AssessViability(stackMentioned, description string, blacklist []string) types.Viability {
	stackLower := strings.ToLower(stackMentioned)
	descLower := strings.ToLower(description)

	for _, entry := range blacklist {
		needle := strings.ToLower(strings.TrimSpace(entry))
		if needle == "" {
			continue
		}
		if strings.Contains(stackLower, needle) || strings.Contains(descLower, needle) {
			return types.BlacklistedViability(entry)
		}
	}

	for _, keyword := range e.tables.InviableKeywords {
		if strings.Contains(descLower, keyword) {
			return types.Inviable
		}
	}

	return types.Viable
}
