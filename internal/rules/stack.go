package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/proposal-assistant/internal/types"
)

// StackRecommendation picks the stack the proposal should pitch. The
// operator's whitelist wins, then role-specific platform rules, then the
// client's own stack, then the role default.
func (e *Engine) StackRecommendation(stackMentioned, description string, cfg types.UserConfig) types.StackRecommendation {
	stackLower := strings.ToLower(strings.TrimSpace(stackMentioned))
	descLower := strings.ToLower(description)

	if match, ok := matchWhitelist(cfg.Whitelist, stackLower, descLower); ok {
		return types.StackRecommendation{
			Stack:      match,
			Suggestion: fmt.Sprintf(whitelistSuggestion, match),
		}
	}

	role := cfg.Role
	if role == "" {
		role = types.RoleDeveloper
	}

	if role == types.RoleDeveloper {
		for _, keyword := range e.tables.WordPressKeywords {
			if strings.Contains(stackLower, keyword) || strings.Contains(descLower, keyword) {
				return types.StackRecommendation{Stack: wordPressStack, Suggestion: wordPressSuggestion}
			}
		}
		if strings.Contains(stackLower, phpKeyword) && !strings.Contains(stackLower, laravelKeyword) {
			return types.StackRecommendation{Stack: phpOrJSStack, Suggestion: phpSuggestion}
		}
	}

	if stackLower != "" && stackLower != notIdentifiedStack {
		return types.StackRecommendation{
			Stack:      strings.TrimSpace(stackMentioned),
			Suggestion: mentionedSuggestion,
		}
	}

	if rec, ok := e.tables.RoleDefaults[role]; ok {
		return rec
	}
	return e.tables.RoleDefaults[types.RoleDeveloper]
}

// matchWhitelist returns the longest whitelist entry present in the stack
// or description, so "Ruby on Rails" beats "Ruby". Ties keep caller order.
func matchWhitelist(whitelist []string, stackLower, descLower string) (string, bool) {
	if len(whitelist) == 0 {
		return "", false
	}

	ordered := make([]string, len(whitelist))
	copy(ordered, whitelist)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	for _, entry := range ordered {
		needle := strings.ToLower(strings.TrimSpace(entry))
		if needle == "" {
			continue
		}
		if strings.Contains(stackLower, needle) || strings.Contains(descLower, needle) {
			return entry, true
		}
	}
	return "", false
}

// KnowledgeLevel reports the operator's proficiency with the mentioned
// stack. A whitelisted technology is always expert.
func (e *Engine) KnowledgeLevel(stackMentioned string, whitelist []string) types.KnowledgeLevel {
	stackLower := strings.ToLower(stackMentioned)

	for _, entry := range whitelist {
		needle := strings.ToLower(strings.TrimSpace(entry))
		if needle != "" && strings.Contains(stackLower, needle) {
			return types.KnowledgeExpert
		}
	}

	for _, entry := range e.tables.Knowledge {
		if strings.Contains(stackLower, strings.ToLower(entry.Key)) {
			return entry.Level
		}
	}

	if e.tables.DefaultKnowledge == "" {
		return types.KnowledgeMedium
	}
	return e.tables.DefaultKnowledge
}
