package rules

import (
	"testing"

	"github.com/jonathan/proposal-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestStackRecommendation(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name        string
		stack       string
		description string
		cfg         types.UserConfig
		expected    string
	}{
		{
			name:     "developer default",
			cfg:      types.UserConfig{Role: types.RoleDeveloper},
			expected: "React + Node.js",
		},
		{
			name:     "empty role behaves as developer",
			expected: "React + Node.js",
		},
		{
			name:        "longest whitelist entry wins",
			description: "API em ruby on rails",
			cfg:         types.UserConfig{Whitelist: []string{"Ruby", "Ruby on Rails"}},
			expected:    "Ruby on Rails",
		},
		{
			name:     "whitelist beats wordpress rule",
			stack:    "WordPress, React",
			cfg:      types.UserConfig{Whitelist: []string{"React"}, Role: types.RoleDeveloper},
			expected: "React",
		},
		{
			name:        "wordpress family in description",
			description: "loja em woocommerce",
			cfg:         types.UserConfig{Role: types.RoleDeveloper},
			expected:    "WordPress",
		},
		{
			name:     "plain php",
			stack:    "PHP",
			cfg:      types.UserConfig{Role: types.RoleDeveloper},
			expected: "PHP ou JavaScript",
		},
		{
			name:     "php with laravel is kept verbatim",
			stack:    "PHP Laravel",
			cfg:      types.UserConfig{Role: types.RoleDeveloper},
			expected: "PHP Laravel",
		},
		{
			name:     "designer skips platform rules",
			stack:    "WordPress",
			cfg:      types.UserConfig{Role: types.RoleDesigner},
			expected: "WordPress",
		},
		{
			name:     "designer default",
			cfg:      types.UserConfig{Role: types.RoleDesigner},
			expected: "Figma + Adobe Creative Cloud",
		},
		{
			name:     "unidentified stack falls back to role default",
			stack:    "Não identificada",
			cfg:      types.UserConfig{Role: types.RoleMarketing},
			expected: "Google Ads + Meta Ads",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.StackRecommendation(tt.stack, tt.description, tt.cfg)
			assert.Equal(t, tt.expected, rec.Stack)
			assert.NotEmpty(t, rec.Suggestion)
		})
	}
}

func TestStackRecommendation_WhitelistSuggestion(t *testing.T) {
	e := NewDefault()

	rec := e.StackRecommendation("Go", "", types.UserConfig{Whitelist: []string{"Go"}})

	assert.Equal(t, "Como você domina Go, esta é uma excelente oportunidade para aplicar seu conhecimento.", rec.Suggestion)
}

func TestKnowledgeLevel(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name      string
		stack     string
		whitelist []string
		expected  types.KnowledgeLevel
	}{
		{name: "php", stack: "PHP", expected: types.KnowledgeHigh},
		{name: "react", stack: "React", expected: types.KnowledgeAdvanced},
		{name: "javascript is not java", stack: "JavaScript", expected: types.KnowledgeAdvanced},
		{name: "python", stack: "Python", expected: types.KnowledgeBasic},
		{name: "elementor", stack: "Elementor Pro", expected: types.KnowledgeMedium},
		{name: "unknown stack", stack: "Elixir", expected: types.KnowledgeMedium},
		{name: "empty stack", stack: "", expected: types.KnowledgeMedium},
		{name: "whitelisted", stack: "React", whitelist: []string{"react"}, expected: types.KnowledgeExpert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.KnowledgeLevel(tt.stack, tt.whitelist))
		})
	}
}

func TestKnowledgeLevel_ConfigurableDefault(t *testing.T) {
	tables := DefaultTables()
	tables.DefaultKnowledge = types.KnowledgeBasic
	e := New(nil, tables)

	assert.Equal(t, types.KnowledgeBasic, e.KnowledgeLevel("Elixir", nil))
}
