package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/proposal-assistant/internal/classifier"
	"github.com/jonathan/proposal-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overrideYAML = `
complexity_keywords:
  risky:
    - Blockchain
    - NFT
base_days:
  simple: 3
max_discounts:
  simple: 0.02
knowledge:
  - key: Elixir
    level: expert
default_knowledge: basic
role_defaults:
  designer:
    stack: Canva
    suggestion: Layouts no Canva.
`

func TestParseTableSet_MergesOverDefaults(t *testing.T) {
	set, err := ParseTableSet([]byte(overrideYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, set.Rules.BaseDays[types.ComplexitySimple])
	assert.Equal(t, 15, set.Rules.BaseDays[types.ComplexityMedium])
	assert.Equal(t, 0.02, set.Rules.MaxDiscounts[types.ComplexitySimple])
	assert.Equal(t, types.KnowledgeBasic, set.Rules.DefaultKnowledge)
	assert.Equal(t, "Canva", set.Rules.RoleDefaults[types.RoleDesigner].Stack)
	assert.Equal(t, "React + Node.js", set.Rules.RoleDefaults[types.RoleDeveloper].Stack)

	e := NewFromSet(set)
	assert.Equal(t, types.KnowledgeExpert, e.KnowledgeLevel("Elixir", nil))
	assert.Equal(t, types.KnowledgeBasic, e.KnowledgeLevel("Haskell", nil))

	price := e.CalculateValue(floatPtr(1000), types.ComplexitySimple, 0)
	require.NotNil(t, price)
	assert.Equal(t, 980, *price)

	// Overridden tier keywords are lowercased; untouched tiers keep their defaults.
	c := classifier.New(set.Classifier)
	assert.Equal(t, types.ComplexityRisky, c.Classify("plataforma de nft com blockchain", "").Complexity)
	assert.Equal(t, types.ComplexitySimple, c.Classify("landing page", "").Complexity)
}

func TestParseTableSet_Empty(t *testing.T) {
	set, err := ParseTableSet([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultTableSet(), set)
}

func TestParseTableSet_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "malformed yaml", content: "base_days: [", errMsg: "failed to parse rules file"},
		{name: "unknown complexity", content: "base_days:\n  trivial: 1\n", errMsg: "unknown complexity"},
		{name: "discount out of range", content: "max_discounts:\n  simple: 1.5\n", errMsg: "out of range"},
		{name: "unknown knowledge level", content: "knowledge:\n  - key: Go\n    level: guru\n", errMsg: "unknown level"},
		{name: "unknown role", content: "role_defaults:\n  astronaut:\n    stack: x\n", errMsg: "unknown role"},
		{name: "empty role", content: "role_defaults:\n  \"\":\n    stack: x\n", errMsg: "unknown role"},
		{name: "stack without keywords", content: "stacks:\n  - name: Go\n", errMsg: "at least one keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTableSet([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadTableSet(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		set, err := LoadTableSet("")
		require.NoError(t, err)
		assert.Equal(t, DefaultTableSet(), set)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTableSet(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read rules file")
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(overrideYAML), 0o600))

		set, err := LoadTableSet(path)
		require.NoError(t, err)
		assert.Equal(t, 3, set.Rules.BaseDays[types.ComplexitySimple])
	})
}
