package classifier

import (
	"testing"

	"github.com/jonathan/proposal-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCheckRiskIndicators(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    types.RiskIndicators
	}{
		{
			name:        "no indicators",
			description: "Desenvolvimento de landing page institucional",
			expected:    types.RiskIndicators{},
		},
		{
			name:        "urgency",
			description: "Preciso disso para HOJE",
			expected:    types.RiskIndicators{Urgency: true},
		},
		{
			name:        "ambiguity",
			description: "quero algo assim parecido com o concorrente",
			expected:    types.RiskIndicators{Ambiguity: true},
		},
		{
			name:        "hidden complexity",
			description: "um site fácil com integração ao ERP",
			expected:    types.RiskIndicators{HiddenComplexity: true},
		},
		{
			name:        "unrealistic budget",
			description: "tenho R$ 300 para login, cadastro, carrinho, pagamento, chat, relatórios, dashboard",
			expected:    types.RiskIndicators{UnrealisticBudget: true},
		},
		{
			name:        "budget large enough",
			description: "tenho R$ 3000 para login, cadastro, carrinho, pagamento, chat, relatórios, dashboard",
			expected:    types.RiskIndicators{},
		},
		{
			name:        "small budget with few features",
			description: "tenho R$ 300 para login e cadastro",
			expected:    types.RiskIndicators{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckRiskIndicators(tt.description))
		})
	}
}

func TestRiskIndicators_Any(t *testing.T) {
	assert.False(t, types.RiskIndicators{}.Any())
	assert.True(t, types.RiskIndicators{Ambiguity: true}.Any())
}
