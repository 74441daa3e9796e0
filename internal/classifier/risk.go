package classifier

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/proposal-assistant/internal/types"
)

var budgetPattern = regexp.MustCompile(`r\$\s*(\d+)`)

// CheckRiskIndicators flags urgency, ambiguity, understated complexity and
// a budget that looks too small for the number of listed features.
func CheckRiskIndicators(description string) types.RiskIndicators {
	text := strings.ToLower(description)

	indicators := types.RiskIndicators{
		Urgency:   containsAny(text, urgencyWords),
		Ambiguity: containsAny(text, ambiguityWords),
	}

	// claims to be simple while naming integration-heavy work
	indicators.HiddenComplexity = containsAny(text, simplicityClaims) && containsAny(text, complexityEvidence)

	// features are approximated by comma count
	if match := budgetPattern.FindStringSubmatch(text); match != nil {
		budget, err := strconv.Atoi(match[1])
		features := strings.Count(text, ",")
		if err == nil && features > featureCommaLimit && budget < unrealisticBudgetCap {
			indicators.UnrealisticBudget = true
		}
	}

	return indicators
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
