// Package classifier scores free-text project descriptions against fixed
// keyword tables to produce a complexity tier and a technology-stack list.
package classifier

import (
	"fmt"
	"strings"

	"github.com/jonathan/proposal-assistant/internal/types"
)

const (
	// maxReasons caps the reasons reported per classification
	maxReasons = 5
	// shortDescriptionWords and longDescriptionWords bound the word-count heuristics
	shortDescriptionWords = 20
	longDescriptionWords  = 200
	// multiStackThreshold is the detected-stack count above which complexity rises
	multiStackThreshold = 2
)

// Classifier is safe for concurrent use; it holds only read-only tables.
type Classifier struct {
	tables Tables
}

// New creates a Classifier over the given tables.
func New(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// NewDefault creates a Classifier over DefaultTables.
func NewDefault() *Classifier {
	return New(DefaultTables())
}

// Classify scores the description and mentioned stack. It never fails;
// with no keyword hits the tier is medium.
func (c *Classifier) Classify(description, stackMentioned string) types.Classification {
	text := strings.ToLower(description + " " + stackMentioned)

	scores := make(map[types.Complexity]int, len(types.Complexities))
	for _, tier := range types.Complexities {
		scores[tier] = 0
	}

	var reasons []string
	for _, tier := range c.tables.Tiers {
		for _, keyword := range tier.Keywords {
			if strings.Contains(text, keyword) {
				scores[tier.Tier]++
				reasons = append(reasons, fmt.Sprintf("%q detected → %s", keyword, tier.Tier))
			}
		}
	}

	complexity := resolveComplexity(scores)

	wordCount := len(strings.Fields(description))
	if wordCount < shortDescriptionWords && complexity == types.ComplexityMedium {
		reasons = append(reasons, "Very short description - may mean a simple project or unclear scope")
	}
	if wordCount > longDescriptionWords && complexity != types.ComplexityComplex {
		reasons = append(reasons, "Detailed description - project may be more complex than it looks")
		if complexity == types.ComplexitySimple {
			complexity = types.ComplexityMedium
		}
	}

	detected := c.DetectStacks(text)
	if len(detected) > multiStackThreshold {
		reasons = append(reasons, fmt.Sprintf("Multiple technologies detected (%s) - raises complexity", strings.Join(detected, ", ")))
		if complexity == types.ComplexitySimple {
			complexity = types.ComplexityMedium
		}
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	if reasons == nil {
		reasons = []string{}
	}

	return types.Classification{
		Complexity:     complexity,
		Scores:         scores,
		Reasons:        reasons,
		DetectedStacks: detected,
		Risks:          CheckRiskIndicators(description),
	}
}

// resolveComplexity applies the tier priority rules; the first satisfied rule wins.
func resolveComplexity(scores map[types.Complexity]int) types.Complexity {
	simple := scores[types.ComplexitySimple]
	medium := scores[types.ComplexityMedium]
	hard := scores[types.ComplexityComplex]
	risky := scores[types.ComplexityRisky]

	switch {
	case risky >= 2:
		return types.ComplexityRisky
	case hard >= 2 || (hard >= 1 && risky >= 1):
		return types.ComplexityComplex
	case simple >= 2 && hard == 0:
		return types.ComplexitySimple
	case medium >= 1 || hard >= 1:
		return types.ComplexityMedium
	case simple >= 1:
		return types.ComplexitySimple
	default:
		return types.ComplexityMedium
	}
}

// DetectStacks returns the distinct technologies whose keywords occur in
// text, in table order. Matching is case-insensitive substring matching.
func (c *Classifier) DetectStacks(text string) []string {
	lower := strings.ToLower(text)
	detected := make([]string, 0)
	for _, stack := range c.tables.Stacks {
		for _, keyword := range stack.Keywords {
			if strings.Contains(lower, keyword) {
				detected = append(detected, stack.Name)
				break
			}
		}
	}
	return detected
}
