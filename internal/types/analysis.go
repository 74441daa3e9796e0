//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// Complexity is the classifier's tier for a project.
type Complexity string

// Complexity tiers, in ascending order of effort
const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
	ComplexityRisky   Complexity = "risky"
)

// Complexities lists every tier in scoring order.
var Complexities = []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex, ComplexityRisky}

// KnowledgeLevel is the operator's proficiency with a stack.
type KnowledgeLevel string

// KnowledgeLevel constants
const (
	KnowledgeBasic    KnowledgeLevel = "basic"
	KnowledgeMedium   KnowledgeLevel = "medium"
	KnowledgeHigh     KnowledgeLevel = "high"
	KnowledgeAdvanced KnowledgeLevel = "advanced"
	KnowledgeExpert   KnowledgeLevel = "expert"
)

// Viability is the verdict on whether a project should be pursued.
type Viability string

// Viability verdicts
const (
	Viable   Viability = "viable"
	Inviable Viability = "inviable"
)

// BlacklistedViability is the verdict for a project that mentions a blacklisted technology.
func BlacklistedViability(entry string) Viability {
	return Viability("inviable (blacklist: " + entry + ")")
}

// IsInviable reports whether the verdict rules the project out, for any reason.
func (v Viability) IsInviable() bool {
	return strings.HasPrefix(string(v), string(Inviable))
}

// Wire spellings the browser extension compares against.
const (
	wireViable   = "viável"
	wireInviable = "inviável"
)

// Wire returns the verdict as the extension spells it, keeping any
// blacklist suffix.
func (v Viability) Wire() string {
	s := string(v)
	switch {
	case strings.HasPrefix(s, string(Inviable)):
		return wireInviable + s[len(Inviable):]
	case strings.HasPrefix(s, string(Viable)):
		return wireViable + s[len(Viable):]
	}
	return s
}

// MarshalJSON writes the wire spelling.
func (v Viability) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Wire())
}

// UnmarshalJSON accepts both the wire and the internal spelling.
func (v *Viability) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(s, wireInviable):
		*v = Inviable + Viability(s[len(wireInviable):])
	case strings.HasPrefix(s, wireViable):
		*v = Viable + Viability(s[len(wireViable):])
	default:
		*v = Viability(s)
	}
	return nil
}

// RiskIndicators flags warning signs in a project description.
type RiskIndicators struct {
	Urgency           bool `json:"urgency"`
	Ambiguity         bool `json:"ambiguity"`
	HiddenComplexity  bool `json:"hidden_complexity"`
	UnrealisticBudget bool `json:"unrealistic_budget"`
}

// Any reports whether at least one indicator is set.
func (r RiskIndicators) Any() bool {
	return r.Urgency || r.Ambiguity || r.HiddenComplexity || r.UnrealisticBudget
}

// Classification is the Text Classifier output.
type Classification struct {
	Complexity     Complexity         `json:"complexity"`
	Scores         map[Complexity]int `json:"scores"`
	Reasons        []string           `json:"reasons"`
	DetectedStacks []string           `json:"detected_stacks"`
	Risks          RiskIndicators     `json:"risks"`
}

// StackRecommendation is the stack to pitch and an optional sentence explaining it.
type StackRecommendation struct {
	Stack      string `json:"stack"`
	Suggestion string `json:"suggestion,omitempty"`
}

// AnalysisResult is the Rules Engine output for one project.
type AnalysisResult struct {
	Complexity        Complexity     `json:"complexity"`
	Viability         Viability      `json:"viability"`
	SuggestedDeadline int            `json:"suggested_deadline"`
	SuggestedPrice    *int           `json:"suggested_price"`
	RecommendedStack  string         `json:"recommended_stack"`
	StackSuggestion   string         `json:"stack_suggestion,omitempty"`
	KnowledgeLevel    KnowledgeLevel `json:"knowledge_level"`
	Reasons           []string       `json:"reasons"`
	DetectedStacks    []string       `json:"detected_stacks"`
	Risks             RiskIndicators `json:"risks"`
}
