// Package rules turns a project description and the operator's policy into
// a complexity rating, a viability verdict, a deadline and a price.
package rules

import (
	"github.com/jonathan/proposal-assistant/internal/classifier"
	"github.com/jonathan/proposal-assistant/internal/types"
)

// Engine is pure: it holds read-only tables and performs no I/O, so one
// instance can serve concurrent requests.
type Engine struct {
	classifier *classifier.Classifier
	tables     Tables
}

// New creates an Engine from an explicit classifier and rule tables.
func New(cls *classifier.Classifier, tables Tables) *Engine {
	return &Engine{classifier: cls, tables: tables}
}

// NewDefault creates an Engine over the built-in tables.
func NewDefault() *Engine {
	return New(classifier.NewDefault(), DefaultTables())
}

// NewFromSet creates an Engine from a loaded table set.
func NewFromSet(set TableSet) *Engine {
	return New(classifier.New(set.Classifier), set.Rules)
}

// Analyze runs every rule over the project. cfg must already be normalized.
func (e *Engine) Analyze(project types.ProjectInput, cfg types.UserConfig) types.AnalysisResult {
	classification := e.classifier.Classify(project.Description, project.StackMentioned)

	recommendation := e.StackRecommendation(project.StackMentioned, project.Description, cfg)
	viability := e.AssessViability(project.StackMentioned, project.Description, cfg.Blacklist)
	deadline := e.CalculateDeadline(project.ClientDeadline, classification.Complexity, project.StackMentioned, cfg.DeadlineAdjustment)
	price := e.CalculateValue(project.ClientBudget, classification.Complexity, cfg.ValueAdjustment)
	knowledge := e.KnowledgeLevel(project.StackMentioned, cfg.Whitelist)

	return types.AnalysisResult{
		Complexity:        classification.Complexity,
		Viability:         viability,
		SuggestedDeadline: deadline,
		SuggestedPrice:    price,
		RecommendedStack:  recommendation.Stack,
		StackSuggestion:   recommendation.Suggestion,
		KnowledgeLevel:    knowledge,
		Reasons:           classification.Reasons,
		DetectedStacks:    classification.DetectedStacks,
		Risks:             classification.Risks,
	}
}

// Classify exposes the engine's classifier.
func (e *Engine) Classify(description, stackMentioned string) types.Classification {
	return e.classifier.Classify(description, stackMentioned)
}
