package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/proposal-assistant/internal/classifier"
	"github.com/jonathan/proposal-assistant/internal/types"
)

// TableSet bundles classifier and rule tables loaded together.
type TableSet struct {
	Classifier classifier.Tables
	Rules      Tables
}

// DefaultTableSet returns the built-in tables.
func DefaultTableSet() TableSet {
	return TableSet{Classifier: classifier.DefaultTables(), Rules: DefaultTables()}
}

// tablesFile is the on-disk override format. Every section is optional;
// an absent section keeps the built-in value.
type tablesFile struct {
	ComplexityKeywords        map[types.Complexity][]string `yaml:"complexity_keywords,omitempty"`
	Stacks                    []stackEntry                  `yaml:"stacks,omitempty"`
	BaseDays                  map[types.Complexity]int      `yaml:"base_days,omitempty"`
	BaselineDeadlineFactor    *float64                      `yaml:"baseline_deadline_factor,omitempty"`
	StackDeadlineFactors      []StackFactor                 `yaml:"stack_deadline_factors,omitempty"`
	DefaultStackFactor        *float64                      `yaml:"default_stack_factor,omitempty"`
	ComplexityDeadlineFactors map[types.Complexity]float64  `yaml:"complexity_deadline_factors,omitempty"`
	BaselineDiscount          *float64                      `yaml:"baseline_discount,omitempty"`
	MaxDiscounts              map[types.Complexity]float64  `yaml:"max_discounts,omitempty"`
	Knowledge                 []KnowledgeEntry              `yaml:"knowledge,omitempty"`
	DefaultKnowledge          types.KnowledgeLevel          `yaml:"default_knowledge,omitempty"`
	InviableKeywords          []string                      `yaml:"inviable_keywords,omitempty"`
	WordPressKeywords         []string                      `yaml:"wordpress_keywords,omitempty"`
	RoleDefaults              map[types.Role]roleDefault    `yaml:"role_defaults,omitempty"`
}

type stackEntry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type roleDefault struct {
	Stack      string `yaml:"stack"`
	Suggestion string `yaml:"suggestion"`
}

// LoadTableSet reads a YAML override file and merges it over the built-in
// tables. An empty path returns the defaults.
func LoadTableSet(path string) (TableSet, error) {
	set := DefaultTableSet()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return ParseTableSet(data)
}

// ParseTableSet merges YAML override content over the built-in tables.
func ParseTableSet(data []byte) (TableSet, error) {
	set := DefaultTableSet()

	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return set, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if err := file.validate(); err != nil {
		return set, err
	}

	if len(file.ComplexityKeywords) > 0 {
		tiers := make([]classifier.TierKeywords, 0, len(types.Complexities))
		for _, tier := range types.Complexities {
			keywords, ok := file.ComplexityKeywords[tier]
			if !ok {
				keywords = defaultTierKeywords(set.Classifier, tier)
			}
			tiers = append(tiers, classifier.TierKeywords{Tier: tier, Keywords: lowerAll(keywords)})
		}
		set.Classifier.Tiers = tiers
	}
	if len(file.Stacks) > 0 {
		stacks := make([]classifier.StackKeywords, 0, len(file.Stacks))
		for _, s := range file.Stacks {
			stacks = append(stacks, classifier.StackKeywords{Name: s.Name, Keywords: lowerAll(s.Keywords)})
		}
		set.Classifier.Stacks = stacks
	}

	r := &set.Rules
	for tier, days := range file.BaseDays {
		r.BaseDays[tier] = days
	}
	if file.BaselineDeadlineFactor != nil {
		r.BaselineDeadlineFactor = *file.BaselineDeadlineFactor
	}
	if len(file.StackDeadlineFactors) > 0 {
		r.StackDeadlineFactors = file.StackDeadlineFactors
	}
	if file.DefaultStackFactor != nil {
		r.DefaultStackFactor = *file.DefaultStackFactor
	}
	for tier, factor := range file.ComplexityDeadlineFactors {
		r.ComplexityDeadlineFactors[tier] = factor
	}
	if file.BaselineDiscount != nil {
		r.BaselineDiscount = *file.BaselineDiscount
	}
	for tier, discount := range file.MaxDiscounts {
		r.MaxDiscounts[tier] = discount
	}
	if len(file.Knowledge) > 0 {
		r.Knowledge = file.Knowledge
	}
	if file.DefaultKnowledge != "" {
		r.DefaultKnowledge = file.DefaultKnowledge
	}
	if len(file.InviableKeywords) > 0 {
		r.InviableKeywords = lowerAll(file.InviableKeywords)
	}
	if len(file.WordPressKeywords) > 0 {
		r.WordPressKeywords = lowerAll(file.WordPressKeywords)
	}
	for role, rec := range file.RoleDefaults {
		r.RoleDefaults[role] = types.StackRecommendation{Stack: rec.Stack, Suggestion: rec.Suggestion}
	}

	return set, nil
}

func (f *tablesFile) validate() error {
	for tier := range f.ComplexityKeywords {
		if !validComplexity(tier) {
			return fmt.Errorf("complexity_keywords: unknown complexity %q", tier)
		}
	}
	for tier := range f.BaseDays {
		if !validComplexity(tier) {
			return fmt.Errorf("base_days: unknown complexity %q", tier)
		}
	}
	for tier := range f.ComplexityDeadlineFactors {
		if !validComplexity(tier) {
			return fmt.Errorf("complexity_deadline_factors: unknown complexity %q", tier)
		}
	}
	for tier, discount := range f.MaxDiscounts {
		if !validComplexity(tier) {
			return fmt.Errorf("max_discounts: unknown complexity %q", tier)
		}
		if discount < 0 || discount >= 1 {
			return fmt.Errorf("max_discounts: %s discount %v out of range [0, 1)", tier, discount)
		}
	}
	for _, s := range f.Stacks {
		if strings.TrimSpace(s.Name) == "" || len(s.Keywords) == 0 {
			return fmt.Errorf("stacks: entries need a name and at least one keyword")
		}
	}
	for _, k := range f.Knowledge {
		if !validKnowledge(k.Level) {
			return fmt.Errorf("knowledge: unknown level %q for %s", k.Level, k.Key)
		}
	}
	if f.DefaultKnowledge != "" && !validKnowledge(f.DefaultKnowledge) {
		return fmt.Errorf("default_knowledge: unknown level %q", f.DefaultKnowledge)
	}
	for role := range f.RoleDefaults {
		if !validRole(role) {
			return fmt.Errorf("role_defaults: unknown role %q", role)
		}
	}
	return nil
}

func validComplexity(c types.Complexity) bool {
	for _, known := range types.Complexities {
		if c == known {
			return true
		}
	}
	return false
}

func validRole(role types.Role) bool {
	switch role {
	case types.RoleDeveloper, types.RoleCopywriter, types.RoleDesigner,
		types.RoleTranslator, types.RoleMarketing, types.RoleOther:
		return true
	}
	return false
}

func validKnowledge(level types.KnowledgeLevel) bool {
	switch level {
	case types.KnowledgeBasic, types.KnowledgeMedium, types.KnowledgeHigh,
		types.KnowledgeAdvanced, types.KnowledgeExpert:
		return true
	}
	return false
}

func defaultTierKeywords(tables classifier.Tables, tier types.Complexity) []string {
	for _, t := range tables.Tiers {
		if t.Tier == tier {
			return t.Keywords
		}
	}
	return nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
