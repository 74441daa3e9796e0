package rules

import "github.com/jonathan/proposal-assistant/internal/types"

// StackFactor scales a deadline when Key occurs in the mentioned stack.
type StackFactor struct {
	Key    string  `yaml:"key"`
	Factor float64 `yaml:"factor"`
}

// KnowledgeEntry declares the operator's proficiency with a technology.
type KnowledgeEntry struct {
	Key   string               `yaml:"key"`
	Level types.KnowledgeLevel `yaml:"level"`
}

// Tables holds every fixed lookup the engine uses. Slices are scanned in
// order and the first substring hit wins. Tables are never mutated after
// construction.
type Tables struct {
	BaseDays                  map[types.Complexity]int
	BaselineDeadlineFactor    float64
	StackDeadlineFactors      []StackFactor
	DefaultStackFactor        float64
	ComplexityDeadlineFactors map[types.Complexity]float64
	BaselineDiscount          float64
	MaxDiscounts              map[types.Complexity]float64
	Knowledge                 []KnowledgeEntry
	DefaultKnowledge          types.KnowledgeLevel
	InviableKeywords          []string
	WordPressKeywords         []string
	RoleDefaults              map[types.Role]types.StackRecommendation
}

const (
	// fallbackBaseDays applies when a complexity has no base-days entry
	fallbackBaseDays = 15
	// fallbackMaxDiscount applies when a complexity has no discount entry
	fallbackMaxDiscount = 0.05

	notIdentifiedStack = "não identificada"

	phpKeyword     = "php"
	laravelKeyword = "laravel"
	phpOrJSStack   = "PHP ou JavaScript"
	wordPressStack = "WordPress"

	whitelistSuggestion = "Como você domina %s, esta é uma excelente oportunidade para aplicar seu conhecimento."
	wordPressSuggestion = "Utilizarei Elementor Pro para o desenvolvimento visual e Yoast Pro para SEO, ambos sem custo adicional para você."
	phpSuggestion       = "O projeto menciona PHP. Posso desenvolver nessa tecnologia, mas também tenho a opção de migrar para JavaScript (React + Node) caso prefira uma stack mais moderna. O que acha?"
	mentionedSuggestion = "Vou avaliar os requisitos do projeto e trabalhar com a stack mencionada pelo cliente."
)

// DefaultTables returns the built-in rule tables.
func DefaultTables() Tables {
	return Tables{
		BaseDays: map[types.Complexity]int{
			types.ComplexitySimple:  7,
			types.ComplexityMedium:  15,
			types.ComplexityComplex: 30,
			types.ComplexityRisky:   45,
		},
		BaselineDeadlineFactor: 1.15,
		StackDeadlineFactors: []StackFactor{
			{Key: "JavaScript", Factor: 1.5},
			{Key: "Node.js", Factor: 1.5},
			{Key: "React", Factor: 1.5},
			{Key: "Vue", Factor: 1.5},
			{Key: "Next.js", Factor: 1.5},
			{Key: "PHP", Factor: 1.25},
			{Key: "Laravel", Factor: 1.25},
			{Key: "WordPress", Factor: 1.0},
		},
		DefaultStackFactor: 1.15,
		ComplexityDeadlineFactors: map[types.Complexity]float64{
			types.ComplexitySimple:  1.0,
			types.ComplexityMedium:  1.2,
			types.ComplexityComplex: 1.4,
			types.ComplexityRisky:   1.5,
		},
		BaselineDiscount: 0.075,
		MaxDiscounts: map[types.Complexity]float64{
			types.ComplexitySimple:  0.10,
			types.ComplexityMedium:  0.10,
			types.ComplexityComplex: 0.05,
			types.ComplexityRisky:   0.0,
		},
		Knowledge: []KnowledgeEntry{
			{Key: "PHP", Level: types.KnowledgeHigh},
			{Key: "Laravel", Level: types.KnowledgeHigh},
			{Key: "WordPress", Level: types.KnowledgeMedium},
			{Key: "Elementor", Level: types.KnowledgeMedium},
			{Key: "JavaScript", Level: types.KnowledgeAdvanced},
			{Key: "Node.js", Level: types.KnowledgeAdvanced},
			{Key: "React", Level: types.KnowledgeAdvanced},
			{Key: "Vue", Level: types.KnowledgeAdvanced},
			{Key: "Next.js", Level: types.KnowledgeAdvanced},
			{Key: "HTML", Level: types.KnowledgeAdvanced},
			{Key: "CSS", Level: types.KnowledgeAdvanced},
			{Key: "Python", Level: types.KnowledgeBasic},
			{Key: "Java", Level: types.KnowledgeBasic},
			{Key: ".NET", Level: types.KnowledgeBasic},
			{Key: "Ruby", Level: types.KnowledgeBasic},
			{Key: "Mobile", Level: types.KnowledgeBasic},
		},
		DefaultKnowledge: types.KnowledgeMedium,
		InviableKeywords: []string{
			"ilegal", "fraude", "hack", "crack", "piratear",
			"automatizar login", "burlar", "captcha", "bot automatico",
			"raspar dados pessoais", "spam", "phishing",
		},
		WordPressKeywords: []string{"wordpress", "woocommerce", "elementor"},
		RoleDefaults: map[types.Role]types.StackRecommendation{
			types.RoleDeveloper: {
				Stack:      "React + Node.js",
				Suggestion: "Como não há uma tecnologia específica definida, sugiro desenvolver com React no frontend e Node.js no backend, que são tecnologias modernas e performáticas.",
			},
			types.RoleCopywriter: {
				Stack:      "Copywriting orientado a conversão",
				Suggestion: "Vou estruturar os textos com foco em conversão, usando técnicas de persuasão adequadas ao público do projeto.",
			},
			types.RoleDesigner: {
				Stack:      "Figma + Adobe Creative Cloud",
				Suggestion: "Trabalharei no Figma para protótipos e layouts, com finalização no Adobe Creative Cloud quando necessário.",
			},
			types.RoleTranslator: {
				Stack:      "Tradução com revisão completa",
				Suggestion: "Farei a tradução com revisão completa, garantindo fidelidade ao original e naturalidade no idioma de destino.",
			},
			types.RoleMarketing: {
				Stack:      "Google Ads + Meta Ads",
				Suggestion: "Sugiro campanhas em Google Ads e Meta Ads, com acompanhamento de métricas desde o primeiro dia.",
			},
			types.RoleOther: {
				Stack:      "Ferramentas adequadas ao projeto",
				Suggestion: "Vou escolher as ferramentas mais adequadas depois de entender melhor o escopo.",
			},
		},
	}
}
