package classifier

import "github.com/jonathan/proposal-assistant/internal/types"

// TierKeywords is the ordered trigger-phrase list for one complexity tier.
type TierKeywords struct {
	Tier     types.Complexity
	Keywords []string
}

// StackKeywords maps a technology name to the substrings that reveal it.
type StackKeywords struct {
	Name     string
	Keywords []string
}

// Tables holds the keyword tables the classifier scans. Order is significant:
// tiers are scored in declaration order and stacks are reported in declaration order.
type Tables struct {
	Tiers  []TierKeywords
	Stacks []StackKeywords
}

// DefaultTables returns the built-in keyword tables. Phrases are lowercase
// Portuguese because that is the marketplace's language.
func DefaultTables() Tables {
	return Tables{
		Tiers: []TierKeywords{
			{Tier: types.ComplexitySimple, Keywords: []string{
				"landing page", "página simples", "site institucional",
				"one page", "hotsite", "ajuste", "correção pequena",
				"alteração simples", "bug simples", "página única",
				"html estático", "formulário simples",
			}},
			{Tier: types.ComplexityMedium, Keywords: []string{
				"blog", "e-commerce simples", "loja virtual simples",
				"sistema de cadastro", "crud", "dashboard simples",
				"integração api", "migração", "responsivo",
				"multi-página", "várias páginas",
			}},
			{Tier: types.ComplexityComplex, Keywords: []string{
				"sistema completo", "app web", "aplicação web",
				"e-commerce completo", "marketplace", "erp",
				"crm", "painel administrativo", "multi-usuário",
				"autenticação", "integração múltipla", "api rest",
				"tempo real", "websocket", "pagamento",
			}},
			{Tier: types.ComplexityRisky, Keywords: []string{
				"prazo apertado", "urgente", "para ontem",
				"não sei explicar", "complexo e barato",
				"refatoração grande", "sistema legado",
				"sem documentação", "integração legada",
				"cliente difícil", "já passou por outros devs",
			}},
		},
		Stacks: []StackKeywords{
			{Name: "WordPress", Keywords: []string{"wordpress", "woocommerce", "elementor", "wp", "tema wp", "plugin wp"}},
			{Name: "React", Keywords: []string{"react", "reactjs", "react.js", "next.js", "nextjs", "gatsby"}},
			{Name: "Vue", Keywords: []string{"vue", "vuejs", "vue.js", "nuxt", "nuxtjs"}},
			{Name: "Angular", Keywords: []string{"angular", "angularjs"}},
			{Name: "Node.js", Keywords: []string{"node", "nodejs", "node.js", "express", "nestjs", "fastify"}},
			{Name: "PHP", Keywords: []string{"php", "laravel", "symfony", "codeigniter", "yii", "cakephp"}},
			{Name: "Python", Keywords: []string{"python", "django", "flask", "fastapi"}},
			{Name: "Java", Keywords: []string{"java", "spring", "springboot", "spring boot"}},
			{Name: ".NET", Keywords: []string{".net", "dotnet", "c#", "csharp", "asp.net", "blazor"}},
			{Name: "Ruby", Keywords: []string{"ruby", "rails", "ruby on rails"}},
			{Name: "Mobile", Keywords: []string{"react native", "flutter", "ionic", "android", "ios", "swift", "kotlin"}},
			{Name: "JavaScript", Keywords: []string{"javascript", "js", "jquery", "typescript", "ts"}},
		},
	}
}

// risk indicator vocabularies
var (
	urgencyWords         = []string{"urgente", "para ontem", "prazo curto", "asap", "imediato", "hoje"}
	ambiguityWords       = []string{"mais ou menos", "tipo", "algo assim", "não sei bem", "acho que"}
	simplicityClaims     = []string{"simples", "fácil", "rápido", "básico"}
	complexityEvidence   = []string{"integração", "api", "sistema", "múltiplos", "completo"}
	unrealisticBudgetCap = 500
	featureCommaLimit    = 5
)
