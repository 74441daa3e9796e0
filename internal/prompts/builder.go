package prompts

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/proposal-assistant/internal/types"
)

// minCustomPromptLength is the rune count a custom system prompt must
// exceed before it replaces the built-in one.
const minCustomPromptLength = 10

var roleAreas = map[types.Role]string{
	types.RoleDeveloper:  "desenvolvimento de software e web",
	types.RoleCopywriter: "redação, copywriting e produção de conteúdo",
	types.RoleDesigner:   "design gráfico, UI/UX e identidade visual",
	types.RoleTranslator: "tradução e localização de conteúdo",
	types.RoleMarketing:  "marketing digital, gestão de tráfego e growth",
	types.RoleOther:      "serviços freelance",
}

// BuildGenerationRequest turns a project and its analysis into the two
// instructions sent to the text generator.
func BuildGenerationRequest(project types.ProjectInput, result types.AnalysisResult, cfg types.UserConfig) types.GenerationRequest {
	return types.GenerationRequest{
		SystemInstruction: BuildSystemInstruction(cfg.SystemPrompt, cfg.Role),
		UserInstruction:   BuildUserInstruction(project, result),
	}
}

// BuildSystemInstruction wraps a custom prompt with the fixed JSON output
// rules, or falls back to the role-flavored built-in prompt when the custom
// prompt is too short to be meaningful.
func BuildSystemInstruction(customPrompt string, role types.Role) string {
	if utf8.RuneCountInString(strings.TrimSpace(customPrompt)) > minCustomPromptLength {
		return Format(MustText("system-custom"), map[string]string{
			"CustomPrompt": customPrompt,
		})
	}

	area, ok := roleAreas[role]
	if !ok {
		area = roleAreas[types.RoleOther]
	}
	return Format(MustText("system-default"), map[string]string{
		"Area": area,
	})
}

// BuildUserInstruction serializes the project and analysis into labeled
// sections ending with the instruction to answer in JSON.
func BuildUserInstruction(project types.ProjectInput, result types.AnalysisResult) string {
	data := map[string]string{
		"ClientName":          orDefault(project.ClientName, "Não informado"),
		"Title":               project.Title,
		"Description":         orDefault(project.Description, "Não informada"),
		"StackMentioned":      orDefault(project.StackMentioned, "Não identificada"),
		"RecommendedStack":    result.RecommendedStack,
		"StackSuggestionLine": "",
		"Complexity":          string(result.Complexity),
		"KnowledgeLevel":      string(result.KnowledgeLevel),
		"RiskLine":            riskLine(result.Risks),
		"BudgetLine":          "Orçamento: Não informado",
		"DeadlineLine":        "Prazo: Não informado",
		"SuggestedDeadline":   strconv.Itoa(result.SuggestedDeadline),
		"PriceLine":           "- Valor: A definir com o cliente",
	}

	if result.StackSuggestion != "" {
		data["StackSuggestionLine"] = "Sugestão de Stack: " + result.StackSuggestion
	}
	if project.HasBudget() {
		data["BudgetLine"] = "Orçamento do Cliente: R$ " + formatNumber(*project.ClientBudget)
	}
	if project.HasDeadline() {
		data["DeadlineLine"] = fmt.Sprintf("Prazo do Cliente: %s dias", formatNumber(*project.ClientDeadline))
	}
	if result.SuggestedPrice != nil && *result.SuggestedPrice != 0 {
		data["PriceLine"] = fmt.Sprintf("- Valor Sugerido: R$ %d", *result.SuggestedPrice)
	}

	return Format(MustText("user-instruction"), data)
}

func riskLine(risks types.RiskIndicators) string {
	if !risks.Any() {
		return ""
	}

	var labels []string
	if risks.Urgency {
		labels = append(labels, "urgência")
	}
	if risks.Ambiguity {
		labels = append(labels, "escopo ambíguo")
	}
	if risks.HiddenComplexity {
		labels = append(labels, "complexidade oculta")
	}
	if risks.UnrealisticBudget {
		labels = append(labels, "orçamento irreal")
	}
	return Format(MustText("risk-alert"), map[string]string{
		"Risks": strings.Join(labels, ", "),
	})
}

// formatNumber renders 1500 as "1500" and 1500.5 as "1500.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
