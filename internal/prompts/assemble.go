package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/proposal-assistant/internal/types"
)

// Template placeholders. The '#' forms predate the bracket forms and are
// still used by saved templates.
const (
	TokenClientNameLegacy  = "#NOMEDOCLIENTE"
	TokenClientName        = "{NOME_CLIENTE}"
	TokenExplanationLegacy = "#TEXTODEEXPLICAÇÃO"
	TokenExplanation       = "{TEXTO_EXPLICACAO}"
	TokenTitle             = "{TITULO_PROJETO}"
	TokenStack             = "{STACK_TECNOLOGICA}"
	TokenAnalysis          = "{ANALISE_TECNICA}"
	TokenQuestion          = "{DUVIDA_PERTINENTE}"
	TokenDeadline          = "{PRAZO}"
	TokenPrice             = "{VALOR}"
	TokenPortfolio         = "{LINK_PORTFOLIO}"
	TokenLinkedIn          = "{LINK_LINKEDIN}"
	TokenMeeting           = "{LINK_MEETING}"
)

// Tokens lists every placeholder AssembleProposal replaces.
var Tokens = []string{
	TokenClientNameLegacy, TokenClientName,
	TokenExplanationLegacy, TokenExplanation,
	TokenTitle, TokenStack, TokenAnalysis, TokenQuestion,
	TokenDeadline, TokenPrice,
	TokenPortfolio, TokenLinkedIn, TokenMeeting,
}

const (
	defaultClientName = "Cliente"
	defaultTitle      = "seu projeto"
	defaultStack      = "tecnologias modernas"
	defaultQuestion   = "Gostaria de saber mais detalhes sobre o escopo?"
	toBeAgreed        = "a combinar"
	defaultPortfolio  = "https://meu-portfolio.com"
	defaultLinkedIn   = "https://linkedin.com"
	defaultMeeting    = "Link para reunião a combinar"
)

// tokenScrubber removes placeholders from substituted values so a second
// pass over the output changes nothing.
var tokenScrubber = func() *strings.Replacer {
	pairs := make([]string, 0, len(Tokens)*2)
	for _, token := range Tokens {
		pairs = append(pairs, token, "")
	}
	return strings.NewReplacer(pairs...)
}()

// DefaultTemplate returns the built-in proposal template.
func DefaultTemplate() string {
	return MustText("proposal-template")
}

// InviablePlaceholder is the proposal text returned for projects that
// should be skipped.
func InviablePlaceholder() string {
	return MustText("inviable-placeholder")
}

// AssembleProposal fills the template with the generated text, the
// analysis figures and the operator's links. Replacement is literal and
// global; an empty customTemplate selects the built-in one.
func AssembleProposal(clientName, explanation string, project types.ProjectInput, result types.AnalysisResult, customTemplate, question string, cfg types.UserConfig) string {
	template := customTemplate
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate()
	}

	deadline := toBeAgreed
	if result.SuggestedDeadline > 0 {
		deadline = fmt.Sprintf("%d dias", result.SuggestedDeadline)
	}
	price := toBeAgreed
	if result.SuggestedPrice != nil && *result.SuggestedPrice != 0 {
		price = fmt.Sprintf("R$ %d", *result.SuggestedPrice)
	}

	name := scrub(orDefault(clientName, defaultClientName))
	text := scrub(explanation)

	replacer := strings.NewReplacer(
		TokenClientNameLegacy, name,
		TokenClientName, name,
		TokenExplanationLegacy, text,
		TokenExplanation, text,
		TokenTitle, scrub(orDefault(project.Title, defaultTitle)),
		TokenStack, scrub(orDefault(result.RecommendedStack, defaultStack)),
		TokenAnalysis, text,
		TokenQuestion, scrub(orDefault(question, defaultQuestion)),
		TokenDeadline, deadline,
		TokenPrice, price,
		TokenPortfolio, scrub(orDefault(cfg.Links.Portfolio, defaultPortfolio)),
		TokenLinkedIn, scrub(orDefault(cfg.Links.LinkedIn, defaultLinkedIn)),
		TokenMeeting, scrub(orDefault(cfg.Links.Meeting, defaultMeeting)),
	)
	return replacer.Replace(template)
}

// scrub repeats until stable since removing one token can join the halves
// of another.
func scrub(value string) string {
	for {
		cleaned := tokenScrubber.Replace(value)
		if cleaned == value {
			return cleaned
		}
		value = cleaned
	}
}
