//nolint:revive // types is a standard Go package name pattern
package types

// GenerationRequest is the pair of instructions sent to the text generator.
type GenerationRequest struct {
	SystemInstruction string `json:"system_instruction"`
	UserInstruction   string `json:"user_instruction"`
}

// GenerationResponse is the structured reply from the text generator.
// Overrides are nil when the generator left them out or set them to null.
type GenerationResponse struct {
	ExplanationText   string   `json:"textoExplicacao"`
	PertinentQuestion string   `json:"duvidaPertinente"`
	DeadlineOverride  *float64 `json:"prazo"`
	PriceOverride     *float64 `json:"valor"`
}

// AnalyzeRequest is the body of POST /api/analyze: the scraped project
// fields inline plus the optional caller configuration.
type AnalyzeRequest struct {
	ProjectInput
	UserConfig *UserConfig `json:"userConfig,omitempty"`
}

// ProposalResult is the single externally observable result of an analysis.
type ProposalResult struct {
	ProposalText string     `json:"textoProposta"`
	Deadline     int        `json:"prazo"`
	Price        *int       `json:"valor"`
	Complexity   Complexity `json:"complexidade"`
	Viability    Viability  `json:"viabilidade"`
}

// UsageRecord is what gets logged after a successful, viable analysis.
type UsageRecord struct {
	ProjectTitle string
	ProjectURL   string
	ProposalText string
	Price        *int
	Deadline     int
}
