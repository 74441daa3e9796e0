package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/schemas"
	"github.com/jonathan/proposal-assistant/internal/types"
	schemafiles "github.com/jonathan/proposal-assistant/schemas"
)

// Generator turns a generation request into a parsed response.
type Generator struct {
	client Client
	logger *zap.Logger
}

// NewGenerator creates a Generator over client.
func NewGenerator(client Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// Generate calls the model once. Every failure is a *GenerationError.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest) (types.GenerationResponse, error) {
	g.logger.Debug("calling text generator", zap.String("model", g.client.Model()))

	raw, err := g.client.GenerateJSON(ctx, req.SystemInstruction, req.UserInstruction)
	if err != nil {
		return types.GenerationResponse{}, ClassifyError(err)
	}

	resp, err := ParseGenerationResponse(raw)
	if err != nil {
		g.logger.Warn("unparseable generation response", zap.Int("length", len(raw)), zap.Error(err))
		return types.GenerationResponse{}, err
	}
	return resp, nil
}

// generationWire accepts both the Portuguese keys the prompt asks for and
// the English ones models sometimes answer with.
type generationWire struct {
	ExplanationText   string   `json:"textoExplicacao"`
	TextExplanation   string   `json:"textExplanation"`
	PertinentQuestion *string  `json:"duvidaPertinente"`
	Prazo             *float64 `json:"prazo"`
	Deadline          *float64 `json:"deadline"`
	Valor             *float64 `json:"valor"`
	Value             *float64 `json:"value"`
}

// ParseGenerationResponse validates raw model output against the embedded
// schema and maps it onto a GenerationResponse. Zero overrides count as
// absent.
func ParseGenerationResponse(raw string) (types.GenerationResponse, error) {
	cleaned := CleanJSONBlock(raw)
	if cleaned == "" {
		return types.GenerationResponse{}, malformed(errors.New("empty output"))
	}

	if err := schemas.ValidateEmbedded(schemafiles.GenerationResponse, cleaned); err != nil {
		return types.GenerationResponse{}, malformed(err)
	}

	var wire generationWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return types.GenerationResponse{}, malformed(fmt.Errorf("failed to unmarshal response: %w", err))
	}

	explanation := wire.ExplanationText
	if strings.TrimSpace(explanation) == "" {
		explanation = wire.TextExplanation
	}
	if strings.TrimSpace(explanation) == "" {
		return types.GenerationResponse{}, malformed(errors.New("empty explanation text"))
	}

	resp := types.GenerationResponse{
		ExplanationText:  explanation,
		DeadlineOverride: firstNonZero(wire.Prazo, wire.Deadline),
		PriceOverride:    firstNonZero(wire.Valor, wire.Value),
	}
	if wire.PertinentQuestion != nil {
		resp.PertinentQuestion = *wire.PertinentQuestion
	}
	return resp, nil
}

func firstNonZero(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil && *v != 0 {
			return v
		}
	}
	return nil
}

func malformed(err error) *GenerationError {
	return &GenerationError{Kind: KindMalformed, Err: err}
}
