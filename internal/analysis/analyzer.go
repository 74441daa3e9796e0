// Package analysis turns a scraped project into a finished proposal:
// validation, entitlement, rules, generation and assembly.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/access"
	"github.com/jonathan/proposal-assistant/internal/llm"
	"github.com/jonathan/proposal-assistant/internal/metrics"
	"github.com/jonathan/proposal-assistant/internal/prompts"
	"github.com/jonathan/proposal-assistant/internal/rules"
	"github.com/jonathan/proposal-assistant/internal/types"
)

// Generator drafts the free-text parts of a proposal. *llm.Generator
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, req types.GenerationRequest) (types.GenerationResponse, error)
}

// Progress steps
const (
	StepValidate = "validate"
	StepAccess   = "access"
	StepRules    = "rules"
	StepGenerate = "generate"
	StepAssemble = "assemble"
	StepUsage    = "usage"
)

// ProgressEvent reports a finished step of an analysis.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called after each step.
type ProgressCallback func(event ProgressEvent)

// Options configures an Analyzer. Nil fields get working defaults except
// Generator: without one, viable projects fail with a configuration error.
type Options struct {
	Engine     *rules.Engine
	Generator  Generator
	Access     access.Checker
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Analyzer runs the request-level control flow.
type Analyzer struct {
	engine     *rules.Engine
	generator  Generator
	access     access.Checker
	logger     *zap.Logger
	onProgress ProgressCallback
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		engine:     opts.Engine,
		generator:  opts.Generator,
		access:     opts.Access,
		logger:     opts.Logger,
		onProgress: opts.OnProgress,
	}
	if a.engine == nil {
		a.engine = rules.NewDefault()
	}
	if a.access == nil {
		a.access = access.Unlimited{}
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Evaluate validates the request and runs the rules only. It makes no
// external calls.
func (a *Analyzer) Evaluate(req types.AnalyzeRequest) (types.AnalysisResult, error) {
	project, cfg, err := prepare(req)
	if err != nil {
		return types.AnalysisResult{}, err
	}
	return a.engine.Analyze(project, cfg), nil
}

// Analyze produces the proposal for one project on behalf of userID.
func (a *Analyzer) Analyze(ctx context.Context, userID uuid.UUID, req types.AnalyzeRequest) (types.ProposalResult, error) {
	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	project, cfg, err := prepare(req)
	if err != nil {
		return types.ProposalResult{}, err
	}
	a.logger.Info("analyzing project",
		zap.String("user_id", userID.String()),
		zap.String("title", project.Title))
	a.emit(StepValidate, "request validated", nil)

	decision, err := a.access.CheckAccess(ctx, userID)
	if err != nil {
		return types.ProposalResult{}, fmt.Errorf("access check failed: %w", err)
	}
	if !decision.Allowed {
		metrics.AccessDenied.WithLabelValues(string(decision.Reason)).Inc()
		a.logger.Info("analysis refused", zap.String("user_id", userID.String()), zap.String("reason", string(decision.Reason)))
		return types.ProposalResult{}, &ErrAccessDenied{Reason: decision.Reason, Limit: decision.Limit}
	}
	a.emit(StepAccess, fmt.Sprintf("access granted (%s)", decision.Reason), nil)

	result := a.engine.Analyze(project, cfg)
	a.logger.Debug("rules evaluated",
		zap.String("complexity", string(result.Complexity)),
		zap.String("viability", string(result.Viability)),
		zap.String("stack", result.RecommendedStack),
		zap.Int("deadline", result.SuggestedDeadline),
		zap.Strings("reasons", result.Reasons))
	a.emit(StepRules, "rules evaluated", result)

	if result.Viability.IsInviable() {
		a.logger.Info("project is inviable, skipping generation",
			zap.String("title", project.Title),
			zap.String("viability", string(result.Viability)))
		a.count(result)
		return inviableResult(result), nil
	}

	gen, err := a.generate(ctx, project, result, cfg)
	if err != nil {
		return types.ProposalResult{}, err
	}
	a.emit(StepGenerate, "explanation generated", nil)

	final := applyOverrides(result, gen)
	text := prompts.AssembleProposal(
		project.ClientName,
		sanitizeGenerated(gen.ExplanationText),
		project,
		final,
		cfg.ProposalTemplate,
		sanitizeGenerated(gen.PertinentQuestion),
		cfg,
	)
	a.emit(StepAssemble, "proposal assembled", nil)

	out := types.ProposalResult{
		ProposalText: text,
		Deadline:     final.SuggestedDeadline,
		Price:        final.SuggestedPrice,
		Complexity:   final.Complexity,
		Viability:    final.Viability,
	}

	err = a.access.LogUsage(ctx, userID, types.UsageRecord{
		ProjectTitle: project.Title,
		ProjectURL:   project.URL,
		ProposalText: out.ProposalText,
		Price:        out.Price,
		Deadline:     out.Deadline,
	})
	if err != nil {
		a.logger.Warn("failed to record usage", zap.String("user_id", userID.String()), zap.Error(err))
	} else {
		a.emit(StepUsage, "usage recorded", nil)
	}

	a.count(final)
	return out, nil
}

func (a *Analyzer) generate(ctx context.Context, project types.ProjectInput, result types.AnalysisResult, cfg types.UserConfig) (types.GenerationResponse, error) {
	if a.generator == nil {
		err := &llm.GenerationError{Kind: llm.KindConfiguration, Err: llm.ErrMissingAPIKey}
		metrics.GenerationFailures.WithLabelValues(string(err.Kind)).Inc()
		return types.GenerationResponse{}, err
	}

	gen, err := a.generator.Generate(ctx, prompts.BuildGenerationRequest(project, result, cfg))
	if err != nil {
		genErr := llm.ClassifyError(err)
		metrics.GenerationFailures.WithLabelValues(string(genErr.Kind)).Inc()
		a.logger.Error("generation failed",
			zap.String("title", project.Title),
			zap.String("kind", string(genErr.Kind)),
			zap.Error(err))
		return types.GenerationResponse{}, genErr
	}
	return gen, nil
}

func (a *Analyzer) count(result types.AnalysisResult) {
	metrics.AnalysesTotal.WithLabelValues(
		string(result.Complexity),
		metrics.ViabilityLabel(result.Viability.IsInviable()),
	).Inc()
}

func (a *Analyzer) emit(step, message string, content any) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// prepare trims and validates the project, then validates and defaults
// the caller configuration.
func prepare(req types.AnalyzeRequest) (types.ProjectInput, types.UserConfig, error) {
	project := req.ProjectInput.Normalize()
	if err := project.Validate(); err != nil {
		return types.ProjectInput{}, types.UserConfig{}, newValidationError("", err)
	}

	if req.UserConfig != nil {
		if err := req.UserConfig.Validate(); err != nil {
			return types.ProjectInput{}, types.UserConfig{}, newValidationError("userConfig", err)
		}
	}
	return project, req.UserConfig.Normalize(), nil
}

// inviableResult is the fixed answer for a project the operator should skip.
func inviableResult(result types.AnalysisResult) types.ProposalResult {
	zero := 0
	return types.ProposalResult{
		ProposalText: prompts.InviablePlaceholder(),
		Deadline:     0,
		Price:        &zero,
		Complexity:   result.Complexity,
		Viability:    result.Viability,
	}
}

// applyOverrides lets positive generator figures replace the computed
// deadline and price. Days round up; currency rounds to nearest.
func applyOverrides(result types.AnalysisResult, gen types.GenerationResponse) types.AnalysisResult {
	if gen.DeadlineOverride != nil && *gen.DeadlineOverride > 0 {
		result.SuggestedDeadline = rules.WholeDays(*gen.DeadlineOverride)
	}
	if gen.PriceOverride != nil && *gen.PriceOverride > 0 {
		price := rules.WholeAmount(*gen.PriceOverride)
		result.SuggestedPrice = &price
	}
	return result
}
