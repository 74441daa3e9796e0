package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/proposal-assistant/internal/access"
	"github.com/jonathan/proposal-assistant/internal/llm"
	"github.com/jonathan/proposal-assistant/internal/prompts"
	"github.com/jonathan/proposal-assistant/internal/rules"
	"github.com/jonathan/proposal-assistant/internal/types"
)

type fakeGenerator struct {
	resp  types.GenerationResponse
	err   error
	calls []types.GenerationRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req types.GenerationRequest) (types.GenerationResponse, error) {
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

type fakeChecker struct {
	decision access.Decision
	checkErr error
	logErr   error
	logged   []types.UsageRecord
}

func (f *fakeChecker) CheckAccess(context.Context, uuid.UUID) (access.Decision, error) {
	return f.decision, f.checkErr
}

func (f *fakeChecker) LogUsage(_ context.Context, _ uuid.UUID, record types.UsageRecord) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.logged = append(f.logged, record)
	return nil
}

func (f *fakeChecker) TrialLimit() int {
	return access.DefaultTrialLimit
}

func allowed() *fakeChecker {
	remaining := 5
	return &fakeChecker{decision: access.Decision{Allowed: true, Reason: access.ReasonTrial, Remaining: &remaining, Limit: 10}}
}

func newTestAnalyzer(t *testing.T, gen Generator, checker access.Checker) *Analyzer {
	return New(Options{
		Engine:    rules.NewDefault(),
		Generator: gen,
		Access:    checker,
		Logger:    zaptest.NewLogger(t),
	})
}

func landingPageRequest() types.AnalyzeRequest {
	budget := 1000.0
	return types.AnalyzeRequest{
		ProjectInput: types.ProjectInput{
			ClientName:   "Maria",
			Title:        "Landing page para clínica",
			Description:  "Preciso de uma landing page simples",
			ClientBudget: &budget,
			URL:          "https://www.99freelas.com.br/project/123",
		},
	}
}

func TestAnalyze_ViableProject(t *testing.T) {
	gen := &fakeGenerator{resp: types.GenerationResponse{
		ExplanationText:   "Vou criar sua landing page com foco em conversão.",
		PertinentQuestion: "Você já tem a identidade visual?",
	}}
	checker := allowed()
	a := newTestAnalyzer(t, gen, checker)
	req := landingPageRequest()

	result, err := a.Analyze(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	expected := rules.NewDefault().Analyze(req.ProjectInput, types.DefaultUserConfig())
	assert.Equal(t, types.ComplexitySimple, result.Complexity)
	assert.Equal(t, types.Viable, result.Viability)
	assert.Equal(t, expected.SuggestedDeadline, result.Deadline)
	require.NotNil(t, result.Price)
	assert.Equal(t, 925, *result.Price)

	assert.Contains(t, result.ProposalText, "Maria")
	assert.Contains(t, result.ProposalText, "Vou criar sua landing page com foco em conversão.")
	assert.NotContains(t, result.ProposalText, prompts.TokenClientNameLegacy)
	assert.NotContains(t, result.ProposalText, prompts.TokenExplanationLegacy)

	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].UserInstruction, "Landing page para clínica")

	require.Len(t, checker.logged, 1)
	logged := checker.logged[0]
	assert.Equal(t, "Landing page para clínica", logged.ProjectTitle)
	assert.Equal(t, "https://www.99freelas.com.br/project/123", logged.ProjectURL)
	assert.Equal(t, result.ProposalText, logged.ProposalText)
	assert.Equal(t, result.Price, logged.Price)
	assert.Equal(t, result.Deadline, logged.Deadline)
}

func TestAnalyze_InviableSkipsGeneration(t *testing.T) {
	tests := []struct {
		name      string
		req       types.AnalyzeRequest
		viability types.Viability
	}{
		{
			name: "disallowed intent",
			req: types.AnalyzeRequest{ProjectInput: types.ProjectInput{
				Title:       "Página de login",
				Description: "Preciso de uma página de phishing igual a do banco",
			}},
			viability: types.Inviable,
		},
		{
			name: "blacklisted technology",
			req: types.AnalyzeRequest{
				ProjectInput: types.ProjectInput{
					Title:       "Site institucional",
					Description: "preciso de um site wordpress",
				},
				UserConfig: &types.UserConfig{Blacklist: []string{"wordpress"}},
			},
			viability: types.BlacklistedViability("wordpress"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			checker := allowed()
			a := newTestAnalyzer(t, gen, checker)

			result, err := a.Analyze(context.Background(), uuid.New(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.viability, result.Viability)
			assert.Equal(t, prompts.InviablePlaceholder(), result.ProposalText)
			assert.Equal(t, 0, result.Deadline)
			require.NotNil(t, result.Price)
			assert.Equal(t, 0, *result.Price)

			assert.Empty(t, gen.calls)
			assert.Empty(t, checker.logged)
		})
	}
}

func TestAnalyze_InviableWithoutGenerator(t *testing.T) {
	a := New(Options{})

	result, err := a.Analyze(context.Background(), uuid.New(), types.AnalyzeRequest{
		ProjectInput: types.ProjectInput{Title: "Bot", Description: "script para spam em massa"},
	})
	require.NoError(t, err)
	assert.True(t, result.Viability.IsInviable())
}

func TestAnalyze_GeneratorOverrides(t *testing.T) {
	tests := []struct {
		name         string
		deadline     *float64
		price        *float64
		wantDeadline func(computed int) int
		wantPrice    int
	}{
		{
			name:         "both overridden",
			deadline:     floatPtr(12.2),
			price:        floatPtr(1499.6),
			wantDeadline: func(int) int { return 13 },
			wantPrice:    1500,
		},
		{
			name:         "huge values are capped",
			deadline:     floatPtr(1e30),
			price:        floatPtr(1e30),
			wantDeadline: func(int) int { return rules.MaxFigure },
			wantPrice:    rules.MaxFigure,
		},
		{
			name:         "zero values keep computed figures",
			deadline:     floatPtr(0),
			price:        floatPtr(0),
			wantDeadline: func(computed int) int { return computed },
			wantPrice:    925,
		},
		{
			name:         "absent overrides keep computed figures",
			wantDeadline: func(computed int) int { return computed },
			wantPrice:    925,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{resp: types.GenerationResponse{
				ExplanationText:  "Texto",
				DeadlineOverride: tt.deadline,
				PriceOverride:    tt.price,
			}}
			a := newTestAnalyzer(t, gen, allowed())
			req := landingPageRequest()
			computed := rules.NewDefault().Analyze(req.ProjectInput, types.DefaultUserConfig())

			result, err := a.Analyze(context.Background(), uuid.New(), req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDeadline(computed.SuggestedDeadline), result.Deadline)
			require.NotNil(t, result.Price)
			assert.Equal(t, tt.wantPrice, *result.Price)
		})
	}
}

func TestAnalyze_HugeClientFiguresStayPositive(t *testing.T) {
	gen := &fakeGenerator{resp: types.GenerationResponse{ExplanationText: "Texto"}}
	a := newTestAnalyzer(t, gen, allowed())
	req := landingPageRequest()
	req.ClientDeadline = floatPtr(1e300)
	req.ClientBudget = floatPtr(1e300)

	result, err := a.Analyze(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, rules.MaxFigure, result.Deadline)
	require.NotNil(t, result.Price)
	assert.Equal(t, rules.MaxFigure, *result.Price)
}

func TestAnalyze_CustomTemplateUsesFinalFigures(t *testing.T) {
	gen := &fakeGenerator{resp: types.GenerationResponse{
		ExplanationText:   "Explicação",
		PertinentQuestion: "Qual o prazo ideal?",
		DeadlineOverride:  floatPtr(20),
	}}
	a := newTestAnalyzer(t, gen, allowed())
	req := landingPageRequest()
	req.UserConfig = &types.UserConfig{
		ProposalTemplate: "{TITULO_PROJETO} | {PRAZO} | {VALOR} | {DUVIDA_PERTINENTE} | {LINK_PORTFOLIO}",
		Links:            types.Links{Portfolio: "https://dev.example.com"},
	}

	result, err := a.Analyze(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, "Landing page para clínica | 20 dias | R$ 925 | Qual o prazo ideal? | https://dev.example.com", result.ProposalText)
}

func TestAnalyze_SanitizesGeneratedText(t *testing.T) {
	gen := &fakeGenerator{resp: types.GenerationResponse{
		ExplanationText:   "<p>Entrego <b>rápido</b> &amp; bem</p><script>alert(1)</script>",
		PertinentQuestion: "<i>Tem hospedagem?</i>",
	}}
	a := newTestAnalyzer(t, gen, allowed())
	req := landingPageRequest()
	req.UserConfig = &types.UserConfig{ProposalTemplate: "{TEXTO_EXPLICACAO}\n{DUVIDA_PERTINENTE}"}

	result, err := a.Analyze(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, "Entrego rápido & bem\nTem hospedagem?", result.ProposalText)
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		req   types.AnalyzeRequest
		field string
	}{
		{
			name:  "missing title",
			req:   types.AnalyzeRequest{ProjectInput: types.ProjectInput{Description: "algo"}},
			field: "Title",
		},
		{
			name:  "blank title",
			req:   types.AnalyzeRequest{ProjectInput: types.ProjectInput{Title: "   "}},
			field: "Title",
		},
		{
			name: "unknown role",
			req: types.AnalyzeRequest{
				ProjectInput: types.ProjectInput{Title: "Site"},
				UserConfig:   &types.UserConfig{Role: "astronaut"},
			},
			field: "userConfig.Role",
		},
		{
			name: "adjustment out of range",
			req: types.AnalyzeRequest{
				ProjectInput: types.ProjectInput{Title: "Site"},
				UserConfig:   &types.UserConfig{ValueAdjustment: -150},
			},
			field: "userConfig.ValueAdjustment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			checker := allowed()
			a := newTestAnalyzer(t, gen, checker)

			_, err := a.Analyze(context.Background(), uuid.New(), tt.req)
			require.Error(t, err)

			var valErr *ErrValidation
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Empty(t, gen.calls)
			assert.Empty(t, checker.logged)
		})
	}
}

func TestAnalyze_AccessDenied(t *testing.T) {
	gen := &fakeGenerator{}
	checker := &fakeChecker{decision: access.Decision{Allowed: false, Reason: access.ReasonLimitReached, Limit: 10}}
	a := newTestAnalyzer(t, gen, checker)

	_, err := a.Analyze(context.Background(), uuid.New(), landingPageRequest())
	require.Error(t, err)

	var denied *ErrAccessDenied
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, access.ReasonLimitReached, denied.Reason)
	assert.Equal(t, 10, denied.Limit)
	assert.Equal(t, CodeLimitReached, denied.Code())
	assert.Empty(t, gen.calls)
}

func TestAnalyze_AccessCheckError(t *testing.T) {
	checker := &fakeChecker{checkErr: errors.New("boom")}
	a := newTestAnalyzer(t, &fakeGenerator{}, checker)

	_, err := a.Analyze(context.Background(), uuid.New(), landingPageRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access check failed")
}

func TestAnalyze_GenerationFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
		kind llm.ErrorKind
	}{
		{
			name: "rate limited",
			gen:  &fakeGenerator{err: &llm.GenerationError{Kind: llm.KindRateLimited, Err: errors.New("quota")}},
			kind: llm.KindRateLimited,
		},
		{
			name: "unclassified failure",
			gen:  &fakeGenerator{err: errors.New("connection reset")},
			kind: llm.KindUpstream,
		},
		{
			name: "no generator configured",
			gen:  nil,
			kind: llm.KindConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := allowed()
			a := newTestAnalyzer(t, tt.gen, checker)

			_, err := a.Analyze(context.Background(), uuid.New(), landingPageRequest())
			require.Error(t, err)

			var genErr *llm.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, tt.kind, genErr.Kind)
			assert.Empty(t, checker.logged)
		})
	}
}

func TestAnalyze_UsageLogFailureIsNotFatal(t *testing.T) {
	gen := &fakeGenerator{resp: types.GenerationResponse{ExplanationText: "Texto"}}
	checker := allowed()
	checker.logErr = errors.New("insert failed")
	a := newTestAnalyzer(t, gen, checker)

	result, err := a.Analyze(context.Background(), uuid.New(), landingPageRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.ProposalText)
}

func TestAnalyze_ProgressEvents(t *testing.T) {
	var steps []string
	a := New(Options{
		Generator:  &fakeGenerator{resp: types.GenerationResponse{ExplanationText: "Texto"}},
		Access:     allowed(),
		OnProgress: func(e ProgressEvent) { steps = append(steps, e.Step) },
	})

	_, err := a.Analyze(context.Background(), uuid.New(), landingPageRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{StepValidate, StepAccess, StepRules, StepGenerate, StepAssemble, StepUsage}, steps)
}

func TestEvaluate(t *testing.T) {
	a := New(Options{})

	result, err := a.Evaluate(types.AnalyzeRequest{
		ProjectInput: types.ProjectInput{Title: "App", Description: "landing page simples"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.ComplexitySimple, result.Complexity)
	assert.Equal(t, "React + Node.js", result.RecommendedStack)
	assert.Equal(t, types.Viable, result.Viability)
	assert.Nil(t, result.SuggestedPrice)

	_, err = a.Evaluate(types.AnalyzeRequest{})
	var valErr *ErrValidation
	assert.ErrorAs(t, err, &valErr)
}

func TestSanitizeGenerated(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"texto simples", "texto simples"},
		{"  <b>negrito</b>  ", "negrito"},
		{"R$ 1.000 & cia", "R$ 1.000 & cia"},
		{"<a href=\"http://x\">link</a>", "link"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeGenerated(tt.in))
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
