package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/analysis"
	"github.com/jonathan/proposal-assistant/internal/observability"
	"github.com/jonathan/proposal-assistant/internal/rules"
	"github.com/jonathan/proposal-assistant/internal/schemas"
	"github.com/jonathan/proposal-assistant/internal/types"
	schemafiles "github.com/jonathan/proposal-assistant/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one project file",
	Long: `Runs the rules over a project JSON file (the same body the extension posts to /api/analyze)
and prints the classification and suggested figures. With --generate the proposal is drafted too,
which requires GEMINI_API_KEY.`,
	RunE: runAnalyze,
}

var (
	analyzeFile     string
	analyzeGenerate bool
	analyzeJSON     bool
	analyzeVerbose  bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to project JSON file (required)")
	analyzeCmd.Flags().BoolVar(&analyzeGenerate, "generate", false, "Draft the proposal text with the language model")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print each analysis step")

	if err := analyzeCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	engine, err := buildEngine(cfg.RulesFile)
	if err != nil {
		return err
	}

	req, err := loadProjectFile(analyzeFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !analyzeGenerate {
		return evaluateProject(out, engine, req, analyzeJSON)
	}

	generator, err := buildGenerator(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	return generateProposal(cmd.Context(), out, analysis.Options{
		Engine:    engine,
		Generator: generator,
		Logger:    logger,
	}, req, analyzeJSON, analyzeVerbose)
}

// evaluateProject runs the rules only and prints the result.
func evaluateProject(out io.Writer, engine *rules.Engine, req types.AnalyzeRequest, asJSON bool) error {
	result, err := analysis.New(analysis.Options{Engine: engine}).Evaluate(req)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(out, result)
	}

	printer := observability.NewPrinter(out)
	printer.PrintClassification(engine.Classify(req.Description, req.StackMentioned))
	printer.PrintAnalysis(result)
	return nil
}

// generateProposal runs the full analysis as an anonymous local user.
func generateProposal(ctx context.Context, out io.Writer, opts analysis.Options, req types.AnalyzeRequest, asJSON, verbose bool) error {
	printer := observability.NewPrinter(out)
	if verbose && !asJSON {
		opts.OnProgress = func(event analysis.ProgressEvent) {
			printer.PrintStep(event.Step, event.Message)
		}
	}

	result, err := analysis.New(opts).Analyze(ctx, uuid.Nil, req)
	if err != nil {
		return err
	}

	if asJSON {
		raw, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		// Output validation is a safety check, not a requirement
		if err := schemas.ValidateEmbedded(schemafiles.ProposalResult, string(raw)); err != nil && opts.Logger != nil {
			opts.Logger.Warn("proposal result does not match schema", zap.Error(err))
		}
		return writeJSON(out, result)
	}

	printer.PrintProposal(result)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
