package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/proposal-assistant/internal/analysis"
	"github.com/jonathan/proposal-assistant/internal/observability"
	"github.com/jonathan/proposal-assistant/internal/rules"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every project file in a directory",
	Long: `Runs the rules over every *.json project file in a directory concurrently and prints
one table row per file. Files that fail to load or validate are reported, not fatal.`,
	RunE: runBatch,
}

var (
	batchDir         string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of project JSON files (required)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "Number of files analyzed at once")

	if err := batchCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	engine, err := buildEngine(cfg.RulesFile)
	if err != nil {
		return err
	}

	rows, err := analyzeDir(cmd.Context(), engine, batchDir, batchConcurrency)
	if err != nil {
		return err
	}
	return reportBatch(cmd.OutOrStdout(), rows)
}

// analyzeDir evaluates each project file in dir. Per-file failures are
// recorded in the row; only an unreadable directory fails the batch.
func analyzeDir(ctx context.Context, engine *rules.Engine, dir string, concurrency int) ([]observability.BatchRow, error) {
	files, err := projectFiles(dir)
	if err != nil {
		return nil, err
	}

	analyzer := analysis.New(analysis.Options{Engine: engine})
	rows := make([]observability.BatchRow, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i].File = filepath.Base(file)
			req, err := loadProjectFile(file)
			if err != nil {
				rows[i].Err = err
				return nil
			}
			rows[i].Result, rows[i].Err = analyzer.Evaluate(req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func projectFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no project files found in %s", dir)
	}
	return files, nil
}

func reportBatch(out io.Writer, rows []observability.BatchRow) error {
	observability.NewPrinter(out).PrintBatch(rows)

	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
		}
	}
	if failed == len(rows) {
		return fmt.Errorf("all %d project files failed", failed)
	}
	return nil
}
