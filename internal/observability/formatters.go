// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonathan/proposal-assistant/internal/db"
	"github.com/jonathan/proposal-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// titleWidth caps project titles in tables
	titleWidth = 40
)

// Printer handles formatted output for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", text.Pad(title, inner, ' '))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = text.Snip(line, inner, "...")
		fmt.Fprintf(p.out, "│ %s │\n", text.Pad(line, inner, ' '))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStep outputs one progress line of an analysis.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step, message string) {
	fmt.Fprintf(p.out, "Step %-8s %s\n", step+":", message)
}

// PrintClassification outputs the complexity tier, scores and reasons.
func (p *Printer) PrintClassification(c types.Classification) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Complexity: %s\n", c.Complexity))
	scores := make([]string, 0, len(types.Complexities))
	for _, tier := range types.Complexities {
		scores = append(scores, fmt.Sprintf("%s=%d", tier, c.Scores[tier]))
	}
	sb.WriteString(fmt.Sprintf("Scores:     %s\n", strings.Join(scores, " ")))

	if len(c.DetectedStacks) > 0 {
		sb.WriteString(fmt.Sprintf("Stacks:     %s\n", strings.Join(c.DetectedStacks, ", ")))
	}

	if len(c.Reasons) > 0 {
		sb.WriteString("\nReasons:\n")
		for _, reason := range c.Reasons {
			sb.WriteString(fmt.Sprintf("  • %s\n", reason))
		}
	}

	if risks := riskNames(c.Risks); len(risks) > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠ Risks: %s\n", strings.Join(risks, ", ")))
	}

	p.printBox("CLASSIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a human-readable summary of the rules result.
func (p *Printer) PrintAnalysis(result types.AnalysisResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Complexity: %s\n", result.Complexity))
	sb.WriteString(fmt.Sprintf("Viability:  %s\n", result.Viability))
	sb.WriteString(fmt.Sprintf("Stack:      %s\n", result.RecommendedStack))
	sb.WriteString(fmt.Sprintf("Knowledge:  %s\n", result.KnowledgeLevel))
	sb.WriteString(fmt.Sprintf("Deadline:   %d days\n", result.SuggestedDeadline))
	sb.WriteString(fmt.Sprintf("Price:      %s\n", formatPrice(result.SuggestedPrice)))

	if len(result.Reasons) > 0 {
		sb.WriteString("\nReasons:\n")
		count := min(len(result.Reasons), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Reasons[i]))
		}
	}

	p.printBox("RULES ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProposal outputs the final result. The proposal text is printed
// unboxed so it can be copied as is.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProposal(result types.ProposalResult) {
	summary := fmt.Sprintf("Complexity: %s\nViability:  %s\nDeadline:   %d days\nPrice:      %s",
		result.Complexity, result.Viability, result.Deadline, formatPrice(result.Price))
	p.printBox("PROPOSAL", summary)
	fmt.Fprintf(p.out, "\n%s\n", result.ProposalText)
}

// BatchRow is one line of a batch report.
type BatchRow struct {
	File   string
	Result types.AnalysisResult
	Err    error
}

// PrintBatch renders batch results as a table, failures included.
func (p *Printer) PrintBatch(rows []BatchRow) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"File", "Complexity", "Viability", "Stack", "Deadline", "Price"})

	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
			t.AppendRow(table.Row{row.File, "error", text.Snip(row.Err.Error(), titleWidth, "..."), "", "", ""})
			continue
		}
		r := row.Result
		t.AppendRow(table.Row{row.File, r.Complexity, r.Viability, r.RecommendedStack, r.SuggestedDeadline, formatPrice(r.SuggestedPrice)})
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d projects", len(rows)), "", fmt.Sprintf("%d failed", failed), "", "", ""})
	t.Render()
}

// PrintUsage renders a user's usage log as a table.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintUsage(logs []db.UsageLog, remaining string) {
	if len(logs) == 0 {
		fmt.Fprintln(p.out, "No usage recorded.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"When", "Project", "Deadline", "Price"})

	for _, l := range logs {
		deadline := "-"
		if l.ProposalDeadline != nil {
			deadline = fmt.Sprintf("%d", *l.ProposalDeadline)
		}
		t.AppendRow(table.Row{
			l.CreatedAt.Format("2006-01-02 15:04"),
			text.Snip(l.ProjectTitle, titleWidth, "..."),
			deadline,
			formatPrice(l.ProposalValue),
		})
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d analyses", len(logs)), remaining, "", ""})
	t.Render()
}

func formatPrice(price *int) string {
	if price == nil || *price == 0 {
		return "a combinar"
	}
	return fmt.Sprintf("R$ %d", *price)
}

func riskNames(r types.RiskIndicators) []string {
	var names []string
	if r.Urgency {
		names = append(names, "urgency")
	}
	if r.Ambiguity {
		names = append(names, "ambiguity")
	}
	if r.HiddenComplexity {
		names = append(names, "hidden complexity")
	}
	if r.UnrealisticBudget {
		names = append(names, "unrealistic budget")
	}
	return names
}
