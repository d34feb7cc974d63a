package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/promptlens/promptlens/internal/model"
)

// Renderer writes reports to files and prints summaries to stdout
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes any report as indented JSON to the given path
func (r *Renderer) RenderJSON(report interface{}, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderAnalysisMarkdown writes a segmentation report as Markdown
func (r *Renderer) RenderAnalysisMarkdown(analysis *model.Analysis, path string) error {
	var b strings.Builder

	b.WriteString("# Prompt Analysis\n\n")
	fmt.Fprintf(&b, "**Prompt:** %s\n\n", analysis.Prompt)
	fmt.Fprintf(&b, "**Analyzed:** %s\n\n", analysis.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Segments\n\n")
	b.WriteString("| Text | Category | Confidence | Importance |\n")
	b.WriteString("|------|----------|-----------:|-----------:|\n")
	for _, seg := range analysis.Segments {
		fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f |\n",
			escapeTableCell(seg.Text), seg.Category, seg.Confidence, seg.Importance)
	}
	b.WriteString("\n")

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by promptlens\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderWhatIfMarkdown writes a what-if comparison report as Markdown
func (r *Renderer) RenderWhatIfMarkdown(report *model.WhatIfReport, path string) error {
	var b strings.Builder

	b.WriteString("# What-If Comparison\n\n")
	fmt.Fprintf(&b, "**Original:** %s\n\n", report.OriginalPrompt)
	fmt.Fprintf(&b, "**Modified:** %s\n\n", report.ModifiedPrompt)
	fmt.Fprintf(&b, "**Generation type:** %s\n\n", report.GenerationType)

	b.WriteString("## Segment Changes\n\n")
	b.WriteString("| Change | Original | Modified | Impact |\n")
	b.WriteString("|--------|----------|----------|-------:|\n")
	for _, change := range report.Changes {
		fmt.Fprintf(&b, "| %s | %s | %s | %.3f |\n",
			change.ChangeType, escapeTableCell(change.OriginalText),
			escapeTableCell(change.ModifiedText), change.ImpactScore)
	}
	b.WriteString("\n")

	b.WriteString("## Impact\n\n")
	fmt.Fprintf(&b, "- Segments analyzed: %d\n", report.Impact.TotalSegments)
	fmt.Fprintf(&b, "- Added: %d, Removed: %d, Modified: %d, Unchanged: %d\n",
		report.Impact.SegmentsAdded, report.Impact.SegmentsRemoved,
		report.Impact.SegmentsModified, report.Impact.SegmentsKept)
	fmt.Fprintf(&b, "- Total impact: %.3f (%s)\n\n", report.Impact.TotalImpact, report.Impact.ChangeMagnitude)

	b.WriteString("## Output Comparison\n\n")
	fmt.Fprintf(&b, "- Text similarity: %.3f\n", report.Metrics.TextSimilarity)
	fmt.Fprintf(&b, "- Word overlap: %.3f\n", report.Metrics.WordOverlap)
	fmt.Fprintf(&b, "- Input/output correlation: %.3f\n", report.Metrics.InputOutputCorrelation)
	fmt.Fprintf(&b, "- Divergence: %.3f\n", report.Metrics.DivergenceScore)

	if r.includeFooter {
		b.WriteString("\n---\n\nGenerated by promptlens\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderAnalysisSummary prints a short segmentation summary to stdout
func (r *Renderer) RenderAnalysisSummary(analysis *model.Analysis) {
	fmt.Printf("\nPrompt: %s\n", analysis.Prompt)
	fmt.Printf("Segments: %d\n\n", len(analysis.Segments))
	for _, seg := range analysis.Segments {
		fmt.Printf("  [%s] %q (importance %.2f, confidence %.2f)\n",
			seg.Category, seg.Text, seg.Importance, seg.Confidence)
	}
}

// RenderWhatIfSummary prints a short comparison summary to stdout
func (r *Renderer) RenderWhatIfSummary(report *model.WhatIfReport) {
	fmt.Printf("\nChange magnitude: %s (total impact %.3f)\n",
		report.Impact.ChangeMagnitude, report.Impact.TotalImpact)
	fmt.Printf("Added %d, removed %d, modified %d, unchanged %d of %d segments\n",
		report.Impact.SegmentsAdded, report.Impact.SegmentsRemoved,
		report.Impact.SegmentsModified, report.Impact.SegmentsKept,
		report.Impact.TotalSegments)
	fmt.Printf("Output similarity: %.3f\n", report.Metrics.TextSimilarity)
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
