package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/promptlens/promptlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	analyzeOutJSON  string
	analyzeOutMD    string
	analyzeMinWords int
	analyzeNoCache  bool
	analyzeNoFooter bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <prompt>",
	Short: "Segment a prompt and score each part",
	Long: `Analyze breaks a prompt into meaningful segments:
- Split on commas, semicolons, colons, and connector words
- Classify each segment (subject, action, style, context, modifier)
- Score classification confidence and relative importance
- Merge fragments too short to stand alone

Example:
  promptlens analyze "a cyberpunk city at night, neon lights, rainy streets"
  promptlens analyze "a red fox in the snow" --json analysis.json --md analysis.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeOutJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&analyzeOutMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().IntVar(&analyzeMinWords, "min-words", 0, "minimum words per segment before merging (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "disable the analysis cache")
	analyzeCmd.Flags().BoolVar(&analyzeNoFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := buildConfig()
	if analyzeMinWords > 0 {
		cfg.Segmentation.MinWords = analyzeMinWords
	}
	cfg.Cache.Enabled = !analyzeNoCache
	cfg.Output.IncludeFooter = !analyzeNoFooter

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	analysis, err := p.Analyze(ctx, prompt)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if analyzeOutJSON != "" {
		if err := renderer.RenderJSON(analysis, analyzeOutJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", analyzeOutJSON)
		}
	}
	if analyzeOutMD != "" {
		if err := renderer.RenderAnalysisMarkdown(analysis, analyzeOutMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", analyzeOutMD)
		}
	}

	renderer.RenderAnalysisSummary(analysis)
	return nil
}
