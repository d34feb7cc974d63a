package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/promptlens/promptlens/internal/model"
	"github.com/promptlens/promptlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	whatifType    string
	whatifOutJSON string
	whatifOutMD   string
	whatifTimeout time.Duration
)

// whatifCmd represents the whatif command
var whatifCmd = &cobra.Command{
	Use:   "whatif <original-prompt> <modified-prompt>",
	Short: "Compare two prompt versions and estimate the impact of the edit",
	Long: `Whatif diffs two prompt versions at the segment level:
- Classify every segment as added, removed, modified, or unchanged
- Weight each change by the importance of the segment it touches
- Generate both outputs and compare them
- Report whether the output drift tracks the input drift

Example:
  promptlens whatif "a cat on a red sofa" "a dog on a red sofa"
  promptlens whatif "a cat" "a dog" --type image --json report.json`,
	Args: cobra.ExactArgs(2),
	RunE: runWhatIf,
}

func init() {
	rootCmd.AddCommand(whatifCmd)

	whatifCmd.Flags().StringVar(&whatifType, "type", "text", "generation type (text or image)")
	whatifCmd.Flags().StringVar(&whatifOutJSON, "json", "", "output JSON path (optional)")
	whatifCmd.Flags().StringVar(&whatifOutMD, "md", "", "output Markdown path (optional)")
	whatifCmd.Flags().DurationVar(&whatifTimeout, "timeout", 4*time.Minute, "overall comparison timeout")
	whatifCmd.Flags().StringVar(&genTextProvider, "text-provider", "", "text provider (openai, offline)")
	whatifCmd.Flags().StringVar(&genTextModel, "text-model", "", "text model name")
	whatifCmd.Flags().StringVar(&genImageProvider, "image-provider", "", "image provider (replicate, offline)")
	whatifCmd.Flags().StringVar(&genImageModel, "image-model", "", "image model name")
}

func runWhatIf(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), whatifTimeout)
	defer cancel()

	cfg := buildConfig()
	applyProviderFlags(cfg)

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Comparing prompts (%s generation)\n\n", whatifType)
	}

	report, err := p.WhatIf(ctx, model.WhatIfRequest{
		OriginalPrompt: args[0],
		ModifiedPrompt: args[1],
		GenerationType: model.GenerationType(whatifType),
	})
	if err != nil {
		return fmt.Errorf("whatif failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if whatifOutJSON != "" {
		if err := renderer.RenderJSON(report, whatifOutJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", whatifOutJSON)
		}
	}
	if whatifOutMD != "" {
		if err := renderer.RenderWhatIfMarkdown(report, whatifOutMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", whatifOutMD)
		}
	}

	renderer.RenderWhatIfSummary(report)
	return nil
}
