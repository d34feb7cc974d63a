package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/promptlens/promptlens/internal/model"
	"github.com/promptlens/promptlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	genType          string
	genOutJSON       string
	genTimeout       time.Duration
	genTextProvider  string
	genTextModel     string
	genImageProvider string
	genImageModel    string
	genWidth         int
	genHeight        int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate an output and explain which prompt parts produced it",
	Long: `Generate produces a text or image output for a prompt and attaches
its attribution:
- Text: every generated sentence is mapped to the prompt segments it draws on
- Image: a synthetic attention heatmap places each segment's influence

Without provider credentials the offline provider is used, which
produces deterministic placeholder output suitable for inspecting the
attribution machinery.

Example:
  promptlens generate "a short story about a lighthouse keeper"
  promptlens generate "a cyberpunk city, rainy night" --type image
  promptlens generate "explain quantum computing" --text-provider openai --json out.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genType, "type", "text", "generation type (text or image)")
	generateCmd.Flags().StringVar(&genOutJSON, "json", "", "output JSON path (optional)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 2*time.Minute, "overall generation timeout")
	generateCmd.Flags().StringVar(&genTextProvider, "text-provider", "", "text provider (openai, offline)")
	generateCmd.Flags().StringVar(&genTextModel, "text-model", "", "text model name")
	generateCmd.Flags().StringVar(&genImageProvider, "image-provider", "", "image provider (replicate, offline)")
	generateCmd.Flags().StringVar(&genImageModel, "image-model", "", "image model name")
	generateCmd.Flags().IntVar(&genWidth, "width", 0, "image width (default from config)")
	generateCmd.Flags().IntVar(&genHeight, "height", 0, "image height (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	cfg := buildConfig()
	applyProviderFlags(cfg)

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	switch genType {
	case "image":
		result, err := p.GenerateImage(ctx, prompt)
		if err != nil {
			return fmt.Errorf("generate failed: %w", err)
		}
		if genOutJSON != "" {
			if err := renderer.RenderJSON(result, genOutJSON); err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", genOutJSON)
			}
		}
		fmt.Printf("\nImage: %s (%dx%d)\n", result.ImageURL, result.Width, result.Height)
		fmt.Printf("Heatmap regions: %d\n\n", len(result.Heatmap))
		for _, seg := range result.Segments {
			fmt.Printf("  [%s] %q contributes %.1f%%\n",
				seg.Category, seg.Text, result.Contributions[seg.ID]*100)
		}

	case "text":
		result, err := p.GenerateText(ctx, prompt)
		if err != nil {
			return fmt.Errorf("generate failed: %w", err)
		}
		if genOutJSON != "" {
			if err := renderer.RenderJSON(result, genOutJSON); err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", genOutJSON)
			}
		}
		fmt.Printf("\n%s\n\n", result.GeneratedText)
		fmt.Printf("Sentences mapped: %d\n", len(result.SentenceMappings))
		if verbose {
			for _, m := range result.SentenceMappings {
				fmt.Fprintf(os.Stderr, "  sentence %d draws on %d segments\n",
					m.SentenceIndex, len(m.ContributingSegments))
			}
		}

	default:
		return fmt.Errorf("unknown generation type %q (want text or image)", genType)
	}

	return nil
}

// applyProviderFlags overlays provider CLI flags and environment credentials
// onto the configuration
func applyProviderFlags(cfg *model.Config) {
	if genTextProvider != "" {
		cfg.Text.Provider = genTextProvider
	}
	if genTextModel != "" {
		cfg.Text.Model = genTextModel
	}
	if genImageProvider != "" {
		cfg.Image.Provider = genImageProvider
	}
	if genImageModel != "" {
		cfg.Image.Model = genImageModel
	}
	if genWidth > 0 {
		cfg.Image.Width = genWidth
	}
	if genHeight > 0 {
		cfg.Image.Height = genHeight
	}

	// API credentials come from the environment, never from flags or files
	cfg.Text.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Image.APIToken = os.Getenv("REPLICATE_API_TOKEN")
}
