package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/promptlens/promptlens/internal/model"
	"github.com/promptlens/promptlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	explainType    string
	explainOutJSON string
)

// explainCmd represents the explain command
var explainCmd = &cobra.Command{
	Use:   "explain <analysis.json> [output-file]",
	Short: "Attribute an existing output to a previously analyzed prompt",
	Long: `Explain takes a saved analysis (from 'promptlens analyze --json') and
attributes an output to its segments after the fact:
- Text: reads the generated text from output-file and scores each
  segment's contribution and coverage (HTML input is reduced to its
  visible text first)
- Image: synthesizes the heatmap explanation from the segments alone

Example:
  promptlens analyze "a red fox in the snow" --json analysis.json
  promptlens explain analysis.json generated.txt
  promptlens explain analysis.json --type image --json explanation.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().StringVar(&explainType, "type", "text", "explanation type (text or image)")
	explainCmd.Flags().StringVar(&explainOutJSON, "json", "", "output JSON path (optional)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	analysis, err := loadAnalysis(args[0])
	if err != nil {
		return err
	}

	cfg := buildConfig()
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	switch explainType {
	case "image":
		explanation := p.ExplainImage(analysis.Segments)
		if explainOutJSON != "" {
			if err := renderer.RenderJSON(explanation, explainOutJSON); err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
		}
		fmt.Printf("\n%s\n\n", explanation.AttentionSummary)
		fmt.Printf("Regions: %d, confidence %.2f\n", len(explanation.Heatmap), explanation.ExplanationConfidence)

	case "text":
		if len(args) < 2 {
			return fmt.Errorf("text explanation requires an output file argument")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read output file: %w", err)
		}

		explanation, err := p.ExplainText(string(data), analysis.Segments)
		if err != nil {
			return fmt.Errorf("explain failed: %w", err)
		}
		if explainOutJSON != "" {
			if err := renderer.RenderJSON(explanation, explainOutJSON); err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
		}
		fmt.Printf("\nSentences mapped: %d, confidence %.2f\n\n",
			len(explanation.SentenceMappings), explanation.ExplanationConfidence)
		for _, seg := range analysis.Segments {
			fmt.Printf("  [%s] %q importance %.2f\n",
				seg.Category, seg.Text, explanation.OverallSegmentImportance[seg.ID])
		}

	default:
		return fmt.Errorf("unknown explanation type %q (want text or image)", explainType)
	}

	return nil
}

// loadAnalysis reads a saved analysis report from disk
func loadAnalysis(path string) (*model.Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}

	var analysis model.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	if len(analysis.Segments) == 0 {
		return nil, fmt.Errorf("analysis %s contains no segments", path)
	}
	return &analysis, nil
}
