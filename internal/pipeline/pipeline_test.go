package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/promptlens/promptlens/internal/model"
)

// offlineConfig returns a configuration that exercises the full pipeline
// without any external providers
func offlineConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Text.Provider = "offline"
	cfg.Image.Provider = "offline"
	cfg.Concurrency.ProviderRate = 1000
	cfg.Concurrency.ProviderBurst = 100
	return cfg
}

func TestAnalyze_SegmentsPrompt(t *testing.T) {
	p, err := NewPipeline(offlineConfig())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	analysis, err := p.Analyze(context.Background(), "a cyberpunk city, rainy night")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if analysis.Prompt != "a cyberpunk city, rainy night" {
		t.Errorf("Unexpected prompt: %q", analysis.Prompt)
	}
	if len(analysis.Segments) != 2 {
		t.Errorf("Expected 2 segments, got %d", len(analysis.Segments))
	}
}

func TestAnalyze_RejectsEmptyPrompt(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	if _, err := p.Analyze(context.Background(), ""); err == nil {
		t.Error("Expected error for empty prompt")
	}
}

func TestAnalyze_RejectsOverlongPrompt(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	long := strings.Repeat("a", model.MaxPromptLength+1)
	if _, err := p.Analyze(context.Background(), long); err == nil {
		t.Error("Expected error for overlong prompt")
	}
}

func TestAnalyze_LengthCountsRunesNotBytes(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	// 3000 runes but 9000 bytes; must be accepted
	prompt := strings.Repeat("界", 3000)
	if _, err := p.Analyze(context.Background(), prompt); err != nil {
		t.Errorf("Expected no error for %d-rune prompt, got %v", 3000, err)
	}

	tooLong := strings.Repeat("界", model.MaxPromptLength+1)
	if _, err := p.Analyze(context.Background(), tooLong); err == nil {
		t.Error("Expected error for prompt over the rune limit")
	}
}

func TestAnalyze_CachedResultStable(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())
	ctx := context.Background()

	first, err := p.Analyze(ctx, "a red fox in the snow")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := p.Analyze(ctx, "a red fox in the snow")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(first.Segments) != len(second.Segments) {
		t.Fatalf("Cached analysis differs: %d vs %d segments", len(first.Segments), len(second.Segments))
	}
	for i := range first.Segments {
		if first.Segments[i].ID != second.Segments[i].ID {
			t.Errorf("Expected cached segment IDs to be stable, got %s vs %s",
				first.Segments[i].ID, second.Segments[i].ID)
		}
	}
}

func TestAnalyze_CacheDisabled(t *testing.T) {
	cfg := offlineConfig()
	cfg.Cache.Enabled = false

	p, _ := NewPipeline(cfg)
	ctx := context.Background()

	first, _ := p.Analyze(ctx, "a red fox in the snow")
	second, _ := p.Analyze(ctx, "a red fox in the snow")

	// Without the cache each run assigns fresh segment IDs
	if first.Segments[0].ID == second.Segments[0].ID {
		t.Error("Expected fresh segment IDs with cache disabled")
	}
}

func TestGenerateText_MapsSentences(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	result, err := p.GenerateText(context.Background(), "a red fox in the snow")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.GeneratedText == "" {
		t.Fatal("Expected generated text")
	}
	if len(result.SentenceMappings) == 0 {
		t.Fatal("Expected sentence mappings")
	}
	for _, m := range result.SentenceMappings {
		if m.SentenceText == "" {
			t.Error("Expected non-empty sentence text")
		}
	}
}

func TestGenerateImage_HeatmapAndContributions(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	result, err := p.GenerateImage(context.Background(), "a red fox in the snow, watercolor style")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.ImageURL == "" {
		t.Error("Expected image URL")
	}
	if len(result.Heatmap) != len(result.Segments) {
		t.Errorf("Expected one region per segment, got %d regions for %d segments",
			len(result.Heatmap), len(result.Segments))
	}

	total := 0.0
	for _, v := range result.Contributions {
		total += v
	}
	if total < 0.99 || total > 1.01 {
		t.Errorf("Expected contributions to sum to ~1, got %v", total)
	}
}

func TestExplainText_PlainText(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())
	segments := []model.Segment{
		{ID: "s1", Text: "a red fox", Importance: 0.9},
	}

	explanation, err := p.ExplainText("The red fox runs. The fox rests.", segments)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(explanation.SentenceMappings) != 2 {
		t.Errorf("Expected 2 sentence mappings, got %d", len(explanation.SentenceMappings))
	}
}

func TestExplainText_StripsHTML(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())
	segments := []model.Segment{
		{ID: "s1", Text: "a red fox", Importance: 0.9},
	}

	html := "<html><body><p>The red fox runs.</p><script>var x;</script></body></html>"
	explanation, err := p.ExplainText(html, segments)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(explanation.SentenceMappings) != 1 {
		t.Fatalf("Expected 1 sentence mapping, got %d", len(explanation.SentenceMappings))
	}
	if strings.Contains(explanation.SentenceMappings[0].SentenceText, "<") {
		t.Errorf("Expected markup stripped, got %q", explanation.SentenceMappings[0].SentenceText)
	}
}

func TestExplainImage_Complete(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())
	segments := []model.Segment{
		{ID: "s1", Text: "a red fox", Category: model.CategorySubject, Confidence: 0.75, Importance: 0.9},
	}

	explanation := p.ExplainImage(segments)
	if len(explanation.Heatmap) != 1 {
		t.Errorf("Expected 1 region, got %d", len(explanation.Heatmap))
	}
	if explanation.AttentionSummary == "" {
		t.Error("Expected attention summary")
	}
}

func TestWhatIf_SelfComparison(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	report, err := p.WhatIf(context.Background(), model.WhatIfRequest{
		OriginalPrompt: "a cyberpunk city, rainy night",
		ModifiedPrompt: "a cyberpunk city, rainy night",
		GenerationType: model.GenerationText,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, c := range report.Changes {
		if c.ChangeType != model.ChangeUnchanged {
			t.Errorf("Expected all changes unchanged in self-comparison, got %s", c.ChangeType)
		}
	}
	if report.Impact.ChangeMagnitude != model.MagnitudeMinimal {
		t.Errorf("Expected minimal magnitude, got %s", report.Impact.ChangeMagnitude)
	}
	if report.Metrics.TextSimilarity != 1.0 {
		t.Errorf("Expected identical outputs, similarity %v", report.Metrics.TextSimilarity)
	}
}

func TestWhatIf_EditedPrompt(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	report, err := p.WhatIf(context.Background(), model.WhatIfRequest{
		OriginalPrompt: "a cyberpunk city, rainy night",
		ModifiedPrompt: "a cyberpunk city, golden sunset",
		GenerationType: model.GenerationText,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(report.OriginalSegments) == 0 || len(report.ModifiedSegments) == 0 {
		t.Fatal("Expected both segment sets populated")
	}
	if len(report.Changes) == 0 {
		t.Fatal("Expected detected changes")
	}

	changed := report.Impact.SegmentsAdded + report.Impact.SegmentsRemoved + report.Impact.SegmentsModified
	if changed == 0 {
		t.Error("Expected at least one changed segment")
	}
	if report.OriginalOutput == "" || report.ModifiedOutput == "" {
		t.Error("Expected both outputs generated")
	}
}

func TestWhatIf_ImageGeneration(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	report, err := p.WhatIf(context.Background(), model.WhatIfRequest{
		OriginalPrompt: "a red fox in the snow",
		ModifiedPrompt: "a red wolf in the snow",
		GenerationType: model.GenerationImage,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(report.OriginalOutput, "placeholder") {
		t.Errorf("Expected placeholder image URL, got %q", report.OriginalOutput)
	}
}

func TestWhatIf_CallerSuppliedSegments(t *testing.T) {
	p, _ := NewPipeline(offlineConfig())

	supplied := []model.Segment{
		{ID: "fixed", Text: "a cyberpunk city", Importance: 0.9},
	}
	report, err := p.WhatIf(context.Background(), model.WhatIfRequest{
		OriginalPrompt:   "a cyberpunk city",
		ModifiedPrompt:   "a cyberpunk city",
		OriginalSegments: supplied,
		GenerationType:   model.GenerationText,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(report.OriginalSegments) != 1 || report.OriginalSegments[0].ID != "fixed" {
		t.Errorf("Expected caller-supplied segments to be used, got %+v", report.OriginalSegments)
	}
}
