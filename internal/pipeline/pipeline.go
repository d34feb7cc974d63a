// Package pipeline wires the segmentation, attribution, and generation
// layers into the operations a caller consumes.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/promptlens/promptlens/internal/attribution"
	"github.com/promptlens/promptlens/internal/cache"
	"github.com/promptlens/promptlens/internal/heatmap"
	"github.com/promptlens/promptlens/internal/htmltext"
	"github.com/promptlens/promptlens/internal/model"
	"github.com/promptlens/promptlens/internal/provider"
	"github.com/promptlens/promptlens/internal/segment"
	"github.com/promptlens/promptlens/internal/whatif"
	"github.com/promptlens/promptlens/internal/worker"
)

// Pipeline orchestrates the complete analysis process
type Pipeline struct {
	segmenter     *segment.Segmenter
	synthesizer   *heatmap.Synthesizer
	detector      *whatif.Detector
	textProvider  provider.TextProvider
	imageProvider provider.ImageProvider
	analysisCache cache.Cache // nil when caching is disabled
	limiter       *worker.Limiter
	config        *model.Config
}

// NewPipeline creates a pipeline from the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	textProvider, err := provider.NewTextProvider(cfg.Text)
	if err != nil {
		return nil, fmt.Errorf("text provider: %w", err)
	}

	imageProvider, err := provider.NewImageProvider(cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("image provider: %w", err)
	}

	var analysisCache cache.Cache
	if cfg.Cache.Enabled {
		analysisCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	return &Pipeline{
		segmenter:     segment.NewSegmenter(cfg.Segmentation.MinWords),
		synthesizer:   heatmap.NewSynthesizer(nil),
		detector:      whatif.NewDetector(cfg.Matching.ConsiderThreshold, cfg.Matching.ModifiedThreshold),
		textProvider:  textProvider,
		imageProvider: imageProvider,
		analysisCache: analysisCache,
		limiter:       worker.NewLimiter(cfg.Concurrency.ProviderRate, cfg.Concurrency.ProviderBurst),
		config:        cfg,
	}, nil
}

// Analyze segments and scores a prompt. Results are cached by prompt hash
// when caching is enabled.
func (p *Pipeline) Analyze(ctx context.Context, prompt string) (*model.Analysis, error) {
	if n := utf8.RuneCountInString(prompt); n < model.MinPromptLength || n > model.MaxPromptLength {
		return nil, fmt.Errorf("prompt length must be between %d and %d characters, got %d",
			model.MinPromptLength, model.MaxPromptLength, n)
	}

	key := cache.Key(prompt)
	if p.analysisCache != nil {
		if data, found := p.analysisCache.Get(key); found {
			var cached model.Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// Corrupt entry, drop it and re-analyze
			_ = p.analysisCache.Delete(key)
		}
	}

	analysis := &model.Analysis{
		Prompt:     prompt,
		Segments:   p.segmenter.Segment(prompt),
		AnalyzedAt: time.Now().UTC(),
	}

	if p.analysisCache != nil {
		if data, err := json.Marshal(analysis); err == nil {
			_ = p.analysisCache.Set(key, data, p.config.Cache.TTL)
		}
	}

	return analysis, nil
}

// GenerateText generates text for a prompt and maps every sentence of the
// output back to the prompt's segments
func (p *Pipeline) GenerateText(ctx context.Context, prompt string) (*model.TextGeneration, error) {
	analysis, err := p.Analyze(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if err := p.limiter.Wait(ctx, p.textProvider.Name()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := p.textProvider.GenerateText(ctx, provider.TextRequest{
		Prompt:      prompt,
		Segments:    analysis.Segments,
		MaxTokens:   p.config.Text.MaxTokens,
		Temperature: p.config.Text.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate text: %w", err)
	}

	return &model.TextGeneration{
		Prompt:           prompt,
		Segments:         analysis.Segments,
		GeneratedText:    result.Content,
		SentenceMappings: attribution.MapSentences(result.Content, analysis.Segments),
		Metadata:         result.Metadata,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// GenerateImage generates an image for a prompt and synthesizes its heatmap
// attribution
func (p *Pipeline) GenerateImage(ctx context.Context, prompt string) (*model.ImageGeneration, error) {
	analysis, err := p.Analyze(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if err := p.limiter.Wait(ctx, p.imageProvider.Name()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := p.imageProvider.GenerateImage(ctx, provider.ImageRequest{
		Prompt:         prompt,
		Segments:       analysis.Segments,
		Width:          p.config.Image.Width,
		Height:         p.config.Image.Height,
		InferenceSteps: p.config.Image.InferenceSteps,
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	return &model.ImageGeneration{
		Prompt:        prompt,
		Segments:      analysis.Segments,
		ImageURL:      result.ImageURL,
		Width:         result.Width,
		Height:        result.Height,
		Heatmap:       p.synthesizer.Regions(analysis.Segments),
		Contributions: heatmap.Contributions(analysis.Segments),
		Metadata:      result.Metadata,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

// ExplainText attributes an existing generated text to the given segments.
// HTML-shaped content is reduced to its visible text first.
func (p *Pipeline) ExplainText(generated string, segments []model.Segment) (*model.TextExplanation, error) {
	if htmltext.IsHTML(generated) {
		text, err := htmltext.VisibleText(generated)
		if err != nil {
			return nil, fmt.Errorf("extract visible text: %w", err)
		}
		generated = text
	}

	return attribution.Explain(generated, segments), nil
}

// ExplainImage synthesizes the heatmap explanation for the given segments
func (p *Pipeline) ExplainImage(segments []model.Segment) *model.ImageExplanation {
	return p.synthesizer.Explain(segments)
}

// WhatIf compares an original prompt against a modified version: it
// re-segments the modified prompt, diffs the segment sets, generates both
// outputs concurrently, and aggregates impact and comparison metrics.
func (p *Pipeline) WhatIf(ctx context.Context, req model.WhatIfRequest) (*model.WhatIfReport, error) {
	originalSegments := req.OriginalSegments
	if len(originalSegments) == 0 {
		originalAnalysis, err := p.Analyze(ctx, req.OriginalPrompt)
		if err != nil {
			return nil, fmt.Errorf("analyze original: %w", err)
		}
		originalSegments = originalAnalysis.Segments
	}

	modifiedAnalysis, err := p.Analyze(ctx, req.ModifiedPrompt)
	if err != nil {
		return nil, fmt.Errorf("analyze modified: %w", err)
	}

	changes := p.detector.DetectChanges(originalSegments, modifiedAnalysis.Segments)

	// The two generations are independent; run them concurrently
	var (
		wg                       sync.WaitGroup
		originalOut, modifiedOut string
		originalErr, modifiedErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		originalOut, originalErr = p.generateOutput(ctx, req.GenerationType, req.OriginalPrompt, originalSegments)
	}()
	go func() {
		defer wg.Done()
		modifiedOut, modifiedErr = p.generateOutput(ctx, req.GenerationType, req.ModifiedPrompt, modifiedAnalysis.Segments)
	}()
	wg.Wait()

	if originalErr != nil {
		return nil, fmt.Errorf("generate original output: %w", originalErr)
	}
	if modifiedErr != nil {
		return nil, fmt.Errorf("generate modified output: %w", modifiedErr)
	}

	return &model.WhatIfReport{
		OriginalPrompt:   req.OriginalPrompt,
		ModifiedPrompt:   req.ModifiedPrompt,
		GenerationType:   req.GenerationType,
		OriginalSegments: originalSegments,
		ModifiedSegments: modifiedAnalysis.Segments,
		OriginalOutput:   originalOut,
		ModifiedOutput:   modifiedOut,
		Changes:          changes,
		Impact:           whatif.Summarize(changes),
		Metrics:          whatif.CompareOutputs(originalOut, modifiedOut, changes),
		AnalyzedAt:       time.Now().UTC(),
	}, nil
}

// generateOutput produces the output string for one side of a what-if
// comparison
func (p *Pipeline) generateOutput(ctx context.Context, kind model.GenerationType, prompt string, segments []model.Segment) (string, error) {
	switch kind {
	case model.GenerationImage:
		if err := p.limiter.Wait(ctx, p.imageProvider.Name()); err != nil {
			return "", err
		}
		result, err := p.imageProvider.GenerateImage(ctx, provider.ImageRequest{
			Prompt:         prompt,
			Segments:       segments,
			Width:          p.config.Image.Width,
			Height:         p.config.Image.Height,
			InferenceSteps: p.config.Image.InferenceSteps,
		})
		if err != nil {
			return "", err
		}
		return result.ImageURL, nil

	default:
		if err := p.limiter.Wait(ctx, p.textProvider.Name()); err != nil {
			return "", err
		}
		result, err := p.textProvider.GenerateText(ctx, provider.TextRequest{
			Prompt:      prompt,
			Segments:    segments,
			MaxTokens:   p.config.Text.MaxTokens,
			Temperature: p.config.Text.Temperature,
		})
		if err != nil {
			return "", err
		}
		return result.Content, nil
	}
}
