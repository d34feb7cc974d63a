package provider

import (
	"context"
	"fmt"
)

// offlineTemplate mirrors the structure of a typical generated response so
// the attribution engine has sentences covering subject, context/style, and
// modifier aspects of the prompt
const offlineTemplate = `Based on your prompt about %s, here is a generated response.

The first aspect to consider is the main subject. This relates directly to what you specified in your input.

Additionally, the context and style you requested have been incorporated. The result aims to match your expectations while maintaining coherence.

Finally, the modifiers and additional details help refine the output. This creates a more complete and nuanced result that addresses all parts of your prompt.`

// OfflineTextProvider produces a deterministic template response when no
// text backend is configured. Downstream attribution cannot tell the
// difference between this and a real provider.
type OfflineTextProvider struct{}

// Name returns the provider name
func (p *OfflineTextProvider) Name() string {
	return "offline"
}

// IsAvailable always succeeds; the offline provider has no dependencies
func (p *OfflineTextProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// GenerateText fills the fixed template with the leading segment's text
func (p *OfflineTextProvider) GenerateText(ctx context.Context, req TextRequest) (*TextResult, error) {
	topic := "the topic"
	if len(req.Segments) > 0 {
		topic = req.Segments[0].Text
	}

	return &TextResult{
		Content: fmt.Sprintf(offlineTemplate, topic),
		Metadata: map[string]interface{}{
			"model":   "offline",
			"offline": true,
		},
	}, nil
}

// OfflineImageProvider returns a placeholder image reference when no image
// backend is configured
type OfflineImageProvider struct {
	// Width and Height are the placeholder dimensions used when the request
	// leaves them unset
	Width  int
	Height int
}

// Name returns the provider name
func (p *OfflineImageProvider) Name() string {
	return "offline"
}

// IsAvailable always succeeds; the offline provider has no dependencies
func (p *OfflineImageProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// GenerateImage returns a deterministic placeholder URL
func (p *OfflineImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	width := req.Width
	if width == 0 {
		width = p.Width
	}
	if width == 0 {
		width = 512
	}
	height := req.Height
	if height == 0 {
		height = p.Height
	}
	if height == 0 {
		height = 512
	}

	url := fmt.Sprintf("https://via.placeholder.com/%dx%d/1a1a2e/ffffff?text=PromptLens+Demo", width, height)

	return &ImageResult{
		ImageURL: url,
		Width:    width,
		Height:   height,
		Metadata: map[string]interface{}{
			"model":   "offline",
			"offline": true,
		},
	}, nil
}
