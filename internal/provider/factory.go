package provider

import (
	"fmt"
	"strings"

	"github.com/promptlens/promptlens/internal/model"
)

// NewTextProvider selects the text generation backend from configuration.
// An empty provider name selects the deterministic offline fallback.
func NewTextProvider(config model.TextProviderConfig) (TextProvider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "", "offline":
		return &OfflineTextProvider{}, nil

	default:
		return nil, fmt.Errorf("unknown text provider: %s (supported: openai, offline)", config.Provider)
	}
}

// NewImageProvider selects the image generation backend from configuration.
// An empty provider name selects the deterministic offline fallback.
func NewImageProvider(config model.ImageProviderConfig) (ImageProvider, error) {
	switch strings.ToLower(config.Provider) {
	case "replicate":
		return NewReplicateProvider(config)

	case "", "offline":
		return &OfflineImageProvider{Width: config.Width, Height: config.Height}, nil

	default:
		return nil, fmt.Errorf("unknown image provider: %s (supported: replicate, offline)", config.Provider)
	}
}
