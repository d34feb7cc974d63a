// Package provider abstracts the generation backends whose output the
// explainability engine consumes. The engine never depends on which backend
// produced its input: a real API and the deterministic offline fallback are
// interchangeable from the attribution and diff logic's point of view.
package provider

import (
	"context"
	"fmt"

	"github.com/promptlens/promptlens/internal/model"
)

// TextRequest asks a text backend for generated content
type TextRequest struct {
	Prompt      string
	Segments    []model.Segment
	MaxTokens   int
	Temperature float32
}

// TextResult is the generated text plus backend metadata
type TextResult struct {
	Content  string
	Metadata map[string]interface{}
}

// ImageRequest asks an image backend for a generated image
type ImageRequest struct {
	Prompt         string
	Segments       []model.Segment
	Width          int
	Height         int
	InferenceSteps int
}

// ImageResult is a reference to the generated image plus backend metadata
type ImageResult struct {
	ImageURL string
	Width    int
	Height   int
	Metadata map[string]interface{}
}

// TextProvider generates text content for a prompt
type TextProvider interface {
	// Name returns the provider name
	Name() string

	// GenerateText produces content for the prompt
	GenerateText(ctx context.Context, req TextRequest) (*TextResult, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// ImageProvider generates image content for a prompt
type ImageProvider interface {
	// Name returns the provider name
	Name() string

	// GenerateImage produces an image for the prompt
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Error describes a failed generation call: the backing service was
// unreachable, mis-configured, or returned an error status
type Error struct {
	Provider string
	Status   int // HTTP status when applicable, 0 otherwise
	Err      error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s provider: status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// systemPrompt guides text generation toward well-structured sentences that
// relate to different aspects of the input prompt
const systemPrompt = `You are a creative AI assistant. Generate detailed, engaging content based on the user's prompt.
Your response should be well-structured with clear sentences that relate to different aspects of the input prompt.`
