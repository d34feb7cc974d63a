package model

import "time"

// Config holds the complete PromptLens configuration
type Config struct {
	Segmentation SegmentationConfig  `yaml:"segmentation" json:"segmentation"`
	Matching     MatchingConfig      `yaml:"matching" json:"matching"`
	Text         TextProviderConfig  `yaml:"text" json:"text"`
	Image        ImageProviderConfig `yaml:"image" json:"image"`
	Cache        CacheConfig         `yaml:"cache" json:"cache"`
	Concurrency  ConcurrencyConfig   `yaml:"concurrency" json:"concurrency"`
	Output       OutputConfig        `yaml:"output" json:"output"`
}

// SegmentationConfig controls the segmenter and merger
type SegmentationConfig struct {
	// MinWords is the minimum word count below which a segment is merged
	// into its following neighbor
	MinWords int `yaml:"min_words" json:"min_words"`
}

// MatchingConfig carries the fuzzy-matching thresholds for what-if diffing.
// The defaults are empirically chosen, not derived from a principled model;
// they are configuration, not fixed truths.
type MatchingConfig struct {
	// ConsiderThreshold is the similarity floor below which a candidate is
	// not considered a match at all
	ConsiderThreshold float64 `yaml:"consider_threshold" json:"consider_threshold"`
	// ModifiedThreshold separates "modified" from "removed": matches above
	// it count as modifications of the original segment
	ModifiedThreshold float64 `yaml:"modified_threshold" json:"modified_threshold"`
}

// TextProviderConfig configures the text generation backend
type TextProviderConfig struct {
	Provider    string  `yaml:"provider" json:"provider"` // "openai", "offline", or "" (offline)
	Model       string  `yaml:"model" json:"model"`
	APIKey      string  `yaml:"-" json:"-"` // From OPENAI_API_KEY, never persisted
	BaseURL     string  `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature float32 `yaml:"temperature" json:"temperature"`
	Timeout     int     `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// ImageProviderConfig configures the image generation backend
type ImageProviderConfig struct {
	Provider       string `yaml:"provider" json:"provider"` // "replicate", "offline", or "" (offline)
	Model          string `yaml:"model" json:"model"`
	APIToken       string `yaml:"-" json:"-"` // From REPLICATE_API_TOKEN, never persisted
	BaseURL        string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Width          int    `yaml:"width" json:"width"`
	Height         int    `yaml:"height" json:"height"`
	InferenceSteps int    `yaml:"inference_steps" json:"inference_steps"`
	Timeout        int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// CacheConfig controls the in-memory analysis cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	TTL             time.Duration `yaml:"ttl" json:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

// ConcurrencyConfig controls batch processing and provider rate limiting
type ConcurrencyConfig struct {
	BatchWorkers  int     `yaml:"batch_workers" json:"batch_workers"`
	ProviderRate  float64 `yaml:"provider_rate" json:"provider_rate"` // requests per second, per provider
	ProviderBurst int     `yaml:"provider_burst" json:"provider_burst"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Segmentation: SegmentationConfig{
			MinWords: 3,
		},
		Matching: MatchingConfig{
			ConsiderThreshold: 0.3,
			ModifiedThreshold: 0.5,
		},
		Text: TextProviderConfig{
			Provider:    "", // Offline fallback by default
			Model:       "gpt-4o-mini",
			MaxTokens:   1024,
			Temperature: 0.7,
			Timeout:     30,
		},
		Image: ImageProviderConfig{
			Provider:       "", // Offline fallback by default
			Model:          "stability-ai/stable-diffusion",
			Width:          512,
			Height:         512,
			InferenceSteps: 30,
			Timeout:        120,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:  4,
			ProviderRate:  2.0,
			ProviderBurst: 5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
