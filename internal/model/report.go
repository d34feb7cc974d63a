package model

import "time"

// GenerationType selects which kind of output a generation produces
type GenerationType string

const (
	GenerationText  GenerationType = "text"
	GenerationImage GenerationType = "image"
)

// Prompt length contract enforced at the analysis boundary
const (
	MinPromptLength = 1
	MaxPromptLength = 4000
)

// Analysis is the segmentation result for a single prompt
type Analysis struct {
	Prompt     string    `json:"prompt"`
	Segments   []Segment `json:"segments"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// TextGeneration is a generated text plus its sentence-level attribution
type TextGeneration struct {
	Prompt           string                 `json:"prompt"`
	Segments         []Segment              `json:"segments"`
	GeneratedText    string                 `json:"generated_text"`
	SentenceMappings []SentenceMapping      `json:"sentence_mappings"`
	Metadata         map[string]interface{} `json:"generation_metadata,omitempty"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

// ImageGeneration is a generated image reference plus its synthetic attribution
type ImageGeneration struct {
	Prompt        string                 `json:"prompt"`
	Segments      []Segment              `json:"segments"`
	ImageURL      string                 `json:"image_url"`
	Width         int                    `json:"image_width"`
	Height        int                    `json:"image_height"`
	Heatmap       []HeatmapRegion        `json:"heatmap_data"`
	Contributions map[string]float64     `json:"segment_contributions"`
	Metadata      map[string]interface{} `json:"generation_metadata,omitempty"`
	GeneratedAt   time.Time              `json:"generated_at"`
}

// WhatIfRequest asks for a comparison between an original prompt and an
// edited version of it
type WhatIfRequest struct {
	OriginalPrompt string         `json:"original_prompt"`
	ModifiedPrompt string         `json:"modified_prompt"`
	// OriginalSegments may be supplied by the caller from a previous analysis;
	// when empty the original prompt is re-segmented.
	OriginalSegments []Segment      `json:"original_segments,omitempty"`
	GenerationType   GenerationType `json:"generation_type"`
}

// WhatIfReport compares the original and modified prompts and their outputs
type WhatIfReport struct {
	OriginalPrompt   string            `json:"original_prompt"`
	ModifiedPrompt   string            `json:"modified_prompt"`
	GenerationType   GenerationType    `json:"generation_type"`
	OriginalSegments []Segment         `json:"original_segments"`
	ModifiedSegments []Segment         `json:"modified_segments"`
	OriginalOutput   string            `json:"original_output"`
	ModifiedOutput   string            `json:"modified_output"`
	Changes          []SegmentChange   `json:"segment_changes"`
	Impact           ImpactSummary     `json:"impact_summary"`
	Metrics          ComparisonMetrics `json:"comparison_metrics"`
	AnalyzedAt       time.Time         `json:"analyzed_at"`
}
