package model

// SentenceMapping attributes one generated sentence to the segments that most
// plausibly produced it
type SentenceMapping struct {
	SentenceID    string `json:"sentence_id"`
	SentenceText  string `json:"sentence_text"`
	SentenceIndex int    `json:"sentence_index"` // 0-based order of appearance

	// ContributingSegments holds segment IDs in descending relevance order.
	// Either every entry carries at least 0.1 of the normalized mass, or the
	// list holds exactly one fallback segment.
	ContributingSegments []string `json:"contributing_segments"`

	// ConfidenceScores maps segment ID to normalized weight. Weights over
	// ContributingSegments sum to 1.0 within floating tolerance.
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
}

// TextExplanation is the aggregate attribution of a generated text
type TextExplanation struct {
	SentenceMappings         []SentenceMapping  `json:"sentence_mappings"`
	OverallSegmentImportance map[string]float64 `json:"overall_segment_importance"`
	ExplanationConfidence    float64            `json:"explanation_confidence"`
}

// HeatmapRegion is a synthetic spatial attribution unit for an image output.
// Coordinates and sizes are normalized image fractions in [0,1]; regions may
// overlap and exactly one region exists per input segment.
type HeatmapRegion struct {
	SegmentID string  `json:"segment_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Intensity float64 `json:"intensity"` // importance * confidence, in [0,1]
}

// ImageExplanation is the aggregate attribution of a generated image
type ImageExplanation struct {
	Heatmap               []HeatmapRegion    `json:"heatmap_data"`
	Contributions         map[string]float64 `json:"segment_contributions"` // segment ID -> share, sums to 1
	AttentionSummary      string             `json:"attention_summary"`
	ExplanationConfidence float64            `json:"explanation_confidence"`
}
