package model

// ChangeType classifies how a segment differs between two prompt versions
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// SegmentChange is the result of comparing one segment against the other
// prompt version's segment set
type SegmentChange struct {
	SegmentID    string     `json:"segment_id"`
	ChangeType   ChangeType `json:"change_type"`
	OriginalText string     `json:"original_text,omitempty"` // Absent for added segments
	ModifiedText string     `json:"modified_text,omitempty"` // Absent for removed segments
	ImpactScore  float64    `json:"impact_score"`            // In [0,1]
}

// ChangeMagnitude buckets the overall amount of change between two prompts
type ChangeMagnitude string

const (
	MagnitudeMinimal     ChangeMagnitude = "minimal"     // change ratio < 0.2
	MagnitudeModerate    ChangeMagnitude = "moderate"    // change ratio < 0.5
	MagnitudeSignificant ChangeMagnitude = "significant" // everything else
)

// ImpactSummary aggregates per-change impacts into summary statistics
type ImpactSummary struct {
	TotalSegments    int             `json:"total_segments_analyzed"`
	SegmentsAdded    int             `json:"segments_added"`
	SegmentsRemoved  int             `json:"segments_removed"`
	SegmentsModified int             `json:"segments_modified"`
	SegmentsKept     int             `json:"segments_unchanged"`
	TotalImpact      float64         `json:"total_impact_score"`
	AverageImpact    float64         `json:"average_impact_score"`
	ChangeRatio      float64         `json:"change_ratio"`
	ChangeMagnitude  ChangeMagnitude `json:"change_magnitude"`
}

// ComparisonMetrics compares the two generated outputs of a what-if analysis
type ComparisonMetrics struct {
	TextSimilarity         float64 `json:"text_similarity"`          // Edit-similarity ratio
	WordOverlap            float64 `json:"word_overlap"`             // Jaccard overlap of word sets
	LengthChangeRatio      float64 `json:"length_change_ratio"`      // Normalized absolute length delta
	InputOutputCorrelation float64 `json:"input_output_correlation"` // Whether output drift tracks input drift
	DivergenceScore        float64 `json:"divergence_score"`         // 1 - similarity
}
