package model

import "strings"

// Category labels the semantic role a segment plays within a prompt
type Category string

const (
	CategorySubject  Category = "subject"  // What the prompt is about
	CategoryAction   Category = "action"   // What is happening
	CategoryStyle    Category = "style"    // Rendering/aesthetic instructions
	CategoryContext  Category = "context"  // Setting, location, atmosphere
	CategoryModifier Category = "modifier" // Intensifiers and qualifiers
	CategoryUnknown  Category = "unknown"  // No pattern matched
)

// Categories lists all categories in classification precedence order.
// When pattern scores tie, the earlier category wins; unknown only applies
// when nothing matches at all.
var Categories = []Category{
	CategorySubject,
	CategoryAction,
	CategoryStyle,
	CategoryContext,
	CategoryModifier,
	CategoryUnknown,
}

// Segment represents a contiguous labeled span of a prompt.
// Segments are immutable once constructed; merging produces a new Segment
// with a fresh ID rather than mutating either input.
type Segment struct {
	ID         string   `json:"id"`         // Opaque unique identifier
	Text       string   `json:"text"`       // Trimmed literal substring
	Start      int      `json:"start"`      // Character offset into the prompt
	End        int      `json:"end"`        // start < end
	Category   Category `json:"category"`   // Never empty, defaults to unknown
	Confidence float64  `json:"confidence"` // Classification certainty in [0,1]
	Importance float64  `json:"importance"` // Relative salience in [0,1]
}

// WordCount returns the number of whitespace-separated words in the segment text
func (s Segment) WordCount() int {
	return len(strings.Fields(s.Text))
}
