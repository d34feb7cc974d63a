package segment

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/promptlens/promptlens/internal/model"
)

// Merge collapses segments with fewer than minWords words into their
// immediately following neighbor. The merged text is reclassified as a unit
// and its importance is the max of the two originals; the merge produces a
// new segment with a fresh ID and consumes both inputs. A trailing too-short
// segment with no successor is kept as-is.
func Merge(segments []model.Segment, minWords int) []model.Segment {
	if len(segments) <= 1 {
		return segments
	}

	result := make([]model.Segment, 0, len(segments))

	i := 0
	for i < len(segments) {
		current := segments[i]

		if current.WordCount() < minWords && i+1 < len(segments) {
			next := segments[i+1]
			text := strings.TrimSpace(current.Text + " " + next.Text)
			category, confidence := Classify(text)

			result = append(result, model.Segment{
				ID:         uuid.NewString(),
				Text:       text,
				Start:      current.Start,
				End:        next.End,
				Category:   category,
				Confidence: confidence,
				Importance: math.Max(current.Importance, next.Importance),
			})
			i += 2
			continue
		}

		result = append(result, current)
		i++
	}

	return result
}
