// Package whatif compares two segmentations of an edited prompt and the two
// generated outputs, classifying segment-level changes and quantifying their
// expected impact.
package whatif

import (
	"math"
	"strings"

	"github.com/promptlens/promptlens/internal/model"
)

// Detector matches original segments against a modified segment set.
// Thresholds are configurable: candidates below the consider floor are
// ignored entirely, and matches above the modified threshold count as
// modifications rather than a removal/addition pair.
type Detector struct {
	considerThreshold float64
	modifiedThreshold float64
}

// NewDetector creates a detector; non-positive thresholds fall back to the
// defaults (0.3 consider, 0.5 modified).
func NewDetector(considerThreshold, modifiedThreshold float64) *Detector {
	if considerThreshold <= 0 {
		considerThreshold = 0.3
	}
	if modifiedThreshold <= 0 {
		modifiedThreshold = 0.5
	}
	return &Detector{
		considerThreshold: considerThreshold,
		modifiedThreshold: modifiedThreshold,
	}
}

// DetectChanges classifies each original segment as unchanged, modified, or
// removed, and each modified segment never consumed by those matches as
// added. Matching is case-insensitive exact text first, then fuzzy by
// edit-similarity ratio against the remaining modified segments.
func (d *Detector) DetectChanges(original, modified []model.Segment) []model.SegmentChange {
	byText := make(map[string]model.Segment, len(modified))
	for _, seg := range modified {
		key := strings.ToLower(seg.Text)
		if _, exists := byText[key]; !exists {
			byText[key] = seg
		}
	}
	consumed := make(map[string]bool, len(modified))

	var changes []model.SegmentChange

	for _, orig := range original {
		key := strings.ToLower(orig.Text)

		if _, ok := byText[key]; ok && !consumed[key] {
			changes = append(changes, model.SegmentChange{
				SegmentID:    orig.ID,
				ChangeType:   model.ChangeUnchanged,
				OriginalText: orig.Text,
				ModifiedText: orig.Text,
				ImpactScore:  0.0,
			})
			consumed[key] = true
			continue
		}

		bestText, bestRatio := d.bestMatch(orig.Text, modified, consumed)

		if bestRatio > d.modifiedThreshold {
			changes = append(changes, model.SegmentChange{
				SegmentID:    orig.ID,
				ChangeType:   model.ChangeModified,
				OriginalText: orig.Text,
				ModifiedText: bestText,
				ImpactScore:  changeImpact(orig, bestRatio),
			})
			consumed[strings.ToLower(bestText)] = true
			continue
		}

		changes = append(changes, model.SegmentChange{
			SegmentID:    orig.ID,
			ChangeType:   model.ChangeRemoved,
			OriginalText: orig.Text,
			ImpactScore:  orig.Importance,
		})
	}

	// Anything left in the modified set is an addition, skipping texts
	// already recorded as a modification target
	for _, seg := range modified {
		key := strings.ToLower(seg.Text)
		if consumed[key] || isModifiedTarget(changes, key) {
			continue
		}
		consumed[key] = true
		changes = append(changes, model.SegmentChange{
			SegmentID:    seg.ID,
			ChangeType:   model.ChangeAdded,
			ModifiedText: seg.Text,
			ImpactScore:  seg.Importance,
		})
	}

	return changes
}

// bestMatch finds the unconsumed modified segment most similar to text,
// ignoring candidates below the consider floor
func (d *Detector) bestMatch(text string, modified []model.Segment, consumed map[string]bool) (string, float64) {
	bestText := ""
	bestRatio := 0.0

	lower := strings.ToLower(text)
	for _, seg := range modified {
		key := strings.ToLower(seg.Text)
		if consumed[key] {
			continue
		}
		if ratio := Ratio(lower, key); ratio > bestRatio {
			bestRatio = ratio
			bestText = seg.Text
		}
	}

	if bestRatio <= d.considerThreshold {
		return "", 0.0
	}
	return bestText, bestRatio
}

// changeImpact scores a modification: higher importance and lower similarity
// mean higher impact
func changeImpact(seg model.Segment, similarity float64) float64 {
	return round3(seg.Importance * (1 - similarity))
}

// isModifiedTarget reports whether key is already recorded as the modified
// text of an earlier change
func isModifiedTarget(changes []model.SegmentChange, key string) bool {
	for _, c := range changes {
		if c.ModifiedText != "" && strings.ToLower(c.ModifiedText) == key {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
