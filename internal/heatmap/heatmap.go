// Package heatmap synthesizes 2-D attribution regions for image outputs.
// The regions are heuristic stand-ins for real model attention: each segment
// gets one region whose placement follows its category's typical position in
// a generated image and whose size and intensity follow its importance and
// classification confidence.
package heatmap

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/promptlens/promptlens/internal/model"
)

// tendency is the typical normalized position and spread of a category
type tendency struct {
	x, y   float64
	spread float64
}

// positionTendencies maps each category to where its influence usually lands:
// subjects and styles cover the center, actions sit lower, context forms the
// background toward the top.
var positionTendencies = map[model.Category]tendency{
	model.CategorySubject:  {x: 0.5, y: 0.5, spread: 0.3},
	model.CategoryAction:   {x: 0.5, y: 0.6, spread: 0.25},
	model.CategoryStyle:    {x: 0.5, y: 0.5, spread: 0.5},
	model.CategoryContext:  {x: 0.5, y: 0.3, spread: 0.4},
	model.CategoryModifier: {x: 0.5, y: 0.5, spread: 0.35},
	model.CategoryUnknown:  {x: 0.5, y: 0.5, spread: 0.3},
}

// Synthesizer produces synthetic heatmap regions. Randomness comes from the
// injected source so callers can seed it for reproducible output.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer; a nil source is replaced with a
// time-seeded one.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{rng: rng}
}

// Regions emits exactly one region per segment, in input order. Position is
// the category tendency with ±0.1 uniform jitter, side length grows with
// importance plus a small positive jitter, and everything is clamped to the
// [0,1] normalized image square. Intensity is importance * confidence.
func (s *Synthesizer) Regions(segments []model.Segment) []model.HeatmapRegion {
	regions := make([]model.HeatmapRegion, 0, len(segments))

	for _, seg := range segments {
		t, ok := positionTendencies[seg.Category]
		if !ok {
			t = positionTendencies[model.CategoryUnknown]
		}

		baseX := t.x + s.jitter()
		baseY := t.y + s.jitter()

		size := 0.2 + seg.Importance*0.3

		regions = append(regions, model.HeatmapRegion{
			SegmentID: seg.ID,
			X:         clamp01(baseX - size/2),
			Y:         clamp01(baseY - size/2),
			Width:     math.Min(1, size+s.rng.Float64()*0.1),
			Height:    math.Min(1, size+s.rng.Float64()*0.1),
			Intensity: seg.Importance * seg.Confidence,
		})
	}

	return regions
}

// jitter returns a uniform value in [-0.1, 0.1)
func (s *Synthesizer) jitter() float64 {
	return s.rng.Float64()*0.2 - 0.1
}

// Contributions returns each segment's normalized share of the synthesized
// attention, weighted by importance * confidence. An all-zero weight set
// distributes equally; an empty segment list yields an empty map.
func Contributions(segments []model.Segment) map[string]float64 {
	contributions := make(map[string]float64, len(segments))
	if len(segments) == 0 {
		return contributions
	}

	total := 0.0
	for _, seg := range segments {
		total += seg.Importance * seg.Confidence
	}

	if total == 0 {
		equal := 1.0 / float64(len(segments))
		for _, seg := range segments {
			contributions[seg.ID] = equal
		}
		return contributions
	}

	for _, seg := range segments {
		contributions[seg.ID] = round3(seg.Importance * seg.Confidence / total)
	}

	return contributions
}

// AttentionSummary describes the dominant segments in plain language
func AttentionSummary(segments []model.Segment, contributions map[string]float64) string {
	if len(segments) == 0 {
		return "No segments provided for analysis."
	}

	sorted := make([]model.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return contributions[sorted[i].ID] > contributions[sorted[j].ID]
	})

	top := sorted[0]
	parts := []string{fmt.Sprintf(
		"The most influential part of your prompt is '%s' (category: %s), contributing approximately %.1f%% to the image.",
		top.Text, top.Category, contributions[top.ID]*100,
	)}

	limit := 3
	if len(sorted) < limit {
		limit = len(sorted)
	}
	for _, seg := range sorted[1:limit] {
		if contrib := contributions[seg.ID]; contrib > 0.1 {
			parts = append(parts, fmt.Sprintf(
				"'%s' also influences the result with a %.1f%% contribution.",
				seg.Text, contrib*100,
			))
		}
	}

	return strings.Join(parts, " ")
}

// Explain builds the complete image-side explanation for a segment set
func (s *Synthesizer) Explain(segments []model.Segment) *model.ImageExplanation {
	contributions := Contributions(segments)

	confidence := 0.5
	if len(segments) > 0 {
		total := 0.0
		for _, seg := range segments {
			total += seg.Confidence
		}
		confidence = round3(total / float64(len(segments)))
	}

	return &model.ImageExplanation{
		Heatmap:               s.Regions(segments),
		Contributions:         contributions,
		AttentionSummary:      AttentionSummary(segments, contributions),
		ExplanationConfidence: confidence,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
