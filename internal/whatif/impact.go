package whatif

import (
	"math"

	"github.com/promptlens/promptlens/internal/model"
)

// Summarize aggregates per-change impact scores into summary statistics.
// The change ratio counts every non-unchanged entry against the total, and
// the magnitude buckets are <0.2 minimal, <0.5 moderate, else significant.
func Summarize(changes []model.SegmentChange) model.ImpactSummary {
	summary := model.ImpactSummary{
		TotalSegments: len(changes),
	}

	totalImpact := 0.0
	for _, c := range changes {
		totalImpact += c.ImpactScore
		switch c.ChangeType {
		case model.ChangeAdded:
			summary.SegmentsAdded++
		case model.ChangeRemoved:
			summary.SegmentsRemoved++
		case model.ChangeModified:
			summary.SegmentsModified++
		case model.ChangeUnchanged:
			summary.SegmentsKept++
		}
	}

	summary.TotalImpact = round3(totalImpact)

	if len(changes) > 0 {
		summary.AverageImpact = round3(totalImpact / float64(len(changes)))
		changed := summary.SegmentsAdded + summary.SegmentsRemoved + summary.SegmentsModified
		summary.ChangeRatio = round3(float64(changed) / float64(len(changes)))
	}

	switch {
	case summary.ChangeRatio < 0.2:
		summary.ChangeMagnitude = model.MagnitudeMinimal
	case summary.ChangeRatio < 0.5:
		summary.ChangeMagnitude = model.MagnitudeModerate
	default:
		summary.ChangeMagnitude = model.MagnitudeSignificant
	}

	return summary
}

// CompareOutputs computes output-level drift metrics between the two
// generated outputs of a what-if analysis. The input-output correlation is
// high when the output drifted about as much as the input changes predict.
func CompareOutputs(originalOutput, modifiedOutput string, changes []model.SegmentChange) model.ComparisonMetrics {
	similarity := Ratio(originalOutput, modifiedOutput)

	lengthDiff := math.Abs(float64(len(modifiedOutput) - len(originalOutput)))
	maxLen := float64(len(originalOutput))
	if float64(len(modifiedOutput)) > maxLen {
		maxLen = float64(len(modifiedOutput))
	}
	if maxLen < 1 {
		maxLen = 1
	}

	inputChange := 0.0
	for _, c := range changes {
		if c.ChangeType != model.ChangeUnchanged {
			inputChange += c.ImpactScore
		}
	}
	totalChanges := len(changes)
	if totalChanges < 1 {
		totalChanges = 1
	}
	normalizedInputChange := inputChange / float64(totalChanges)

	outputChange := 1 - similarity

	return model.ComparisonMetrics{
		TextSimilarity:         round3(similarity),
		WordOverlap:            round3(JaccardWords(originalOutput, modifiedOutput)),
		LengthChangeRatio:      round3(lengthDiff / maxLen),
		InputOutputCorrelation: round3(1 - math.Abs(normalizedInputChange-outputChange)),
		DivergenceScore:        round3(outputChange),
	}
}
