package attribution

import "github.com/promptlens/promptlens/internal/model"

// Explain computes the aggregate attribution of a generated text: per-segment
// overall importance combining average mapped confidence (0.6) with sentence
// coverage (0.4), min-max normalized against the strongest segment. Segments
// that contribute to no sentence score 0.
func Explain(generated string, segments []model.Segment) *model.TextExplanation {
	mappings := MapSentences(generated, segments)

	overall := make(map[string]float64, len(segments))
	for _, seg := range segments {
		count := 0
		totalConfidence := 0.0

		for _, mapping := range mappings {
			if containsID(mapping.ContributingSegments, seg.ID) {
				count++
				totalConfidence += mapping.ConfidenceScores[seg.ID]
			}
		}

		if count == 0 {
			overall[seg.ID] = 0.0
			continue
		}

		avgConfidence := totalConfidence / float64(count)
		coverage := float64(count) / float64(len(mappings))
		overall[seg.ID] = round3(avgConfidence*0.6 + coverage*0.4)
	}

	// Normalize against the strongest segment
	maxImportance := 0.0
	for _, v := range overall {
		if v > maxImportance {
			maxImportance = v
		}
	}
	if maxImportance > 0 {
		for id, v := range overall {
			overall[id] = round3(v / maxImportance)
		}
	}

	return &model.TextExplanation{
		SentenceMappings:         mappings,
		OverallSegmentImportance: overall,
		ExplanationConfidence:    explanationConfidence(mappings),
	}
}

// explanationConfidence averages the strongest per-sentence weight across all
// mappings; with no sentences it defaults to a neutral 0.5
func explanationConfidence(mappings []model.SentenceMapping) float64 {
	if len(mappings) == 0 {
		return 0.5
	}

	total := 0.0
	for _, mapping := range mappings {
		best := 0.0
		for _, score := range mapping.ConfidenceScores {
			if score > best {
				best = score
			}
		}
		total += best
	}

	return round3(total / float64(len(mappings)))
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
