// Package attribution maps generated text back to the prompt segments that
// most plausibly produced it. All scoring is heuristic and deterministic:
// stopword-filtered word overlap plus partial/prefix similarity plus the
// segment's own importance.
package attribution

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/promptlens/promptlens/internal/model"
)

// relevanceFloor is both the minimal relevance assigned to degenerate word
// sets and the threshold a segment must clear to be retained for a sentence
const relevanceFloor = 0.1

// stopwords are excluded from word-overlap scoring
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "with": true, "by": true,
	"from": true, "as": true, "and": true, "or": true, "but": true,
	"if": true, "then": true, "else": true, "when": true, "where": true,
	"this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true,
}

// SplitSentences splits generated text into sentences at sentence-final
// punctuation followed by whitespace. Empty sentences are dropped.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				if sentence := strings.TrimSpace(current.String()); sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// contentWords returns the lowercased word set of text with stopwords removed
func contentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if !stopwords[w] {
			words[w] = true
		}
	}
	return words
}

// Relevance scores how strongly a segment plausibly produced a sentence, in
// [0,1]. Word-set overlap weighs 0.5, partial/prefix similarity weighs 0.3,
// and the segment's importance weighs 0.2. Degenerate word sets yield the
// minimal floor instead of dividing by zero.
func Relevance(seg model.Segment, sentence string) float64 {
	segWords := contentWords(seg.Text)
	sentWords := contentWords(sentence)

	if len(segWords) == 0 || len(sentWords) == 0 {
		return relevanceFloor
	}

	overlap := 0
	for w := range segWords {
		if sentWords[w] {
			overlap++
		}
	}
	overlapScore := float64(overlap) / float64(len(segWords))

	partial := 0.0
	for sw := range segWords {
		for tw := range sentWords {
			switch {
			case strings.Contains(tw, sw) || strings.Contains(sw, tw):
				partial += 0.5
			case len(sw) > 3 && len(tw) > 3 && sw[:4] == tw[:4]:
				partial += 0.3
			}
		}
	}
	partialScore := math.Min(partial/float64(len(segWords)), 0.5)

	score := overlapScore*0.5 + partialScore*0.3 + seg.Importance*0.2

	return math.Min(score, 1.0)
}

// MapSentences builds one SentenceMapping per non-empty sentence of the
// generated text. Segments whose relevance clears the floor are retained and
// their scores normalized to sum to 1; when none clear it, the single
// highest-scoring segment is mapped with weight 1.0.
func MapSentences(generated string, segments []model.Segment) []model.SentenceMapping {
	sentences := SplitSentences(generated)

	mappings := make([]model.SentenceMapping, 0, len(sentences))
	for idx, sentence := range sentences {
		raw := make(map[string]float64)
		for _, seg := range segments {
			if score := Relevance(seg, sentence); score > relevanceFloor {
				raw[seg.ID] = score
			}
		}

		total := 0.0
		for _, score := range raw {
			total += score
		}
		if total == 0 {
			total = 1
		}

		normalized := make(map[string]float64, len(raw))
		for id, score := range raw {
			normalized[id] = round3(score / total)
		}

		// Contributing segments in descending relevance order, each carrying
		// at least the floor of the normalized mass
		retained := make([]string, 0, len(raw))
		for _, seg := range segments {
			if _, ok := raw[seg.ID]; ok {
				retained = append(retained, seg.ID)
			}
		}
		sort.SliceStable(retained, func(i, j int) bool {
			return raw[retained[i]] > raw[retained[j]]
		})

		contributing := make([]string, 0, len(retained))
		for _, id := range retained {
			if normalized[id] >= relevanceFloor {
				contributing = append(contributing, id)
			}
		}

		// Fall back to the single most relevant segment
		if len(contributing) == 0 && len(segments) > 0 {
			best := segments[0]
			for _, seg := range segments[1:] {
				if raw[seg.ID] > raw[best.ID] {
					best = seg
				}
			}
			contributing = []string{best.ID}
			normalized = map[string]float64{best.ID: 1.0}
		}

		mappings = append(mappings, model.SentenceMapping{
			SentenceID:           uuid.NewString(),
			SentenceText:         sentence,
			SentenceIndex:        idx,
			ContributingSegments: contributing,
			ConfidenceScores:     normalized,
		})
	}

	return mappings
}

// round3 rounds to 3 decimal places
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
