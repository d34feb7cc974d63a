package attribution

import (
	"math"
	"testing"

	"github.com/promptlens/promptlens/internal/model"
)

func TestSplitSentences_Basic(t *testing.T) {
	sentences := SplitSentences("First sentence. Second one! And a third? trailing fragment")

	if len(sentences) != 4 {
		t.Fatalf("Expected 4 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "First sentence." {
		t.Errorf("Unexpected first sentence: %q", sentences[0])
	}
	if sentences[3] != "trailing fragment" {
		t.Errorf("Expected trailing fragment kept, got %q", sentences[3])
	}
}

func TestSplitSentences_DecimalNotSplit(t *testing.T) {
	sentences := SplitSentences("The bridge is 3.5 meters wide. It spans the river.")

	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
}

func TestSplitSentences_NewlinesTreatedAsSpaces(t *testing.T) {
	sentences := SplitSentences("One sentence.\nAnother sentence.")
	if len(sentences) != 2 {
		t.Errorf("Expected 2 sentences across newline, got %d", len(sentences))
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	if sentences := SplitSentences(""); len(sentences) != 0 {
		t.Errorf("Expected no sentences, got %v", sentences)
	}
}

func TestRelevance_StrongOverlap(t *testing.T) {
	seg := model.Segment{ID: "s1", Text: "a red fox", Importance: 0.9}
	score := Relevance(seg, "The red fox jumps over the fence.")

	if score <= 0.5 {
		t.Errorf("Expected strong relevance above 0.5, got %v", score)
	}
	if score > 1.0 {
		t.Errorf("Relevance must not exceed 1.0, got %v", score)
	}
}

func TestRelevance_StopwordsOnlyFloor(t *testing.T) {
	seg := model.Segment{ID: "s1", Text: "the a of", Importance: 0.9}
	score := Relevance(seg, "Some generated sentence here.")

	if score != 0.1 {
		t.Errorf("Expected floor 0.1 for degenerate word set, got %v", score)
	}
}

func TestRelevance_NoOverlapLow(t *testing.T) {
	seg := model.Segment{ID: "s1", Text: "quantum zebra", Importance: 0.4}
	score := Relevance(seg, "Completely unrelated generated words.")

	if score > 0.1 {
		t.Errorf("Expected low relevance, got %v", score)
	}
}

func TestMapSentences_NormalizedScoresSumToOne(t *testing.T) {
	segments := []model.Segment{
		{ID: "s1", Text: "a red fox", Importance: 0.9},
		{ID: "s2", Text: "snowy forest", Importance: 0.7},
	}
	generated := "The red fox runs through the snowy forest. The fox stops to listen."

	mappings := MapSentences(generated, segments)
	if len(mappings) != 2 {
		t.Fatalf("Expected 2 mappings, got %d", len(mappings))
	}

	for _, m := range mappings {
		if len(m.ContributingSegments) == 0 {
			t.Errorf("Sentence %d has no contributing segments", m.SentenceIndex)
		}
		total := 0.0
		for _, score := range m.ConfidenceScores {
			total += score
		}
		if math.Abs(total-1.0) > 0.01 {
			t.Errorf("Sentence %d scores sum to %v, expected ~1.0", m.SentenceIndex, total)
		}
	}
}

func TestMapSentences_FallbackToBestSegment(t *testing.T) {
	segments := []model.Segment{
		{ID: "s1", Text: "quantum zebra", Importance: 0.4},
		{ID: "s2", Text: "plasma weasel", Importance: 0.4},
	}

	mappings := MapSentences("Nothing here relates at all.", segments)
	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}

	m := mappings[0]
	if len(m.ContributingSegments) != 1 {
		t.Fatalf("Expected single fallback segment, got %d", len(m.ContributingSegments))
	}
	if m.ConfidenceScores[m.ContributingSegments[0]] != 1.0 {
		t.Errorf("Expected fallback weight 1.0, got %v", m.ConfidenceScores[m.ContributingSegments[0]])
	}
}

func TestMapSentences_ContributingSortedByRelevance(t *testing.T) {
	segments := []model.Segment{
		{ID: "weak", Text: "distant mountains", Importance: 0.6},
		{ID: "strong", Text: "red fox", Importance: 0.9},
	}

	mappings := MapSentences("The red fox watches the distant mountains.", segments)
	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}

	m := mappings[0]
	for i := 1; i < len(m.ContributingSegments); i++ {
		prev := m.ConfidenceScores[m.ContributingSegments[i-1]]
		cur := m.ConfidenceScores[m.ContributingSegments[i]]
		if cur > prev {
			t.Errorf("Contributing segments not in descending order: %v then %v", prev, cur)
		}
	}
}

func TestMapSentences_NoSegments(t *testing.T) {
	mappings := MapSentences("A sentence with no segments to map.", nil)
	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	if len(mappings[0].ContributingSegments) != 0 {
		t.Errorf("Expected no contributing segments, got %v", mappings[0].ContributingSegments)
	}
}

func TestExplain_NonContributingSegmentZero(t *testing.T) {
	segments := []model.Segment{
		{ID: "hit", Text: "red fox", Importance: 0.9},
		{ID: "miss", Text: "quantum zebra", Importance: 0.4},
	}

	explanation := Explain("The red fox sleeps. The fox dreams of red things.", segments)

	if explanation.OverallSegmentImportance["miss"] != 0.0 {
		t.Errorf("Expected 0 importance for unmapped segment, got %v",
			explanation.OverallSegmentImportance["miss"])
	}
}

func TestExplain_StrongestSegmentNormalizedToOne(t *testing.T) {
	segments := []model.Segment{
		{ID: "s1", Text: "red fox", Importance: 0.9},
		{ID: "s2", Text: "snowy forest", Importance: 0.6},
	}

	explanation := Explain("The red fox crosses the snowy forest. The fox is quick.", segments)

	maxVal := 0.0
	for _, v := range explanation.OverallSegmentImportance {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal != 1.0 {
		t.Errorf("Expected strongest segment normalized to 1.0, got %v", maxVal)
	}
}

func TestExplain_EmptyTextNeutralConfidence(t *testing.T) {
	segments := []model.Segment{{ID: "s1", Text: "red fox", Importance: 0.9}}

	explanation := Explain("", segments)
	if explanation.ExplanationConfidence != 0.5 {
		t.Errorf("Expected neutral confidence 0.5 with no sentences, got %v",
			explanation.ExplanationConfidence)
	}
	if len(explanation.SentenceMappings) != 0 {
		t.Errorf("Expected no mappings for empty text, got %d", len(explanation.SentenceMappings))
	}
}
