package whatif

import (
	"testing"

	"github.com/promptlens/promptlens/internal/model"
)

func seg(id, text string, importance float64) model.Segment {
	return model.Segment{ID: id, Text: text, Importance: importance}
}

func changesByType(changes []model.SegmentChange, kind model.ChangeType) []model.SegmentChange {
	var out []model.SegmentChange
	for _, c := range changes {
		if c.ChangeType == kind {
			out = append(out, c)
		}
	}
	return out
}

func TestDetectChanges_SelfDiffAllUnchanged(t *testing.T) {
	segments := []model.Segment{
		seg("1", "a cyberpunk city", 0.9),
		seg("2", "rainy night", 0.6),
	}

	d := NewDetector(0, 0)
	changes := d.DetectChanges(segments, segments)

	if len(changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d", len(changes))
	}
	for _, c := range changes {
		if c.ChangeType != model.ChangeUnchanged {
			t.Errorf("Expected unchanged, got %s for %q", c.ChangeType, c.OriginalText)
		}
		if c.ImpactScore != 0.0 {
			t.Errorf("Expected 0 impact for unchanged segment, got %v", c.ImpactScore)
		}
	}
}

func TestDetectChanges_ExactMatchCaseInsensitive(t *testing.T) {
	d := NewDetector(0, 0)
	changes := d.DetectChanges(
		[]model.Segment{seg("1", "A Red Fox", 0.9)},
		[]model.Segment{seg("2", "a red fox", 0.9)},
	)

	if len(changes) != 1 || changes[0].ChangeType != model.ChangeUnchanged {
		t.Fatalf("Expected single unchanged change, got %+v", changes)
	}
}

func TestDetectChanges_Removed(t *testing.T) {
	d := NewDetector(0, 0)
	changes := d.DetectChanges(
		[]model.Segment{seg("1", "a cyberpunk city", 0.9)},
		nil,
	)

	if len(changes) != 1 {
		t.Fatalf("Expected 1 change, got %d", len(changes))
	}
	if changes[0].ChangeType != model.ChangeRemoved {
		t.Errorf("Expected removed, got %s", changes[0].ChangeType)
	}
	if changes[0].ImpactScore != 0.9 {
		t.Errorf("Expected impact = importance 0.9, got %v", changes[0].ImpactScore)
	}
	if changes[0].ModifiedText != "" {
		t.Errorf("Expected no modified text for removal, got %q", changes[0].ModifiedText)
	}
}

func TestDetectChanges_Added(t *testing.T) {
	d := NewDetector(0, 0)
	changes := d.DetectChanges(
		nil,
		[]model.Segment{seg("1", "golden hour lighting", 0.7)},
	)

	if len(changes) != 1 {
		t.Fatalf("Expected 1 change, got %d", len(changes))
	}
	if changes[0].ChangeType != model.ChangeAdded {
		t.Errorf("Expected added, got %s", changes[0].ChangeType)
	}
	if changes[0].ImpactScore != 0.7 {
		t.Errorf("Expected impact = importance 0.7, got %v", changes[0].ImpactScore)
	}
	if changes[0].OriginalText != "" {
		t.Errorf("Expected no original text for addition, got %q", changes[0].OriginalText)
	}
}

func TestDetectChanges_Modified(t *testing.T) {
	d := NewDetector(0, 0)
	changes := d.DetectChanges(
		[]model.Segment{seg("1", "a cat sitting quietly", 0.9)},
		[]model.Segment{seg("2", "a dog sitting quietly", 0.9)},
	)

	if len(changes) != 1 {
		t.Fatalf("Expected 1 change, got %d: %+v", len(changes), changes)
	}
	c := changes[0]
	if c.ChangeType != model.ChangeModified {
		t.Fatalf("Expected modified, got %s", c.ChangeType)
	}
	if c.OriginalText != "a cat sitting quietly" || c.ModifiedText != "a dog sitting quietly" {
		t.Errorf("Unexpected texts: %q -> %q", c.OriginalText, c.ModifiedText)
	}
	if c.ImpactScore <= 0 || c.ImpactScore >= 0.9 {
		t.Errorf("Expected modification impact in (0, importance), got %v", c.ImpactScore)
	}
}

func TestDetectChanges_LowSimilarityBecomesRemovedAndAdded(t *testing.T) {
	// "a cat" vs "a dog" score 0.4, below the default 0.5 modification
	// threshold
	d := NewDetector(0, 0)
	changes := d.DetectChanges(
		[]model.Segment{seg("1", "a cat", 0.9)},
		[]model.Segment{seg("2", "a dog", 0.9)},
	)

	if len(changes) != 2 {
		t.Fatalf("Expected removed+added pair, got %d: %+v", len(changes), changes)
	}
	if len(changesByType(changes, model.ChangeRemoved)) != 1 {
		t.Error("Expected one removed change")
	}
	if len(changesByType(changes, model.ChangeAdded)) != 1 {
		t.Error("Expected one added change")
	}
}

func TestDetectChanges_LooseThresholdTreatsCatDogAsModified(t *testing.T) {
	d := NewDetector(0.3, 0.35)
	changes := d.DetectChanges(
		[]model.Segment{seg("1", "a cat", 0.9)},
		[]model.Segment{seg("2", "a dog", 0.9)},
	)

	if len(changes) != 1 {
		t.Fatalf("Expected single modified change, got %d: %+v", len(changes), changes)
	}
	if changes[0].ChangeType != model.ChangeModified {
		t.Errorf("Expected modified, got %s", changes[0].ChangeType)
	}
	// importance * (1 - 0.4)
	if changes[0].ImpactScore != 0.54 {
		t.Errorf("Expected impact 0.54, got %v", changes[0].ImpactScore)
	}
}

func TestDetectChanges_ModifiedTargetNotDoubleCounted(t *testing.T) {
	d := NewDetector(0.3, 0.35)
	changes := d.DetectChanges(
		[]model.Segment{seg("1", "a cat", 0.9)},
		[]model.Segment{seg("2", "a dog", 0.9)},
	)

	if added := changesByType(changes, model.ChangeAdded); len(added) != 0 {
		t.Errorf("Modification target should not also appear as added: %+v", added)
	}
}

func TestDetectChanges_MixedEdit(t *testing.T) {
	original := []model.Segment{
		seg("1", "a cyberpunk city", 0.9),
		seg("2", "rainy night", 0.6),
	}
	modified := []model.Segment{
		seg("3", "a cyberpunk city", 0.9),
		seg("4", "golden hour lighting", 0.7),
	}

	d := NewDetector(0, 0)
	changes := d.DetectChanges(original, modified)

	if len(changesByType(changes, model.ChangeUnchanged)) != 1 {
		t.Errorf("Expected 1 unchanged, got %+v", changes)
	}
	if len(changesByType(changes, model.ChangeRemoved)) != 1 {
		t.Errorf("Expected 1 removed, got %+v", changes)
	}
	if len(changesByType(changes, model.ChangeAdded)) != 1 {
		t.Errorf("Expected 1 added, got %+v", changes)
	}
}

func TestDetectChanges_EmptyBoth(t *testing.T) {
	d := NewDetector(0, 0)
	if changes := d.DetectChanges(nil, nil); len(changes) != 0 {
		t.Errorf("Expected no changes, got %+v", changes)
	}
}

func TestNewDetector_Defaults(t *testing.T) {
	d := NewDetector(0, 0)
	if d.considerThreshold != 0.3 || d.modifiedThreshold != 0.5 {
		t.Errorf("Expected defaults 0.3/0.5, got %v/%v", d.considerThreshold, d.modifiedThreshold)
	}
}
