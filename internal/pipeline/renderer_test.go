package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/promptlens/promptlens/internal/model"
)

func sampleAnalysis() *model.Analysis {
	return &model.Analysis{
		Prompt: "a cyberpunk city, rainy night",
		Segments: []model.Segment{
			{ID: "s1", Text: "a cyberpunk city", Category: model.CategoryContext, Confidence: 0.67, Importance: 0.92},
			{ID: "s2", Text: "rainy night", Category: model.CategoryContext, Confidence: 0.75, Importance: 0.71},
		},
		AnalyzedAt: time.Now().UTC(),
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.json")

	r := NewRenderer(false)
	if err := r.RenderJSON(sampleAnalysis(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}

	var decoded model.Analysis
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if decoded.Prompt != "a cyberpunk city, rainy night" {
		t.Errorf("Unexpected prompt in rendered JSON: %q", decoded.Prompt)
	}
}

func TestRenderAnalysisMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.md")

	r := NewRenderer(true)
	if err := r.RenderAnalysisMarkdown(sampleAnalysis(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "# Prompt Analysis") {
		t.Error("Expected report heading")
	}
	if !strings.Contains(content, "a cyberpunk city") {
		t.Error("Expected segment text in table")
	}
	if !strings.Contains(content, "Generated by promptlens") {
		t.Error("Expected footer when enabled")
	}
}

func TestRenderAnalysisMarkdown_NoFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.md")

	r := NewRenderer(false)
	if err := r.RenderAnalysisMarkdown(sampleAnalysis(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by promptlens") {
		t.Error("Expected no footer when disabled")
	}
}

func TestRenderWhatIfMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whatif.md")
	report := &model.WhatIfReport{
		OriginalPrompt: "a cat on a sofa",
		ModifiedPrompt: "a dog on a sofa",
		GenerationType: model.GenerationText,
		Changes: []model.SegmentChange{
			{SegmentID: "1", ChangeType: model.ChangeModified, OriginalText: "a cat", ModifiedText: "a dog", ImpactScore: 0.54},
		},
		Impact: model.ImpactSummary{
			TotalSegments:    1,
			SegmentsModified: 1,
			TotalImpact:      0.54,
			ChangeRatio:      1.0,
			ChangeMagnitude:  model.MagnitudeSignificant,
		},
		Metrics: model.ComparisonMetrics{TextSimilarity: 0.9},
	}

	r := NewRenderer(false)
	if err := r.RenderWhatIfMarkdown(report, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "modified") {
		t.Error("Expected change type in table")
	}
	if !strings.Contains(content, "significant") {
		t.Error("Expected magnitude in summary")
	}
}

func TestEscapeTableCell(t *testing.T) {
	if got := escapeTableCell("a | b"); got != "a \\| b" {
		t.Errorf("Expected pipes escaped, got %q", got)
	}
}
