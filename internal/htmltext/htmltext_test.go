package htmltext

import (
	"strings"
	"testing"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"<p>Hello world.</p>", true},
		{"<!DOCTYPE html><html></html>", true},
		{"plain text with no markup", false},
		{"3 < 5 and 7 > 2", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsHTML(tt.content); got != tt.want {
			t.Errorf("IsHTML(%q) = %v, expected %v", tt.content, got, tt.want)
		}
	}
}

func TestVisibleText_Basic(t *testing.T) {
	text, err := VisibleText("<html><body><p>Hello world.</p></body></html>")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "Hello world." {
		t.Errorf("Expected 'Hello world.', got %q", text)
	}
}

func TestVisibleText_SkipsScriptAndStyle(t *testing.T) {
	input := `<html><head><style>body { color: red; }</style></head>
<body><p>Visible.</p><script>var hidden = 1;</script><noscript>also hidden</noscript></body></html>`

	text, err := VisibleText(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(text, "hidden") || strings.Contains(text, "color") {
		t.Errorf("Expected script/style content stripped, got %q", text)
	}
	if !strings.Contains(text, "Visible.") {
		t.Errorf("Expected visible text kept, got %q", text)
	}
}

func TestVisibleText_JoinsNodesWithSpaces(t *testing.T) {
	text, err := VisibleText("<div><p>First sentence.</p><p>Second sentence.</p></div>")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "First sentence. Second sentence." {
		t.Errorf("Expected sentences joined with a space, got %q", text)
	}
}
