package segment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/promptlens/promptlens/internal/model"
)

// splitPattern matches the boundaries a prompt is segmented at: major
// punctuation and the connective words that typically introduce a new
// semantic unit.
var splitPattern = regexp.MustCompile(`[,;:]|\s+and\s+|\s+with\s+|\s+in\s+|\s+on\s+|\s+at\s+`)

// Segmenter splits a prompt into classified, scored segments
type Segmenter struct {
	minWords int
}

// NewSegmenter creates a segmenter. minWords is the threshold below which
// segments are merged into their following neighbor (default 3).
func NewSegmenter(minWords int) *Segmenter {
	if minWords <= 0 {
		minWords = 3
	}
	return &Segmenter{minWords: minWords}
}

// rawFragment is a located but not yet classified piece of the prompt
type rawFragment struct {
	text  string
	start int
}

// Segment splits the prompt at punctuation/connective boundaries, classifies
// and scores each fragment, merges fragments that are too short to stand
// alone, and returns the result sorted by start offset.
func (s *Segmenter) Segment(prompt string) []model.Segment {
	fragments := splitFragments(prompt)

	if len(fragments) == 0 {
		trimmed := strings.TrimSpace(prompt)
		fragments = []rawFragment{{text: trimmed, start: 0}}
	}

	segments := make([]model.Segment, 0, len(fragments))
	for _, frag := range fragments {
		text := strings.Trim(frag.text, " ,;:")
		if text == "" {
			continue
		}

		// Re-locate after trimming enclosing punctuation; the search starts
		// slightly before the fragment offset to tolerate trimmed prefixes.
		from := frag.start - 5
		if from < 0 {
			from = 0
		}
		start := indexFrom(prompt, text, from)
		if start < 0 {
			start = frag.start
		}

		category, confidence := Classify(text)
		segments = append(segments, model.Segment{
			ID:         uuid.NewString(),
			Text:       text,
			Start:      start,
			End:        start + len(text),
			Category:   category,
			Confidence: confidence,
			Importance: Importance(text, prompt, category),
		})
	}

	merged := Merge(segments, s.minWords)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})

	return merged
}

// splitFragments cuts the prompt at every delimiter match and re-attaches
// each delimiter to the fragment that follows it, so a connective stays with
// the unit it introduces. Offsets are located from a monotonically advancing
// cursor; when a fragment cannot be found from the cursor, the cursor
// position itself is used as an approximate offset.
func splitFragments(prompt string) []rawFragment {
	parts := splitKeepDelimiters(prompt)

	var fragments []rawFragment
	cursor := 0

	i := 0
	for i < len(parts) {
		part := parts[i]
		if strings.TrimSpace(part.text) == "" {
			i++
			continue
		}

		text := part.text
		if part.delimiter && i+1 < len(parts) && strings.TrimSpace(parts[i+1].text) != "" {
			// Attach the delimiter to the fragment that follows it
			text = part.text + parts[i+1].text
			i += 2
		} else {
			i++
		}

		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		start := indexFrom(prompt, trimmed, cursor)
		if start < 0 {
			start = cursor
		}
		fragments = append(fragments, rawFragment{text: trimmed, start: start})
		cursor = start + len(trimmed)
	}

	return fragments
}

// part is a slice of the prompt that is either a delimiter match or the text
// between two delimiter matches
type part struct {
	text      string
	delimiter bool
}

// splitKeepDelimiters splits the prompt on splitPattern while keeping the
// delimiter matches in place, preserving original order
func splitKeepDelimiters(prompt string) []part {
	matches := splitPattern.FindAllStringIndex(prompt, -1)

	var parts []part
	last := 0
	for _, m := range matches {
		if m[0] > last {
			parts = append(parts, part{text: prompt[last:m[0]]})
		}
		parts = append(parts, part{text: prompt[m[0]:m[1]], delimiter: true})
		last = m[1]
	}
	if last < len(prompt) {
		parts = append(parts, part{text: prompt[last:]})
	}

	return parts
}

// indexFrom returns the absolute offset of the first occurrence of sub at or
// after from, or -1 when not found
func indexFrom(s, sub string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.Index(s[from:], sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}
