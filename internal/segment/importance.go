package segment

import (
	"math"
	"strings"

	"github.com/promptlens/promptlens/internal/model"
)

// categoryWeights is the fixed base importance per category
var categoryWeights = map[model.Category]float64{
	model.CategorySubject:  0.9,
	model.CategoryAction:   0.8,
	model.CategoryStyle:    0.7,
	model.CategoryContext:  0.6,
	model.CategoryModifier: 0.5,
	model.CategoryUnknown:  0.4,
}

// Importance computes the [0,1] salience of a segment within its prompt.
// The base category weight is boosted by early position (up to +0.2) and by
// relative length (up to +0.15); both boosts are non-negative, so the result
// never drops below the category floor.
func Importance(text, prompt string, category model.Category) float64 {
	base, ok := categoryWeights[category]
	if !ok {
		base = 0.5
	}

	promptLen := len(prompt)
	if promptLen < 1 {
		promptLen = 1
	}

	position := strings.Index(prompt, text)
	if position < 0 {
		position = 0
	}
	positionBoost := (1 - float64(position)/float64(promptLen)) * 0.2

	lengthBoost := math.Min(float64(len(text))/float64(promptLen)*0.3, 0.15)

	return round3(math.Min(1.0, base+positionBoost+lengthBoost))
}

// round3 rounds to 3 decimal places
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
