package segment

import (
	"math"
	"regexp"
	"strings"

	"github.com/promptlens/promptlens/internal/model"
)

// categoryPatterns holds the read-only keyword tables used for classification.
// Patterns are word-bounded and case-insensitive. Categories are scored in
// model.Categories order, so the first category reaching the maximum match
// count wins ties; unknown has no patterns and applies only when nothing
// matches.
var categoryPatterns = map[model.Category][]*regexp.Regexp{
	model.CategorySubject: {
		regexp.MustCompile(`(?i)\b(person|people|man|woman|child|animal|dog|cat|bird|car|house|building|tree|flower|mountain|ocean|sky|robot|alien|creature|character|hero|villain)\b`),
		regexp.MustCompile(`(?i)\b(portrait|landscape|scene|view|picture|photo|image|painting|illustration|artwork)\b`),
	},
	model.CategoryAction: {
		regexp.MustCompile(`(?i)\b(running|walking|sitting|standing|flying|swimming|dancing|fighting|eating|sleeping|working|playing|talking|writing|reading|creating|making|building|destroying)\b`),
		regexp.MustCompile(`(?i)\b(run|walk|sit|stand|fly|swim|dance|fight|eat|sleep|work|play|talk|write|read|create|make|build|destroy)\b`),
		regexp.MustCompile(`(?i)\b(action|movement|motion|activity)\b`),
	},
	model.CategoryStyle: {
		regexp.MustCompile(`(?i)\b(realistic|photorealistic|cartoon|anime|abstract|impressionist|surreal|minimalist|detailed|artistic|digital|watercolor|oil\s*painting|sketch|3d|rendered|cinematic|dramatic)\b`),
		regexp.MustCompile(`(?i)\b(style|aesthetic|look|appearance|design|art\s*style|visual\s*style)\b`),
		regexp.MustCompile(`(?i)\b(high\s*quality|4k|8k|hd|ultra|masterpiece|professional|beautiful|stunning|gorgeous)\b`),
	},
	model.CategoryContext: {
		regexp.MustCompile(`(?i)\b(background|setting|environment|location|place|scene|atmosphere|ambiance|mood|time|day|night|morning|evening|sunset|sunrise|weather|season|indoor|outdoor)\b`),
		regexp.MustCompile(`(?i)\b(in|at|on|during|within|inside|outside|surrounded\s*by|against)\b`),
		regexp.MustCompile(`(?i)\b(forest|city|beach|desert|space|underwater|mountains|countryside|urban|rural)\b`),
	},
	model.CategoryModifier: {
		regexp.MustCompile(`(?i)\b(very|extremely|slightly|somewhat|more|less|most|least|quite|rather|fairly|pretty|highly)\b`),
		regexp.MustCompile(`(?i)\b(bright|dark|light|heavy|soft|hard|smooth|rough|large|small|big|tiny|huge|massive|colorful|vibrant|muted|pastel)\b`),
		regexp.MustCompile(`(?i)\b(with|without|using|featuring|including|containing|showing|displaying)\b`),
	},
}

// unknownConfidence is the fixed confidence assigned when no pattern matches
const unknownConfidence = 0.5

// Classify assigns a category and confidence to a segment text by counting
// keyword pattern matches per category. The category with the most matches
// wins; when nothing matches, the segment is unknown with a fixed default
// confidence. Confidence saturates at 0.95 as match density approaches the
// word count.
func Classify(text string) (model.Category, float64) {
	best := model.CategoryUnknown
	maxScore := 0

	for _, category := range model.Categories {
		score := 0
		for _, pattern := range categoryPatterns[category] {
			score += len(pattern.FindAllString(text, -1))
		}
		if score > maxScore {
			maxScore = score
			best = category
		}
	}

	if maxScore == 0 {
		return model.CategoryUnknown, unknownConfidence
	}

	words := len(strings.Fields(text))
	if words < 1 {
		words = 1
	}
	confidence := math.Min(0.95, 0.5+float64(maxScore)/float64(words)*0.5)

	return best, confidence
}
