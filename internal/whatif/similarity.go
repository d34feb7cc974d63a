package whatif

import "strings"

// Ratio computes a Ratcliff–Obershelp similarity between two strings in
// [0,1]: twice the number of matching characters divided by the total
// length, where matches are found by recursively anchoring on the longest
// common block. Identical strings score 1; the score decreases with edit
// distance.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	return 2.0 * float64(matchingChars(a, b)) / float64(len(a)+len(b))
}

// matchingChars counts the characters covered by the longest common block
// and, recursively, by the blocks on either side of it
func matchingChars(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}

	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common substring of a and b, returning
// its start offsets and length
func longestCommonBlock(a, b string) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0

	// runs[j] is the length of the common suffix ending at a[i-1], b[j-1]
	runs := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		next := make([]int, len(b)+1)
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := runs[j] + 1
			next[j+1] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		runs = next
	}

	return bestA, bestB, bestSize
}

// JaccardWords computes word-set overlap between two texts: the size of the
// intersection over the size of the union of their lowercased word sets.
// Two empty texts count as identical.
func JaccardWords(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)

	union := make(map[string]bool, len(wordsA)+len(wordsB))
	common := 0
	for w := range wordsA {
		union[w] = true
		if wordsB[w] {
			common++
		}
	}
	for w := range wordsB {
		union[w] = true
	}

	if len(union) == 0 {
		return 1.0
	}
	return float64(common) / float64(len(union))
}

func wordSet(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = true
	}
	return words
}
