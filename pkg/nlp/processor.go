package nlp

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Fold prepares text for substring matching: Unicode NFC composition
// followed by lower-casing. Punctuation and spacing are left alone so
// patterns may contain them.
func Fold(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// Evaluate sums the rune length of every pattern found in the already
// folded utterance. Longer, more specific phrases therefore outweigh short
// ones.
func Evaluate(intent Intent, folded string) IntentResult {
	result := IntentResult{Intent: intent.ID}
	for _, pattern := range intent.Patterns {
		p := Fold(pattern)
		if p == "" || !strings.Contains(folded, p) {
			continue
		}
		n := utf8.RuneCountInString(p)
		result.Score += n
		result.Matches = append(result.Matches, MatchResult{Pattern: pattern, Score: n})
	}
	return result
}

// Rank evaluates every intent and returns the non-zero results in table
// order.
func Rank(table Table, utterance string) []IntentResult {
	folded := Fold(utterance)

	var results []IntentResult
	for _, intent := range table {
		if result := Evaluate(intent, folded); result.Score > 0 {
			results = append(results, result)
		}
	}
	return results
}

// Top returns the result with the strictly highest score. Given results in
// table order, a tie goes to the intent that appears first in the table.
// ok is false when nothing scored above zero.
func Top(results []IntentResult) (best IntentResult, ok bool) {
	for _, result := range results {
		if result.Score > best.Score {
			best = result
		}
	}
	return best, best.Score > 0
}

// ContainsAny reports whether the folded text contains any of the phrases.
func ContainsAny(folded string, phrases ...string) bool {
	for _, p := range phrases {
		if f := Fold(p); f != "" && strings.Contains(folded, f) {
			return true
		}
	}
	return false
}
