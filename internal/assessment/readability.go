package assessment

import (
	"regexp"
	"strings"
)

var (
	bulletLineRe   = regexp.MustCompile(`^\s*(?:[-*\x{2022}]|\d+\.|[a-z]\))\s+`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]+`)
	wordRe         = regexp.MustCompile(`[A-Za-z']+`)
	vowelGroupRe   = regexp.MustCompile(`[aeiouy]+`)
	terminalMarkRe = regexp.MustCompile(`[.!?:;]$`)
)

// normalizeBullets appends a terminal period to bullet-style lines that lack
// one. Without this, a grade-level estimator reads consecutive bullets as a
// single run-on sentence and the grade shoots up.
func normalizeBullets(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			continue
		}
		if bulletLineRe.MatchString(trimmed) && !terminalMarkRe.MatchString(trimmed) {
			lines[i] = trimmed + "."
		}
	}
	return strings.Join(lines, "\n")
}

// countSyllables estimates syllables in a word by counting vowel groups,
// trimming a trailing silent e. Every word has at least one syllable.
func countSyllables(word string) int {
	w := strings.ToLower(word)
	w = strings.TrimSuffix(w, "'s")
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		w = strings.TrimSuffix(w, "e")
	}
	n := len(vowelGroupRe.FindAllString(w, -1))
	if n < 1 {
		return 1
	}
	return n
}

// fleschKincaidGrade computes the Flesch-Kincaid grade level of text:
// 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59.
func fleschKincaidGrade(text string) float64 {
	words := wordRe.FindAllString(text, -1)
	if len(words) == 0 {
		return 0
	}

	sentences := 0
	for _, chunk := range sentenceEndRe.Split(text, -1) {
		if strings.TrimSpace(chunk) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordCount := float64(len(words))
	return 0.39*(wordCount/float64(sentences)) + 11.8*(float64(syllables)/wordCount) - 15.59
}

// ReadabilityScore maps text to a 0-100 score targeting a 6th-8th grade
// reading level. Empty or whitespace-only text scores 0.
func ReadabilityScore(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	return scoreForGrade(fleschKincaidGrade(normalizeBullets(text)))
}

// scoreForGrade maps a grade level onto the 0-100 readability band.
func scoreForGrade(grade float64) float64 {
	switch {
	case grade >= 6 && grade <= 8:
		return 100
	case grade < 6:
		// Simpler text is still good, minor penalty for being too simple
		return max(80, 100-(6-grade)*3)
	default:
		return max(0, 100-(grade-8)*8)
	}
}
