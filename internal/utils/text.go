package utils

import (
	"strings"
	"unicode/utf8"
)

// WordCount counts whitespace separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CharCount counts runes.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ReductionPercent is how much shorter summary is than original, in whole percent.
// It is negative when the summary is longer.
func ReductionPercent(originalWords, summaryWords int) int {
	if originalWords < 1 {
		originalWords = 1
	}
	return (originalWords - summaryWords) * 100 / originalWords
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
