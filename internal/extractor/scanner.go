package extractor

import "sort"

// balancedSpans returns every top-level span delimited by open/close in text.
// Delimiters inside JSON string literals are ignored once a span has started,
// so prose before the payload cannot flip the string state.
func balancedSpans(text string, open, close byte) []string {
	var (
		spans    []string
		depth    int
		start    = -1
		inString bool
		escape   bool
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if depth > 0 {
			if escape {
				escape = false
				continue
			}
			if inString {
				switch ch {
				case '\\':
					escape = true
				case '"':
					inString = false
				}
				continue
			}
			if ch == '"' {
				inString = true
				continue
			}
		}

		switch ch {
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				spans = append(spans, text[start:i+1])
				start = -1
			}
		}
	}

	return spans
}

// greedySpan returns the text from the first open to the last close delimiter.
func greedySpan(text string, open, close byte) (string, bool) {
	first := -1
	for i := 0; i < len(text); i++ {
		if text[i] == open {
			first = i
			break
		}
	}
	if first < 0 {
		return "", false
	}
	for i := len(text) - 1; i > first; i-- {
		if text[i] == close {
			return text[first : i+1], true
		}
	}
	return "", false
}

// candidates merges balanced spans and the greedy span, largest first.
// Equal lengths keep their order of appearance.
func candidates(text string, open, close byte) []string {
	spans := balancedSpans(text, open, close)
	if greedy, ok := greedySpan(text, open, close); ok {
		duplicate := false
		for _, s := range spans {
			if s == greedy {
				duplicate = true
				break
			}
		}
		if !duplicate {
			spans = append(spans, greedy)
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return len(spans[i]) > len(spans[j])
	})
	return spans
}
