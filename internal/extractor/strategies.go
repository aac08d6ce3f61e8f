package extractor

import (
	"regexp"
	"strings"
)

// GeneratedContentTitle titles flashcards rebuilt from Q/A markers.
const GeneratedContentTitle = "Generated Content"

var (
	labeledFencePattern = regexp.MustCompile("(?is)`{3}json\\s*(.*?)\\s*`{3}")
	fencePattern        = regexp.MustCompile("(?s)`{3}[A-Za-z0-9_+-]*\\s*(.*?)\\s*`{3}")
	qaMarkerPattern     = regexp.MustCompile(`(?i)\b(Q\d+|Question(?:\s*\d+)?|A\d+|Answer(?:\s*\d+)?)\b\s*[:.]?`)
)

// DefaultStrategies returns the recovery chain from strictest to loosest.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "direct", Apply: direct},
		{Name: "labeled_fence", Apply: fenced(labeledFencePattern)},
		{Name: "fence", Apply: fenced(fencePattern)},
		{Name: "object_scan", Apply: scan('{', '}', decodeObject)},
		{Name: "array_scan", Apply: scan('[', ']', decodeArray)},
		{Name: "qa_heuristic", Apply: questionAnswerPairs},
	}
}

func direct(text string) (Document, bool) {
	return decode(text)
}

func fenced(pattern *regexp.Regexp) func(string) (Document, bool) {
	return func(text string) (Document, bool) {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if doc, ok := decode(match[1]); ok {
				return doc, true
			}
		}
		return nil, false
	}
}

// scan tries every delimited candidate, largest first, each once as-is and
// once with line breaks flattened.
func scan(open, close byte, parse func(string) (Document, bool)) func(string) (Document, bool) {
	return func(text string) (Document, bool) {
		for _, candidate := range candidates(text, open, close) {
			if doc, ok := parse(candidate); ok {
				return doc, true
			}
			if doc, ok := parse(withoutLineBreaks(candidate)); ok {
				return doc, true
			}
		}
		return nil, false
	}
}

// questionAnswerPairs rebuilds a flashcard set from "Q1:"/"A1:" style prose.
func questionAnswerPairs(text string) (Document, bool) {
	markers := qaMarkerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(markers) == 0 {
		return nil, false
	}

	var questions, answers []string
	for i, m := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		if body == "" {
			continue
		}

		label := strings.ToLower(text[m[2]:m[3]])
		if strings.HasPrefix(label, "q") {
			questions = append(questions, body)
		} else {
			answers = append(answers, body)
		}
	}

	n := min(len(questions), len(answers))
	if n == 0 {
		return nil, false
	}

	cards := make([]any, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, map[string]any{
			"id":       i + 1,
			"question": questions[i],
			"answer":   answers[i],
		})
	}

	return Document{
		"title":       GeneratedContentTitle,
		"flashcards":  cards,
		"total_count": n,
	}, true
}
