package records

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/study-service/internal/extractor"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

// listKeys name the main item list of each kind.
var listKeys = map[Kind]string{
	KindFlashcards: "flashcards",
	KindQuiz:       "questions",
	KindMatching:   "pairs",
	KindStudyGuide: "outlines",
}

// normalize fills defaults the model commonly omits and coerces loosely typed
// values. It works on a deep copy of doc.
func normalize(kind Kind, doc extractor.Document) (map[string]any, error) {
	out, err := clone(doc)
	if err != nil {
		return nil, err
	}

	if key, ok := listKeys[kind]; ok {
		if _, present := out[key]; !present {
			if items, ok := out[extractor.ItemsKey].([]any); ok {
				out[key] = items
			}
		}
	}

	if kind != KindEvaluation {
		if title, _ := out["title"].(string); strings.TrimSpace(title) == "" {
			out["title"] = kind.DefaultTitle()
		}
	}

	switch kind {
	case KindFlashcards, KindMatching:
		numberItems(out[listKeys[kind]])
	case KindQuiz:
		numberItems(out["questions"])
		for _, q := range objects(out["questions"]) {
			normalizeOptions(q)
		}
	case KindStudyGuide:
		numberItems(out["outlines"])
		numberItems(out["key_topics"])
		numberItems(out["facts"])
		for _, topic := range objects(out["key_topics"]) {
			level, _ := topic["importance"].(string)
			level = strings.ToLower(strings.TrimSpace(level))
			if level == "" {
				level = "medium"
			}
			topic["importance"] = level
		}
	case KindSummary:
		if terms, ok := out["terms"].(map[string]any); ok {
			out["terms"] = termList(terms)
		}
		delete(out, "word_count_original")
		delete(out, "word_count_summary")
		delete(out, "reduction_percent")
	case KindEvaluation:
		out["is_correct"] = coerceBool(out["is_correct"])
		out["score"] = normalizeScore(out["score"])
	}

	return out, nil
}

func clone(doc extractor.Document) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func objects(v any) []map[string]any {
	items, _ := v.([]any)
	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

// numberItems keeps the model's ids when they are distinct positive integers
// and otherwise numbers every item by its 1-based position.
func numberItems(v any) {
	items, _ := v.([]any)
	seen := make(map[int]bool, len(items))
	keep := true
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, ok := positiveID(m["id"])
		if !ok || seen[id] {
			keep = false
			break
		}
		seen[id] = true
	}
	if keep {
		return
	}
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			m["id"] = i + 1
		}
	}
}

func positiveID(v any) (int, bool) {
	switch id := v.(type) {
	case float64:
		if id >= 1 && id == float64(int(id)) {
			return int(id), true
		}
	case int:
		if id >= 1 {
			return id, true
		}
	}
	return 0, false
}

func normalizeOptions(question map[string]any) {
	for i, option := range objects(question["options"]) {
		label, _ := option["label"].(string)
		label = strings.ToUpper(strings.TrimSpace(strings.TrimRight(label, ").:")))
		if label == "" && i < len(validator.OptionLabels) {
			label = validator.OptionLabels[i]
		}
		option["label"] = label
		option["is_correct"] = coerceBool(option["is_correct"])
	}
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	case float64:
		return b != 0
	}
	return false
}

// normalizeScore reads the score as a fraction, accepting percentages up to 100.
func normalizeScore(v any) any {
	var score float64
	switch s := v.(type) {
	case float64:
		score = s
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
		if err != nil {
			return v
		}
		score = parsed
	default:
		return v
	}
	if score > 1 && score <= 100 {
		score /= 100
	}
	return score
}

func termList(terms map[string]any) []any {
	keys := make([]string, 0, len(terms))
	for k := range terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]any, 0, len(keys))
	for _, k := range keys {
		definition, _ := terms[k].(string)
		list = append(list, map[string]any{"term": k, "definition": definition})
	}
	return list
}
