package records

import (
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/study-service/internal/extractor"
	"github.com/SAP-F-2025/study-service/internal/validator"
)

// DecodeError reports an extracted document that does not form a valid record.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s record: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder turns extracted documents into validated records.
type Decoder struct {
	validator *validator.Validator
}

func NewDecoder(v *validator.Validator) *Decoder {
	if v == nil {
		v = validator.New()
	}
	return &Decoder{validator: v}
}

// Decode normalizes doc for kind, decodes it and validates the result.
func (d *Decoder) Decode(kind Kind, doc extractor.Document) (Record, error) {
	record, err := newRecord(kind)
	if err != nil {
		return nil, err
	}

	normalized, err := normalize(kind, doc)
	if err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}

	if err := d.Validate(record); err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	return record, nil
}

// Validate checks struct tags and record rules.
func (d *Decoder) Validate(record Record) error {
	return d.validator.Validate(record)
}

// Unmarshal restores a stored record payload without re-validating it.
func Unmarshal(kind Kind, payload []byte) (Record, error) {
	record, err := newRecord(kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("unmarshal %s record: %w", kind, err)
	}
	return record, nil
}

func newRecord(kind Kind) (Record, error) {
	switch kind {
	case KindFlashcards:
		return &FlashcardSet{}, nil
	case KindQuiz:
		return &Quiz{}, nil
	case KindMatching:
		return &MatchingSet{}, nil
	case KindSummary:
		return &Summary{}, nil
	case KindStudyGuide:
		return &StudyGuide{}, nil
	case KindEvaluation:
		return &Evaluation{}, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}
