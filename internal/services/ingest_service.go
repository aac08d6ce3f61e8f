package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/ledongthuc/pdf"
)

// MaxUploadBytes bounds uploaded study material.
const MaxUploadBytes = 10 << 20

type ingestService struct {
	logger *slog.Logger
}

func NewIngestService(logger *slog.Logger) IngestService {
	return &ingestService{logger: logger}
}

// ExtractText reads a .txt or .pdf upload. Invalid UTF-8 in text files is dropped.
func (s *ingestService) ExtractText(ctx context.Context, reader io.Reader, size int64, filename string) (*Document, error) {
	if size > MaxUploadBytes {
		return nil, ValidationErrors{*NewValidationError("file", fmt.Sprintf("must be at most %d bytes", MaxUploadBytes), size)}
	}

	data, err := io.ReadAll(io.LimitReader(reader, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ValidationErrors{*NewValidationError("file", fmt.Sprintf("must be at most %d bytes", MaxUploadBytes), len(data))}
	}

	var text string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".txt", ".md":
		text = strings.ToValidUTF8(string(data), "")
	case ".pdf":
		text, err = pdfText(data)
		if err != nil {
			return nil, ValidationErrors{*NewValidationError("file", "cannot read PDF: "+err.Error(), filename)}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	doc := &Document{
		Filename:  filepath.Base(filename),
		Text:      text,
		CharCount: utf8.RuneCountInString(text),
		WordCount: utils.WordCount(text),
	}
	s.logger.InfoContext(ctx, "Upload converted to text", "filename", doc.Filename, "chars", doc.CharCount, "words", doc.WordCount)
	return doc, nil
}

func pdfText(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
