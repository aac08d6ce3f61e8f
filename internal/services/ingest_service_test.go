package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestService_ExtractText(t *testing.T) {
	ctx := context.Background()
	service := NewIngestService(discardLogger())

	t.Run("text file", func(t *testing.T) {
		content := "Mitochondria make ATP.\nRibosomes build proteins."
		doc, err := service.ExtractText(ctx, strings.NewReader(content), int64(len(content)), "uploads/notes.TXT")
		require.NoError(t, err)
		assert.Equal(t, "notes.TXT", doc.Filename)
		assert.Equal(t, content, doc.Text)
		assert.Equal(t, 6, doc.WordCount)
		assert.Equal(t, len(content), doc.CharCount)
	})

	t.Run("invalid utf8 dropped", func(t *testing.T) {
		doc, err := service.ExtractText(ctx, strings.NewReader("caf\xffe"), 5, "a.txt")
		require.NoError(t, err)
		assert.Equal(t, "cafe", doc.Text)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := service.ExtractText(ctx, strings.NewReader("x"), 1, "slides.pptx")
		assert.ErrorIs(t, err, ErrUnsupportedFile)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := service.ExtractText(ctx, strings.NewReader(" \n "), 3, "a.txt")
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := service.ExtractText(ctx, strings.NewReader("x"), MaxUploadBytes+1, "a.txt")
		assert.True(t, IsValidation(err))
	})

	t.Run("not a pdf", func(t *testing.T) {
		_, err := service.ExtractText(ctx, strings.NewReader("plain text"), 10, "notes.pdf")
		assert.True(t, IsValidation(err))
	})
}
