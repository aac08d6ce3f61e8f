package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/xuri/excelize/v2"
)

const maxImportRows = 200

var quizImportHeaders = []string{"question", "option a", "option b", "option c", "option d", "correct"}

type exportService struct {
	library LibraryService
	logger  *slog.Logger
}

func NewExportService(library LibraryService, logger *slog.Logger) ExportService {
	return &exportService{
		library: library,
		logger:  logger,
	}
}

// ===== EXPORT OPERATIONS =====

func (s *exportService) Export(ctx context.Context, owner, id string, format ExportFormat) (*ExportFile, error) {
	saved, err := s.library.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	headers, rows := recordTable(saved.Record)
	base := exportFilename(saved.Title, saved.ID)

	var file *ExportFile
	switch format {
	case ExportCSV:
		data, err := writeCSV(headers, rows)
		if err != nil {
			return nil, err
		}
		file = &ExportFile{Filename: base + ".csv", ContentType: "text/csv", Data: data}
	case ExportXLSX, "":
		data, err := writeXLSX(string(saved.Kind), headers, rows)
		if err != nil {
			return nil, err
		}
		file = &ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}
	default:
		return nil, ValidationErrors{*NewValidationError("format", "must be csv or xlsx", string(format))}
	}

	s.logger.Info("Record exported", "id", id, "kind", saved.Kind, "format", format, "bytes", len(file.Data))
	return file, nil
}

// recordTable lays a record out as a header row and data rows.
func recordTable(record records.Record) ([]string, [][]string) {
	switch r := record.(type) {
	case *records.FlashcardSet:
		rows := make([][]string, len(r.Flashcards))
		for i, c := range r.Flashcards {
			rows[i] = []string{strconv.Itoa(c.ID), c.Question, c.Answer}
		}
		return []string{"ID", "Question", "Answer"}, rows
	case *records.Quiz:
		rows := make([][]string, len(r.Questions))
		for i, q := range r.Questions {
			row := []string{strconv.Itoa(q.ID), q.Question}
			for _, o := range q.Options {
				row = append(row, o.Text)
			}
			rows[i] = append(row, q.CorrectLabel(), q.Explanation)
		}
		return []string{"ID", "Question", "Option A", "Option B", "Option C", "Option D", "Correct", "Explanation"}, rows
	case *records.MatchingSet:
		rows := make([][]string, len(r.Pairs))
		for i, p := range r.Pairs {
			rows[i] = []string{strconv.Itoa(p.ID), p.Term, p.Definition}
		}
		return []string{"ID", "Term", "Definition"}, rows
	case *records.Summary:
		rows := [][]string{{"Overview", r.Overview}}
		for _, p := range r.KeyPoints {
			rows = append(rows, []string{"Key point", p})
		}
		for _, t := range r.Terms {
			rows = append(rows, []string{"Term", t.Term + ": " + t.Definition})
		}
		for _, t := range r.Takeaways {
			rows = append(rows, []string{"Takeaway", t})
		}
		return []string{"Section", "Text"}, rows
	case *records.StudyGuide:
		rows := [][]string{{"Summary", r.Subject, r.Summary}}
		for _, o := range r.Outlines {
			rows = append(rows, []string{"Outline", o.Title, strings.Join(append([]string{o.Content}, o.SubItems...), "\n")})
		}
		for _, t := range r.BulletTakeaways {
			rows = append(rows, []string{"Takeaway", "", t})
		}
		for _, k := range r.KeyTopics {
			rows = append(rows, []string{"Key topic", k.Importance, k.Topic})
		}
		for _, f := range r.Facts {
			rows = append(rows, []string{"Fact", f.Category, f.Fact})
		}
		return []string{"Section", "Title", "Content"}, rows
	case *records.Evaluation:
		rows := [][]string{
			{"Correct", strconv.FormatBool(r.IsCorrect)},
			{"Score", strconv.Itoa(r.Percent()) + "%"},
			{"Feedback", r.Feedback},
		}
		for _, sug := range r.Suggestions {
			rows = append(rows, []string{"Suggestion", sug})
		}
		return []string{"Field", "Value"}, rows
	}
	return nil, nil
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSX(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := row
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write Excel row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportFilename(title, id string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, strings.TrimSpace(title))
	if name == "" {
		return id
	}
	return strings.ToLower(name) + "-" + id
}

// ===== IMPORT OPERATIONS =====

// ImportQuizQuestions adds manual quiz questions from a CSV or XLSX sheet.
// The first row is a header naming the question, option a-d and correct columns.
func (s *exportService) ImportQuizQuestions(ctx context.Context, sess *session.Session, reader io.Reader, filename string) (*ImportResult, error) {
	if sess.Quiz.Step != session.StepManual {
		return nil, &session.TransitionError{Operation: "import questions", Step: sess.Quiz.Step}
	}

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		r := csv.NewReader(reader)
		r.FieldsPerRecord = -1
		rows, err = r.ReadAll()
	case ".xlsx":
		rows, err = readXLSXRows(reader)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}
	if err != nil {
		return nil, ValidationErrors{*NewValidationError("file", "could not be read: "+err.Error(), filename)}
	}
	if len(rows) < 2 {
		return nil, ValidationErrors{*NewValidationError("file", "must have a header row and at least one question", len(rows))}
	}
	if len(rows)-1 > maxImportRows {
		return nil, ValidationErrors{*NewValidationError("file", fmt.Sprintf("must have at most %d questions", maxImportRows), len(rows)-1)}
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"question", "option a", "option b", "correct"} {
		if _, ok := headerMap[required]; !ok {
			return nil, ValidationErrors{*NewValidationError("file", "missing column "+required, quizImportHeaders)}
		}
	}

	result := &ImportResult{TotalRows: len(rows) - 1}
	for i, row := range rows[1:] {
		_, err := sess.Quiz.AddManualQuestion(manualQuestionFromRow(row, headerMap))
		if err == nil {
			result.SuccessCount++
			continue
		}
		result.ErrorCount++
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, ve := range verrs {
			ve.Field = fmt.Sprintf("row[%d].%s", i+2, ve.Field)
			result.Errors = append(result.Errors, ve)
		}
	}
	sess.Touch()

	s.logger.InfoContext(ctx, "Quiz questions imported",
		"session_id", sess.ID,
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount)
	return result, nil
}

func readXLSXRows(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func manualQuestionFromRow(row []string, headerMap map[string]int) session.ManualQuestion {
	cell := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	return session.ManualQuestion{
		Question: cell("question"),
		A:        cell("option a"),
		B:        cell("option b"),
		C:        cell("option c"),
		D:        cell("option d"),
		Correct:  cell("correct"),
	}
}
