// Package ingest extracts plain text from uploaded exam documents so the
// generation prompt can carry their content. Supported formats: plain text,
// PDF, DOCX, and CSV. Spreadsheet formats are recognized but rejected with a
// descriptive error.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gonfva/docxlib"
	"github.com/ledongthuc/pdf"
)

// Extensions lists the upload extensions the extractor accepts.
var Extensions = []string{".txt", ".pdf", ".docx", ".doc", ".csv"}

// Allowed reports whether filename carries an extension ExtractText accepts.
func Allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ExtractText converts a document's bytes into plain text, dispatching on the
// filename's extension. Unknown extensions are treated as plain text when the
// content is valid UTF-8.
func ExtractText(filename string, content []byte) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".doc":
		// Legacy binary Word files are not parseable; old uploads are often
		// mislabeled DOCX, so try that before giving up.
		if text, err := extractDOCX(content); err == nil {
			return text, nil
		}
		return "", fmt.Errorf("ingest: %s: legacy .doc files are not supported, re-save the document as .docx", filename)
	case ".csv":
		return extractCSV(content)
	case ".xlsx", ".xls":
		return "", fmt.Errorf("ingest: %s: spreadsheet extraction is not supported, export the sheet as .csv", filename)
	default:
		return extractPlain(filename, content)
	}
}

func extractPlain(filename string, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("ingest: %s: content is not valid UTF-8 text", filename)
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", fmt.Errorf("ingest: %s: document is empty", filename)
	}
	return text, nil
}

func extractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("ingest: open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page should not lose the rest of the exam.
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("ingest: pdf contains no extractable text")
	}
	return out, nil
}

func extractDOCX(content []byte) (string, error) {
	doc, err := docxlib.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("ingest: open docx: %w", err)
	}

	var b strings.Builder
	for _, para := range doc.Paragraphs() {
		var line strings.Builder
		for _, child := range para.Children() {
			if child.Run != nil && child.Run.Text != nil {
				line.WriteString(child.Run.Text.Text)
			}
		}
		if line.Len() > 0 {
			b.WriteString(line.String())
			b.WriteByte('\n')
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("ingest: docx contains no extractable text")
	}
	return out, nil
}

// extractCSV renders rows as tab-separated lines, which keeps tabular exam
// answer sheets readable in the prompt.
func extractCSV(content []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var b strings.Builder
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("ingest: read csv: %w", err)
		}
		b.WriteString(strings.Join(record, "\t"))
		b.WriteByte('\n')
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("ingest: csv contains no rows")
	}
	return out, nil
}
