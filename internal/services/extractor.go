package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// DocumentExtractor converts uploaded file bytes into normalized plain text.
// Dispatch is by declared extension, not content sniffing.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, extension string) (string, error)
	Supports(extension string) bool
}

type documentExtractor struct{}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{}
}

// Supports reports whether the extension (with or without leading dot)
// is handled by Extract.
func (e *documentExtractor) Supports(extension string) bool {
	switch normalizeExtension(extension) {
	case "pdf", "doc", "docx", "txt":
		return true
	}
	return false
}

// Extract returns UTF-8 normalized text with collapsed whitespace. The
// original bytes are not retained. Extraction of large PDFs is abortable
// through ctx.
func (e *documentExtractor) Extract(ctx context.Context, data []byte, extension string) (string, error) {
	var (
		text string
		err  error
	)

	switch normalizeExtension(extension) {
	case "pdf":
		text, err = e.extractPDF(ctx, data)
	case "doc", "docx":
		text, err = e.extractDocx(data)
	case "txt":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyDocument
	}

	return text, nil
}

func (e *documentExtractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("pdf extraction cancelled: %w", ctx.Err())
		default:
		}

		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func (e *documentExtractor) extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

func normalizeExtension(extension string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
}

// CleanText normalizes extracted text: valid UTF-8, trimmed lines, no
// blank lines, single spaces inside lines.
func CleanText(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
