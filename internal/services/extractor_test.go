package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	extractor := NewDocumentExtractor()

	text, err := extractor.Extract(context.Background(), []byte("John Doe\n\n  Software   Engineer  \n"), ".txt")
	require.NoError(t, err)
	require.Equal(t, "John Doe\nSoftware Engineer", text)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	extractor := NewDocumentExtractor()

	for _, ext := range []string{".exe", ".png", "zip", ""} {
		_, err := extractor.Extract(context.Background(), []byte("payload"), ext)
		require.ErrorIs(t, err, ErrUnsupportedFormat, "extension %q", ext)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	extractor := NewDocumentExtractor()

	for _, data := range [][]byte{nil, []byte(""), []byte("   \n\t  \n")} {
		_, err := extractor.Extract(context.Background(), data, ".txt")
		require.ErrorIs(t, err, ErrEmptyDocument)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	extractor := NewDocumentExtractor()

	_, err := extractor.Extract(context.Background(), []byte("definitely not a pdf"), ".pdf")
	require.ErrorIs(t, err, ErrCorruptDocument)
}

func TestExtractCorruptDocx(t *testing.T) {
	extractor := NewDocumentExtractor()

	_, err := extractor.Extract(context.Background(), []byte("definitely not a zip archive"), ".docx")
	require.ErrorIs(t, err, ErrCorruptDocument)
}

func TestExtractSupports(t *testing.T) {
	extractor := NewDocumentExtractor()

	require.True(t, extractor.Supports(".pdf"))
	require.True(t, extractor.Supports("PDF"))
	require.True(t, extractor.Supports(".docx"))
	require.True(t, extractor.Supports(".doc"))
	require.True(t, extractor.Supports(".txt"))
	require.False(t, extractor.Supports(".exe"))
	require.False(t, extractor.Supports(""))
}

func TestExtractDispatchIsByExtensionOnly(t *testing.T) {
	extractor := NewDocumentExtractor()

	// PDF bytes declared as txt come back as-is, no content sniffing
	text, err := extractor.Extract(context.Background(), []byte("%PDF-1.4 something"), ".txt")
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 something", text)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "a   b\t c", "a b c"},
		{"drops blank lines", "a\n\n\n\nb", "a\nb"},
		{"trims lines", "  a  \n  b  ", "a\nb"},
		{"strips invalid utf8", "ok\xff\xfe line", "ok line"},
		{"empty", "   \n \n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestExtractCancellation(t *testing.T) {
	extractor := NewDocumentExtractor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Plain text extraction has no page loop and ignores cancellation
	_, err := extractor.Extract(ctx, []byte("still fine"), ".txt")
	require.NoError(t, err)

	// A PDF that fails to open reports corruption, not cancellation
	_, err = extractor.Extract(ctx, []byte("junk"), ".pdf")
	require.True(t, errors.Is(err, ErrCorruptDocument) || errors.Is(err, context.Canceled))
}
