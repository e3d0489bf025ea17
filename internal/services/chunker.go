package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits long documents into embeddable pieces and truncates
// query text to the embedder's input limit on a natural boundary.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
	TruncateText(text string, limit int) string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text into chunks of at most maxChunkSize runes,
// preferring paragraph boundaries, with the tail of each chunk repeated
// as overlap in the next one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunk := current.String()
		chunks = append(chunks, chunk)
		current.Reset()
		if overlap > 0 {
			current.WriteString(lastNRunes(chunk, overlap))
			current.WriteString(" ")
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		pieces := []string{para}
		if utf8.RuneCountInString(para) > maxChunkSize {
			pieces = splitIntoSentences(para)
		}

		for _, piece := range pieces {
			if current.Len()+len(piece)+1 > maxChunkSize {
				flush()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(piece)
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// TruncateText caps text at limit bytes, cutting at the last word
// boundary inside the limit when one exists.
func (tc *textChunker) TruncateText(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}

	cut := text[:limit]
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > 0 {
		cut = cut[:idx]
	}
	// The byte cut may have split a multi-byte rune
	cut = strings.ToValidUTF8(cut, "")
	return strings.TrimSpace(cut)
}

func splitIntoSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
