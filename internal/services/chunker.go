package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits extracted document text into overlapping pieces
// sized for the embedding model. The ingest tool runs the job profile
// and interview rubric through it before upserting the pieces into the
// knowledge collection.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits on paragraph boundaries, falling back to sentences
// for paragraphs larger than maxChunkSize. Each chunk starts with the
// trailing overlap runes of its predecessor so a retrieval hit never
// loses the sentence that straddles a boundary.
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

	flush := func(separator string) {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()

		if overlap > 0 {
			carried := lastRunes(chunks[len(chunks)-1], overlap)
			current.WriteString(carried)
			if carried != "" {
				current.WriteString(separator)
			}
		}
	}

	appendPiece := func(piece, separator string) {
		if current.Len()+len(piece)+len(separator) > maxChunkSize {
			flush(separator)
		}
		if current.Len() > 0 {
			current.WriteString(separator)
		}
		current.WriteString(piece)
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			appendPiece(para, "\n\n")
			continue
		}

		for _, sentence := range splitSentences(para) {
			appendPiece(sentence, " ")
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// lastRunes returns the trailing n runes of text.
func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
