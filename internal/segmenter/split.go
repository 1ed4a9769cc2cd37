package segmenter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isTerminator(r rune) bool {
	switch r {
	case '。', '？', '！', '.', '?', '!':
		return true
	}
	return false
}

// Split breaks text into sentences after each terminator. The terminator stays on its
// sentence, whitespace after a boundary is consumed and blank pieces are dropped.
func Split(text string) []string {
	var (
		pieces []string
		start  int
	)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if !isTerminator(r) {
			continue
		}
		pieces = appendPiece(pieces, text[start:i])
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		start = i
	}
	if start < len(text) {
		pieces = appendPiece(pieces, text[start:])
	}
	return pieces
}

func appendPiece(pieces []string, p string) []string {
	if strings.TrimSpace(p) == "" {
		return pieces
	}
	return append(pieces, p)
}
