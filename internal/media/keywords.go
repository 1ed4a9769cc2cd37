// Package media derives video search queries from segment text and picks playable assets.
package media

import (
	"strings"

	"github.com/samber/lo"
)

const MaxKeywords = 3

// 去除的标点
const strippedPunctuation = ".,/#!$%^&*;:{}=-_`~()"

var stopWords = map[string]struct{}{
	"的": {}, "了": {}, "是": {}, "在": {}, "和": {}, "与": {}, "这": {}, "那": {},
	"有": {}, "我": {}, "你": {}, "他": {}, "她": {}, "它": {}, "们": {},
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {},
	"on": {}, "at": {}, "for": {}, "with": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "this": {}, "that": {}, "it": {},
}

// ExtractKeywords returns at most MaxKeywords lower-cased tokens of text, punctuation
// stripped and stop words and single-character tokens removed.
func ExtractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedPunctuation, r) {
			return -1
		}
		return r
	}, text)

	tokens := lo.Filter(strings.Fields(strings.ToLower(cleaned)), func(tok string, _ int) bool {
		if _, stop := stopWords[tok]; stop {
			return false
		}
		return len([]rune(tok)) > 1
	})
	if len(tokens) > MaxKeywords {
		tokens = tokens[:MaxKeywords]
	}
	return tokens
}

// BuildQuery joins the keywords of text with single spaces. It may be empty.
func BuildQuery(text string) string {
	return strings.Join(ExtractKeywords(text), " ")
}
