package util

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// StripCodeFence returns the body of a text wrapped in a markdown code block, e.g. ```json ... ```.
func StripCodeFence(text string) (string, bool) {
	matches := codeFenceRe.FindStringSubmatch(strings.TrimSpace(text))
	if len(matches) < 2 {
		return text, false
	}
	return matches[1], true
}
