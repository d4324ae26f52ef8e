package grading

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// charCount counts Unicode code points.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

// countWords counts whitespace-separated fields.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// countSentences counts the non-blank segments between '.', '!' and '?'.
func countSentences(s string) int {
	n := 0
	for _, seg := range strings.FieldsFunc(s, isTerminator) {
		if strings.IndexFunc(seg, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0 {
			n++
		}
	}
	return n
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// matchKeywords returns the keywords found in s as case-insensitive
// substrings, each at most once, in vocabulary order.
func matchKeywords(s string, keywords []string) []string {
	if s == "" {
		return nil
	}
	low := strings.ToLower(s)
	var found []string
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if strings.Contains(low, k) {
			found = append(found, k)
		}
	}
	return found
}
