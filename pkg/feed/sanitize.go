package feed

import (
	"html"
	"regexp"
	"strings"
)

// MaxFieldLength is the number of characters kept by Sanitize.
const MaxFieldLength = 500

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes anything that looks like a markup tag.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Sanitize converts a feed text field to plain display text of at most
// MaxFieldLength characters.
func Sanitize(s string) string {
	s = StripTags(s)
	s = html.UnescapeString(s)
	s = strings.TrimSpace(s)
	return truncate(s, MaxFieldLength)
}

func truncate(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
