package fetch

import (
	"strings"

	"github.com/gurinder1988/footyfeed/pkg/feed"
)

// Source describes one feed to fetch. The grammar comes from the configuration
// list the source was declared in.
type Source struct {
	URL     string
	Grammar feed.Grammar
	Name    string
}

func (s Source) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

var podcastSchemes = []string{"pcast", "podcast", "feed", "itpc"}

// NormalizeURL rewrites podcast client schemes (pcast://, feed://, ...) to https.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)

	idx := strings.Index(raw, ":")
	if idx <= 0 {
		return raw
	}

	scheme := strings.ToLower(raw[:idx])
	rest := raw[idx+1:]

	for _, s := range podcastSchemes {
		if scheme != s {
			continue
		}

		// feed:https://example.com/rss
		lower := strings.ToLower(rest)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return rest
		}

		return "https:" + rest
	}

	return raw
}
