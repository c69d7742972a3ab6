package feed

import (
	"encoding/xml"
	"io"
	"strings"
	"time"
)

const (
	DefaultPodcastTitle = "Untitled Podcast"

	nsRSS10 = "http://purl.org/rss/1.0/"
)

var podcastDateLayouts = []string{
	"Mon, _2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z0700",
	time.RFC3339,
	"Mon, _2 Jan 2006 15:04:05 MST",
	"_2 Jan 2006 15:04:05 -0700",
}

// North American zone abbreviations found in podcast pubDates, in seconds east of UTC.
// time.Parse only resolves abbreviations known to the local zone.
var zoneOffsets = map[string]int{
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// PodcastParser reads RSS 2.0 podcast feeds with enclosures.
type PodcastParser struct {
	now func() time.Time
}

func NewPodcastParser() *PodcastParser {
	return &PodcastParser{now: time.Now}
}

func (p *PodcastParser) Parse(r io.Reader) (*Feed, error) {
	state := &podcastState{now: p.now()}
	if err := decode(r, state); err != nil {
		return nil, err
	}

	out := state.feed
	if out.Title == "" {
		out.Title = DefaultPodcastTitle
	}
	if len(out.Items) > PodcastItemLimit {
		out.Items = out.Items[:PodcastItemLimit]
	}
	for i := range out.Items {
		out.Items[i].ThumbnailURL = out.ImageURL
		out.Items[i].Author = out.Title
	}

	return &out, nil
}

type podcastState struct {
	now     time.Time
	feed    Feed
	item    *Item
	inImage bool
}

func plain(name xml.Name, local string) bool {
	return matches(name, local, "", nsRSS10)
}

func (s *podcastState) start(el xml.StartElement) {
	switch {
	case plain(el.Name, "item"):
		s.item = &Item{Published: s.now}
	case plain(el.Name, "image") && s.item == nil:
		s.inImage = true
	case plain(el.Name, "enclosure") && s.item != nil:
		if url := attr(el, "url"); url != "" {
			s.item.ContentURL = url
		}
	}
}

func (s *podcastState) end(name xml.Name, text string) {
	switch {
	case plain(name, "item"):
		if s.item != nil && s.item.Title != "" && s.item.ContentURL != "" {
			s.item.ID = s.item.ContentURL
			s.feed.Items = append(s.feed.Items, *s.item)
		}
		s.item = nil
		return
	case plain(name, "image") && s.item == nil:
		s.inImage = false
		return
	case name.Space != "" && name.Space != nsRSS10:
		return
	}

	switch {
	case s.item != nil:
		switch name.Local {
		case "title":
			s.item.Title = text
		case "link":
			s.item.Link = text
		case "description":
			s.item.Description = StripTags(text)
		case "pubDate":
			s.item.Published = parsePodcastDate(text, s.now)
		}
	case s.inImage:
		if name.Local == "url" && s.feed.ImageURL == "" {
			s.feed.ImageURL = text
		}
	default:
		if name.Local == "title" && s.feed.Title == "" {
			s.feed.Title = text
		}
	}
}

// parsePodcastDate tries each known layout in order and falls back to the given time.
func parsePodcastDate(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	for _, layout := range podcastDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return resolveZone(t)
		}
	}
	return fallback
}

// resolveZone fixes times whose zone abbreviation was parsed with a zero offset.
func resolveZone(t time.Time) time.Time {
	name, offset := t.Zone()
	if offset != 0 {
		return t
	}

	known, ok := zoneOffsets[name]
	if !ok {
		return t
	}

	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.FixedZone(name, known))
}
