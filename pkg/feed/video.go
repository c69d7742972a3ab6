package feed

import (
	"encoding/xml"
	"io"
	"net/url"
	"time"
)

const (
	DefaultChannelName = "Unknown Channel"

	embedURLPrefix = "https://www.youtube.com/embed/"

	nsAtom    = "http://www.w3.org/2005/Atom"
	nsMedia   = "http://search.yahoo.com/mrss/"
	nsYouTube = "http://www.youtube.com/xml/schemas/2015"
)

// VideoParser reads YouTube channel Atom feeds.
type VideoParser struct{}

func NewVideoParser() *VideoParser {
	return &VideoParser{}
}

func (p *VideoParser) Parse(r io.Reader) (*Feed, error) {
	state := &videoState{}
	if err := decode(r, state); err != nil {
		return nil, err
	}

	out := state.feed
	for i := range out.Items {
		if out.Items[i].Author != "" {
			continue
		}
		if out.Title != "" {
			out.Items[i].Author = out.Title
		} else {
			out.Items[i].Author = DefaultChannelName
		}
	}

	return &out, nil
}

// EmbedURL returns the playable URL of a video id.
func EmbedURL(videoID string) string {
	return embedURLPrefix + url.PathEscape(videoID)
}

type videoEntry struct {
	videoID     string
	title       string
	description string
	published   string
	channel     string
	thumbnail   string
}

type videoState struct {
	feed     Feed
	entry    *videoEntry
	inAuthor bool
}

func atom(name xml.Name, local string) bool {
	return matches(name, local, nsAtom, "")
}

func media(name xml.Name, local string) bool {
	return matches(name, local, nsMedia, "media")
}

func youtube(name xml.Name, local string) bool {
	return matches(name, local, nsYouTube, "yt")
}

func (s *videoState) start(el xml.StartElement) {
	switch {
	case atom(el.Name, "entry"):
		s.entry = &videoEntry{}
	case atom(el.Name, "author"):
		s.inAuthor = true
	case media(el.Name, "thumbnail") && s.entry != nil:
		if u := attr(el, "url"); u != "" {
			s.entry.thumbnail = u
		}
	}
}

func (s *videoState) end(name xml.Name, text string) {
	switch {
	case atom(name, "entry"):
		if s.entry != nil {
			if item, ok := s.entry.item(); ok {
				s.feed.Items = append(s.feed.Items, item)
			}
		}
		s.entry = nil
		return
	case atom(name, "author"):
		s.inAuthor = false
		return
	}

	if s.entry == nil {
		if atom(name, "title") && !s.inAuthor && s.feed.Title == "" {
			s.feed.Title = text
		}
		return
	}

	e := s.entry
	switch {
	case atom(name, "title") && !s.inAuthor:
		e.title = text
	case atom(name, "name") && s.inAuthor:
		e.channel = text
	case atom(name, "published"):
		e.published = text
	case media(name, "description") || atom(name, "description"):
		e.description = text
	case youtube(name, "videoId"):
		e.videoID = text
	}
}

func (e *videoEntry) item() (Item, bool) {
	if e.videoID == "" || e.title == "" || e.thumbnail == "" {
		return Item{}, false
	}

	if _, err := url.Parse(e.thumbnail); err != nil {
		return Item{}, false
	}

	published, err := time.Parse(time.RFC3339, e.published)
	if err != nil {
		return Item{}, false
	}

	return Item{
		ID:           e.videoID,
		Title:        e.title,
		Description:  e.description,
		ContentURL:   EmbedURL(e.videoID),
		ThumbnailURL: e.thumbnail,
		Author:       e.channel,
		Published:    published,
	}, true
}
