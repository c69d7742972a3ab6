package feed

import (
	"encoding/xml"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Grammar identifies the tag vocabulary a source is parsed with.
type Grammar string

const (
	GrammarVideo   = Grammar("video")
	GrammarPodcast = Grammar("podcast")
)

const (
	// MaxDepth is the deepest element nesting a document may have.
	MaxDepth = 100
	// MaxTextLength caps character data accumulated for a single element.
	MaxTextLength = 10000
	// PodcastItemLimit is the number of episodes kept per podcast feed.
	PodcastItemLimit = 10
)

var (
	ErrTooDeep       = errors.New("document nesting exceeds limit")
	ErrEmptyDocument = errors.New("document has no root element")
)

// Feed is the raw result of parsing one document.
type Feed struct {
	Title    string
	ImageURL string
	Items    []Item
}

// Item holds the fields extracted from one <item> or <entry>.
type Item struct {
	ID           string
	Title        string
	Description  string
	Link         string
	ContentURL   string
	ThumbnailURL string
	Author       string
	Published    time.Time
}

type Parser interface {
	Parse(r io.Reader) (*Feed, error)
}

// New returns the parser for the given grammar.
func New(grammar Grammar) (Parser, error) {
	switch grammar {
	case GrammarVideo:
		return NewVideoParser(), nil
	case GrammarPodcast:
		return NewPodcastParser(), nil
	default:
		return nil, errors.Errorf("unsupported grammar %q", grammar)
	}
}

// ParseError reports a document that could not be read as XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "failed to parse feed: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Cause() error  { return e.Err }

// handler receives element events from decode. Text is the trimmed character data
// seen since the most recent start tag.
type handler interface {
	start(el xml.StartElement)
	end(name xml.Name, text string)
}

func decode(r io.Reader, h handler) error {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Entity = xml.HTMLEntity

	var (
		depth    int
		seenRoot bool
		text     = textBuffer{limit: MaxTextLength}
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			if !seenRoot {
				return &ParseError{Err: ErrEmptyDocument}
			}
			return nil
		}
		if err != nil {
			return &ParseError{Err: err}
		}

		switch t := token.(type) {
		case xml.StartElement:
			seenRoot = true
			depth++
			if depth > MaxDepth {
				return &ParseError{Err: ErrTooDeep}
			}
			text.Reset()
			h.start(t)
		case xml.CharData:
			if depth > 0 {
				text.Write(t)
			}
		case xml.EndElement:
			depth--
			h.end(t.Name, strings.TrimSpace(text.String()))
			text.Reset()
		}
	}
}

type textBuffer struct {
	b     strings.Builder
	runes int
	limit int
}

func (t *textBuffer) Write(data []byte) {
	if t.runes >= t.limit {
		return
	}

	s := string(data)
	n := utf8.RuneCountInString(s)
	if t.runes+n <= t.limit {
		t.b.WriteString(s)
		t.runes += n
		return
	}

	for _, r := range s {
		if t.runes >= t.limit {
			break
		}
		t.b.WriteRune(r)
		t.runes++
	}
}

func (t *textBuffer) String() string {
	return t.b.String()
}

func (t *textBuffer) Reset() {
	t.b.Reset()
	t.runes = 0
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local && a.Name.Space == "" {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// matches reports whether name is local in one of the given namespaces.
// Namespaces may be listed by URI or, for undeclared prefixes, by prefix.
func matches(name xml.Name, local string, spaces ...string) bool {
	if name.Local != local {
		return false
	}
	for _, space := range spaces {
		if name.Space == space {
			return true
		}
	}
	return false
}
