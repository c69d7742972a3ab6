package sources

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

type opml struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    head
	Body    body
}

type head struct {
	XMLName xml.Name `xml:"head"`
	Title   string   `xml:"title"`
}

type body struct {
	XMLName  xml.Name  `xml:"body"`
	Outlines []outline `xml:"outline"`
}

type outline struct {
	Text   string `xml:"text,attr"`
	Title  string `xml:"title,attr"`
	Type   string `xml:"type,attr"`
	XMLURL string `xml:"xmlUrl,attr"`
}

// OPML renders every configured source as an OPML 1.0 subscription list.
func (r *Registry) OPML(title string) (string, error) {
	all := r.All()

	ou := make([]outline, 0, len(all))
	for _, src := range all {
		ou = append(ou, outline{Text: src.Name, Title: src.Name, Type: "rss", XMLURL: src.URL})
	}

	op := opml{Version: "1.0"}
	op.Head = head{Title: title}
	op.Body = body{Outlines: ou}

	out, err := xml.MarshalIndent(op, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal opml")
	}

	return xml.Header + string(out), nil
}
