package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"mime"
	"path"
	"strings"
	"time"
)

// Generator re-emits a parsed Feed as normalized RSS 2.0.
type Generator struct {
	version string
}

func NewGenerator(version string) *Generator {
	return &Generator{version: version}
}

func (g *Generator) Run(f *Feed) (string, error) {
	if f == nil {
		return "", fmt.Errorf("failed to generate feed: no feed")
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", f.Title, 4)
	g.writeElement(&buf, "link", f.Link, 4)
	g.writeElement(&buf, "description", cmp.Or(f.Description, f.Subtitle, f.Title), 4)

	if f.PublicationDateParsed != nil {
		g.writeElement(&buf, "pubDate", f.PublicationDateParsed.Format(time.RFC1123Z), 4)
	}
	if f.ModificationDateParsed != nil {
		g.writeElement(&buf, "lastBuildDate", f.ModificationDateParsed.Format(time.RFC1123Z), 4)
	}

	g.writeElement(&buf, "managingEditor", f.Author.DisplayText, 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("feedparse/%s", g.version), 4)

	for _, entry := range f.Entries {
		g.writeEntry(&buf, entry)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeEntry(buf *bytes.Buffer, e *Entry) {
	buf.WriteString("    <item>\n")

	if e.ID != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(e.ID)))
		xml.EscapeText(buf, []byte(e.ID))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", e.Title, 6)
	g.writeElement(buf, "link", e.Link, 6)
	g.writeElement(buf, "description", cmp.Or(e.Summary, e.Content), 6)

	if e.Content != "" && e.Content != e.Summary {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(strings.ReplaceAll(e.Content, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	if date := cmp.Or(e.PublicationDateParsed, e.ModificationDateParsed); date != nil {
		g.writeElement(buf, "pubDate", date.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "author", e.Author.DisplayText, 6)

	// RSS 2.0 requires length and type; the parsed model only carries the URL.
	if e.Enclosure != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(e.Enclosure),
			html.EscapeString(g.enclosureType(e.Enclosure))))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) enclosureType(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	if t := mime.TypeByExtension(path.Ext(url)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func (g *Generator) isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
