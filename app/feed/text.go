package feed

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/feedparser/app/xmlevents"
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// textBuffer accumulates the text of one field. Once a nested element shows
// up it switches to escaped mode and keeps the inner markup as a string.
type textBuffer struct {
	b       strings.Builder
	escaped bool
}

func (t *textBuffer) write(s string) {
	if t.escaped {
		s = markupEscaper.Replace(s)
	}
	t.b.WriteString(s)
}

func (t *textBuffer) openMarkup(name string, attrs []xmlevents.Attr) {
	if !t.escaped {
		prev := t.b.String()
		t.b.Reset()
		t.b.WriteString(markupEscaper.Replace(prev))
		t.escaped = true
	}

	t.b.WriteByte('<')
	t.b.WriteString(name)
	for _, a := range attrs {
		t.b.WriteByte(' ')
		t.b.WriteString(a.Name)
		t.b.WriteString(`="`)
		t.b.WriteString(markupEscaper.Replace(a.Value))
		t.b.WriteByte('"')
	}
	t.b.WriteByte('>')
}

func (t *textBuffer) closeMarkup(name string) {
	t.b.WriteString("</")
	t.b.WriteString(name)
	t.b.WriteByte('>')
}

func (t *textBuffer) String() string {
	return t.b.String()
}

// capture is a field of the feed or of an entry being read.
type capture struct {
	text   textBuffer
	base64 bool
}

func (c *capture) finish() string {
	text := c.text.String()
	if c.base64 && text != "" {
		decoded, err := decodeBase64(text)
		if err != nil {
			slog.Debug("Discarding undecodable base64 text", "error", err)
			return ""
		}
		text = string(decoded)
	}
	return strings.TrimSpace(text)
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")

	decoded, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return decoded, nil
	}
	if decoded, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return decoded, nil
	}
	return nil, fmt.Errorf("failed to decode base64 text: %w", err)
}

func setFirst(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}
