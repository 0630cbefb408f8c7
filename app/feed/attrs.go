package feed

import (
	"strings"

	"github.com/lysyi3m/feedparser/app/xmlevents"
)

// attrValue returns the trimmed value of the first attribute named name,
// compared case-insensitively. Whitespace-only values count as absent.
func attrValue(attrs []xmlevents.Attr, name string) string {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// extractLink reads href and title from a link-bearing element. A rel other
// than "alternate" means the link is not the resource itself.
func extractLink(attrs []xmlevents.Attr) (href, title string) {
	rel := attrValue(attrs, "rel")
	if rel != "" && !strings.EqualFold(rel, "alternate") {
		return "", ""
	}
	return attrValue(attrs, "href"), attrValue(attrs, "title")
}

// enclosureLink returns the href of a <link rel="enclosure">.
func enclosureLink(attrs []xmlevents.Attr) string {
	if !strings.EqualFold(attrValue(attrs, "rel"), "enclosure") {
		return ""
	}
	return attrValue(attrs, "href")
}

// shouldDecodeBase64 decides from mode/type attributes whether a field's text
// is base64. Attributes are checked in document order and the first type
// attribute is decisive.
func shouldDecodeBase64(attrs []xmlevents.Attr) bool {
	for _, a := range attrs {
		switch {
		case strings.EqualFold(a.Name, "mode"):
			if hasPrefixFold(a.Value, "base64") {
				return true
			}
		case strings.EqualFold(a.Name, "type"):
			return !isTextualType(a.Value)
		}
	}
	return false
}

func isTextualType(value string) bool {
	v := strings.ToLower(value)
	return v == "" ||
		v == "text" ||
		strings.HasPrefix(v, "text/") ||
		strings.HasSuffix(v, "xml") ||
		strings.HasSuffix(v, "html")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
