package feed

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/feedparser/app/xmlevents"
)

// depth is an element nesting level counted from where a context started.
// An inactive depth is outside that context altogether.
type depth struct {
	level  int
	active bool
}

func (d *depth) start(level int) {
	d.level, d.active = level, true
}

func (d *depth) reset() {
	*d = depth{}
}

func (d *depth) enter() {
	if d.active {
		d.level++
	}
}

func (d *depth) leave() {
	if !d.active {
		return
	}
	d.level--
	if d.level < 0 {
		d.active = false
	}
}

func (d depth) at(level int) bool {
	return d.active && d.level == level
}

// machine builds a Feed from xmlevents. It keeps one depth per context
// (feed, entry, author) and at most one open capture per level.
type machine struct {
	ignored map[string]struct{}

	feed   *Feed
	entry  *Entry
	author *Author

	feedDepth   depth
	entryDepth  depth
	authorDepth depth

	field       *capture
	authorField *textBuffer

	err error
}

func newMachine(ignored map[string]struct{}) *machine {
	return &machine{ignored: ignored}
}

func (m *machine) result() (*Feed, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.feed, nil
}

func (m *machine) StartDocument() {
	*m = machine{ignored: m.ignored, feed: &Feed{}}
}

func (m *machine) EndDocument() {}

func (m *machine) Error(err error) {
	m.err = err
	m.feed = nil
	m.entry = nil
	m.author = nil
	m.field = nil
	m.authorField = nil
}

func (m *machine) StartElement(space, local string, attrs []xmlevents.Attr) error {
	m.feedDepth.enter()
	m.entryDepth.enter()
	m.authorDepth.enter()

	ignored := m.isIgnored(space)

	if !m.feedDepth.active {
		if ignored {
			return nil
		}
		switch {
		case feedRootTags.has(local):
			m.feedDepth.start(0)
			setLink(&m.feed.Link, &m.feed.LinkTitle, attrs)
			setFirst(&m.feed.ModificationDate, attrValue(attrs, "lastmod"))
			return nil
		case entryRootTags.has(local):
			// RDF places items beside the channel, so an entry opens an
			// implicit channel around itself.
			m.feedDepth.start(1)
		default:
			return nil
		}
	}

	switch {
	case m.feedDepth.at(1):
		if !ignored {
			m.startFeedChild(local, attrs)
		}
	case m.entryDepth.at(1):
		if !ignored {
			m.startEntryChild(local, attrs)
		}
	case m.authorDepth.at(1) && !ignored && knownAuthorTags.has(local):
		m.authorField = &textBuffer{}
	case m.field != nil:
		m.innermost().openMarkup(local, attrs)
	}
	return nil
}

func (m *machine) startFeedChild(local string, attrs []xmlevents.Attr) {
	switch {
	case entryRootTags.has(local):
		m.entry = &Entry{}
		m.entryDepth.start(0)
		setLink(&m.entry.Link, &m.entry.LinkTitle, attrs)
		setFirst(&m.entry.ModificationDate, attrValue(attrs, "lastmod"))
		setFirst(&m.entry.ID, attrValue(attrs, "about"))
	case knownFeedTags.has(local):
		m.field = &capture{base64: shouldDecodeBase64(attrs)}
		switch {
		case authorTags.has(local):
			m.authorDepth.start(0)
			m.author = &m.feed.Author
		case strings.EqualFold(local, "link") && m.feed.Link == "":
			setLink(&m.feed.Link, &m.feed.LinkTitle, attrs)
		}
	case feedRootTags.has(local):
		m.feedDepth.start(0)
	}
}

func (m *machine) startEntryChild(local string, attrs []xmlevents.Attr) {
	switch {
	case knownEntryTags.has(local):
		m.field = &capture{base64: shouldDecodeBase64(attrs)}
		switch {
		case authorTags.has(local):
			m.authorDepth.start(0)
			m.author = &m.entry.Author
		case strings.EqualFold(local, "link"):
			setFirst(&m.entry.Enclosure, enclosureLink(attrs))
			if m.entry.Link == "" {
				setLink(&m.entry.Link, &m.entry.LinkTitle, attrs)
			}
		}
	case strings.EqualFold(local, "enclosure"):
		setFirst(&m.entry.Enclosure, attrValue(attrs, "url"))
	}
}

func (m *machine) EndElement(space, local string) error {
	if !m.feedDepth.active || m.feedDepth.level == 0 {
		m.feedDepth.leave()
		return nil
	}

	switch {
	case m.feedDepth.at(1) && m.field != nil:
		m.finishFeedField(local)
		m.feedDepth.leave()
		m.authorDepth.reset()
	case m.entryDepth.at(0):
		m.feed.Entries = append(m.feed.Entries, m.entry)
		m.entry = nil
		m.feedDepth.leave()
		m.entryDepth.leave()
	case m.authorDepth.at(1) && m.authorField != nil:
		m.finishAuthorField(local)
		m.authorDepth.leave()
		m.feedDepth.leave()
		m.entryDepth.leave()
	case m.entryDepth.at(1) && m.field != nil:
		m.finishEntryField(local)
		m.entryDepth.leave()
		m.feedDepth.leave()
		m.authorDepth.reset()
	default:
		if m.field != nil {
			buf := m.innermost()
			if !buf.escaped {
				slog.Debug("Unexpected end tag inside text", "element", local)
				return fmt.Errorf("%w: end of <%s> while reading plain text", ErrInternal, local)
			}
			buf.closeMarkup(local)
		}
		m.entryDepth.leave()
		m.feedDepth.leave()
		m.authorDepth.leave()
	}
	return nil
}

func (m *machine) CharData(text string) {
	switch {
	case m.authorField != nil:
		m.authorField.write(text)
	case m.field != nil:
		m.field.text.write(text)
	}
}

func (m *machine) finishFeedField(local string) {
	text := m.field.finish()
	m.field = nil

	f := m.feed
	kind := classify(local)
	if kind == fieldAuthor {
		text = mergeAuthor(&f.Author, text)
	}

	switch kind {
	case fieldTitle:
		setFirst(&f.Title, text)
	case fieldSubtitle:
		setFirst(&f.Subtitle, text)
	case fieldSummary:
		setFirst(&f.Description, text)
	case fieldLink:
		setFirst(&f.Link, text)
	case fieldID:
		setFirst(&f.ID, text)
	case fieldPublished:
		setFirst(&f.PublicationDate, text)
	case fieldModified:
		setFirst(&f.ModificationDate, text)
	case fieldAuthor:
		setFirst(&f.Author.DisplayText, text)
	}
}

func (m *machine) finishEntryField(local string) {
	text := m.field.finish()
	m.field = nil

	e := m.entry
	kind := classify(local)
	if kind == fieldAuthor {
		text = mergeAuthor(&e.Author, text)
	}

	switch kind {
	case fieldTitle:
		setFirst(&e.Title, text)
	case fieldSubtitle:
		setFirst(&e.Subtitle, text)
	case fieldAuthor:
		setFirst(&e.Author.DisplayText, text)
	case fieldPublished:
		setFirst(&e.PublicationDate, text)
	case fieldModified:
		setFirst(&e.ModificationDate, text)
	case fieldLink:
		setFirst(&e.Link, text)
	case fieldID:
		setFirst(&e.ID, text)
	case fieldSummary:
		if e.Summary == "" {
			setFirst(&e.Summary, text)
		} else {
			setFirst(&e.Content, text)
		}
	case fieldContent:
		setFirst(&e.Content, text)
	}
}

func (m *machine) finishAuthorField(local string) {
	text := strings.TrimSpace(m.authorField.String())
	m.authorField = nil
	if m.author == nil {
		return
	}

	switch {
	case strings.EqualFold(local, "name"):
		setFirst(&m.author.Name, text)
	case strings.EqualFold(local, "email"):
		setFirst(&m.author.Email, text)
	case uriTags.has(local):
		setFirst(&m.author.URI, text)
	}
}

// innermost is the buffer text and nested markup currently go to.
func (m *machine) innermost() *textBuffer {
	if m.authorField != nil {
		return m.authorField
	}
	return &m.field.text
}

func (m *machine) isIgnored(space string) bool {
	if space == "" {
		return false
	}
	_, ok := m.ignored[strings.ToLower(space)]
	return ok
}

// mergeAuthor fills the display text from structured name and email. When
// either is known the element's own text is dropped and "" is returned.
func mergeAuthor(a *Author, text string) string {
	var display string
	switch {
	case a.Name != "" && a.Email != "":
		display = fmt.Sprintf("%s (%s)", a.Name, a.Email)
	case a.Name != "":
		display = a.Name
	case a.Email != "":
		display = a.Email
	default:
		return text
	}
	setFirst(&a.DisplayText, display)
	return ""
}

func setLink(link, title *string, attrs []xmlevents.Attr) {
	href, t := extractLink(attrs)
	setFirst(link, href)
	setFirst(title, t)
}
