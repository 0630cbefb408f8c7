package feed

import "strings"

type tagSet map[string]struct{}

func newTagSet(names ...string) tagSet {
	s := make(tagSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

func (s tagSet) has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

func (s tagSet) with(other ...tagSet) tagSet {
	out := make(tagSet, len(s))
	for name := range s {
		out[name] = struct{}{}
	}
	for _, o := range other {
		for name := range o {
			out[name] = struct{}{}
		}
	}
	return out
}

var (
	feedRootTags  = newTagSet("rss", "channel", "feed")
	entryRootTags = newTagSet("item", "entry")
	authorTags    = newTagSet("managingeditor", "author", "creator")
	pubDateTags   = newTagSet("issued", "published", "created")
	modDateTags   = newTagSet("pubdate", "date", "modified", "updated")
	idTags        = newTagSet("guid", "id")
	summaryTags   = newTagSet("description", "summary", "abstract")
	contentTags   = newTagSet("fullitem", "body", "content", "encoded")
	uriTags       = newTagSet("uri", "url", "homepage")

	knownFeedTags = newTagSet(
		"title", "link", "id", "author", "subtitle", "abstract",
		"description", "managingeditor", "creator", "summary",
	).with(pubDateTags, modDateTags)

	knownEntryTags = newTagSet(
		"link", "title", "creator", "author", "body", "id", "guid",
		"description", "summary", "content", "encoded", "abstract",
		"fullitem", "subtitle",
	).with(pubDateTags, modDateTags)

	knownAuthorTags = newTagSet("name", "email").with(uriTags)
)

// DefaultIgnoredNamespaces lists the namespaces whose elements never start a
// feed, an entry or a field.
var DefaultIgnoredNamespaces = []string{
	"http://schemas.pocketsoap.com/rss/myDescModule/",
	"http://search.yahoo.com/mrss/",
}

// field is the slot of the model a finished text capture lands in.
type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldSubtitle
	fieldLink
	fieldID
	fieldSummary
	fieldContent
	fieldPublished
	fieldModified
	fieldAuthor
)

func classify(name string) field {
	switch {
	case strings.EqualFold(name, "title"):
		return fieldTitle
	case strings.EqualFold(name, "subtitle"):
		return fieldSubtitle
	case strings.EqualFold(name, "link"):
		return fieldLink
	case idTags.has(name):
		return fieldID
	case summaryTags.has(name):
		return fieldSummary
	case contentTags.has(name):
		return fieldContent
	case pubDateTags.has(name):
		return fieldPublished
	case modDateTags.has(name):
		return fieldModified
	case authorTags.has(name):
		return fieldAuthor
	default:
		return fieldNone
	}
}
