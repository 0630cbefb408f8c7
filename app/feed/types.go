package feed

import (
	"time"
)

// Author is embedded in Feed and Entry. DisplayText is either the text of the
// author element itself or synthesized from Name and Email, whichever comes
// first; it is never overwritten once set.
type Author struct {
	Name        string
	Email       string
	URI         string
	DisplayText string
}

type Entry struct {
	ID               string
	Title            string
	Link             string
	LinkTitle        string
	Summary          string
	Content          string
	Subtitle         string
	PublicationDate  string
	ModificationDate string
	Enclosure        string
	Author           Author

	PublicationDateParsed  *time.Time
	ModificationDateParsed *time.Time
}

// Feed is the normalized result of a parse. Entries are in document order.
// Every string field holds the first non-empty value found for it.
type Feed struct {
	Title            string
	Subtitle         string
	Description      string
	Link             string
	LinkTitle        string
	ID               string
	PublicationDate  string
	ModificationDate string
	Author           Author
	Entries          []*Entry

	PublicationDateParsed  *time.Time
	ModificationDateParsed *time.Time
}
