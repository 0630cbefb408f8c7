package feed

import (
	"log/slog"
	"strings"

	"github.com/lysyi3m/feedparser/app/config"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run keeps the entries that pass every filter, in their original order.
func (f *Filterer) Run(entries []*Entry, filters []config.Filter) []*Entry {
	if len(filters) == 0 {
		return entries
	}

	kept := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if excluded, reason := f.applyFilters(entry, filters); excluded {
			slog.Debug("Entry filtered out", "id", entry.ID, "reason", reason)
			continue
		}
		kept = append(kept, entry)
	}

	return kept
}

func (f *Filterer) applyFilters(entry *Entry, filters []config.Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(entry, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, "excluded by " + filter.Field + " filter: contains '" + exclude + "'"
			}
		}

		if len(filter.Includes) == 0 {
			continue
		}

		matched := false
		for _, include := range filter.Includes {
			if f.matchesFilter(value, include) {
				matched = true
				break
			}
		}
		if !matched {
			return true, "excluded by " + filter.Field + " filter: no include matched"
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(entry *Entry, field string) string {
	switch field {
	case "title":
		return entry.Title
	case "summary":
		return entry.Summary
	case "content":
		return entry.Content
	case "author":
		a := entry.Author
		return strings.Join([]string{a.DisplayText, a.Name, a.Email}, " ")
	case "link":
		return entry.Link
	case "id":
		return entry.ID
	default:
		return ""
	}
}
