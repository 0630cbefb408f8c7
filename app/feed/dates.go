package feed

import (
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
)

func parseDates(f *Feed) {
	f.PublicationDateParsed = parseDate(f.PublicationDate)
	f.ModificationDateParsed = parseDate(f.ModificationDate)

	for _, e := range f.Entries {
		e.PublicationDateParsed = parseDate(e.PublicationDate)
		e.ModificationDateParsed = parseDate(e.ModificationDate)
	}
}

// parseDate is lenient: the raw string stays on the model either way.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	t, err := dateparse.ParseAny(value)
	if err != nil {
		slog.Debug("Failed to parse date", "value", value, "error", err)
		return nil
	}
	return &t
}
