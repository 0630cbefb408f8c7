package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/feedparser/app/config"
	"github.com/lysyi3m/feedparser/app/feed"
)

// ParseFileTask parses one feed document with a parser of its own and keeps
// the result for the caller to collect after the scheduler stops.
type ParseFileTask struct {
	Task
	parser   *feed.Parser
	filterer *feed.Filterer
	filters  []config.Filter

	Feed *feed.Feed
	Err  error
}

func NewParseFileTask(path string, options []feed.Option, filterer *feed.Filterer, filters []config.Filter) *ParseFileTask {
	return &ParseFileTask{
		Task:     NewTask(TaskTypeParseFile, path),
		parser:   feed.NewParser(options...),
		filterer: filterer,
		filters:  filters,
	}
}

func (t *ParseFileTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		t.Err = ctx.Err()
		return t.Err
	default:
	}

	parsed, err := t.parser.RunFile(t.Source)
	if err != nil {
		t.Err = fmt.Errorf("failed to parse %s: %w", t.Source, err)
		return t.Err
	}

	total := len(parsed.Entries)
	if t.filterer != nil {
		parsed.Entries = t.filterer.Run(parsed.Entries, t.filters)
	}
	t.Feed = parsed

	slog.Debug("Task completed",
		"type", string(t.Type),
		"source", t.Source,
		"duration", t.GetDuration(),
		"total", total,
		"kept", len(parsed.Entries))

	return nil
}
