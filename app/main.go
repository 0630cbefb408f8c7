package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/feedparser/app/cfg"
	"github.com/lysyi3m/feedparser/app/config"
	"github.com/lysyi3m/feedparser/app/feed"
	"github.com/lysyi3m/feedparser/app/tasks"
)

func main() {
	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if appCfg == nil {
		return
	}

	setupLogging(appCfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("Starting feedparse", "version", appCfg.Version, "files", len(appCfg.Files), "workers", appCfg.WorkerCount)

	status := run(ctx, appCfg, os.Stdout)
	stop()
	os.Exit(status)
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// run parses every file concurrently and writes the results in argument
// order. It returns the process exit status.
func run(ctx context.Context, appCfg *cfg.Cfg, out io.Writer) int {
	conf, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	namespaces := append(conf.IgnoredNamespaces, appCfg.IgnoredNamespaces...)
	options := []feed.Option{feed.WithIgnoredNamespaces(namespaces...)}
	filterer := feed.NewFilterer()

	scheduler := tasks.NewScheduler(ctx, appCfg.WorkerCount)
	scheduler.Start()

	parseTasks := make([]*tasks.ParseFileTask, 0, len(appCfg.Files))
	for _, path := range appCfg.Files {
		task := tasks.NewParseFileTask(path, options, filterer, conf.Filters)
		if err := scheduler.EnqueueTask(task); err != nil {
			task.Err = fmt.Errorf("failed to enqueue %s: %w", path, err)
		}
		parseTasks = append(parseTasks, task)
	}
	scheduler.Stop()

	generator := feed.NewGenerator(appCfg.Version)
	status := 0
	for _, task := range parseTasks {
		if task.Err == nil && task.Feed == nil {
			task.Err = fmt.Errorf("failed to parse %s: %w", task.Source, context.Canceled)
		}
		if task.Err != nil {
			status = 1
		}

		switch appCfg.Format {
		case cfg.FormatRSS:
			if task.Err != nil {
				continue
			}
			rss, err := generator.Run(task.Feed)
			if err != nil {
				slog.Error("Failed to generate RSS", "source", task.Source, "error", err)
				status = 1
				continue
			}
			fmt.Fprintln(out, rss)
		default:
			writeText(out, task.Source, task.Feed, task.Err)
		}
	}

	return status
}

func writeText(out io.Writer, path string, f *feed.Feed, parseErr error) {
	fmt.Fprintln(out, path)
	if parseErr != nil {
		fmt.Fprintf(out, "Error: %s\n", parseErr)
		return
	}

	fmt.Fprintf(out, "%d entries.\n", len(f.Entries))
	for _, e := range f.Entries {
		fmt.Fprintln(out, "------------------------")
		fmt.Fprintf(out, "Subject: %s\n", e.Title)
		fmt.Fprintf(out, "From: %s\n", e.Author.DisplayText)
		fmt.Fprintf(out, "URL: %s (%s)\n", e.Link, e.LinkTitle)
		fmt.Fprintf(out, "ID: %s\n", e.ID)
		fmt.Fprintf(out, "Created: %s\n", e.PublicationDate)
		fmt.Fprintf(out, "Modified: %s\n", e.ModificationDate)
		fmt.Fprintln(out)
		fmt.Fprintln(out, cmp.Or(e.Content, e.Summary))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "========================")
}
