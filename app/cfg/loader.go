package cfg

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

const (
	FormatText = "text"
	FormatRSS  = "rss"
)

type rawCfg struct {
	ConfigPath        string   `short:"c" long:"config" env:"FEEDPARSE_CONFIG" description:"YAML file with ignored namespaces and entry filters"`
	Format            string   `short:"f" long:"format" default:"text" choice:"text" choice:"rss" description:"Output format"`
	IgnoredNamespaces []string `short:"n" long:"ignore-namespace" description:"Namespace URI whose elements are skipped (repeatable)"`
	WorkerCount       int      `short:"w" long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of files parsed concurrently"`
	Debug             bool     `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

// Load parses command-line arguments and environment variables. It returns
// nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS] FILE..."

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", raw.WorkerCount)
	}

	return &Cfg{
		ConfigPath:        raw.ConfigPath,
		Format:            raw.Format,
		IgnoredNamespaces: raw.IgnoredNamespaces,
		WorkerCount:       raw.WorkerCount,
		Debug:             raw.Debug,
		Files:             raw.Args.Files,
		Version:           GetVersion(),
	}, nil
}
