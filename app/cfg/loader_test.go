package cfg

import (
	"os"
	"strings"
	"testing"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "FEEDPARSE_CONFIG", "WORKER_COUNT", "DEBUG")

	cfg, err := Load([]string{"a.xml", "b.xml"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Format != FormatText {
		t.Errorf("Expected format 'text', got '%s'", cfg.Format)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("Expected worker count 4, got %d", cfg.WorkerCount)
	}
	if cfg.Debug {
		t.Error("Expected debug to be disabled")
	}
	if len(cfg.Files) != 2 || cfg.Files[0] != "a.xml" || cfg.Files[1] != "b.xml" {
		t.Errorf("Expected files [a.xml b.xml], got %v", cfg.Files)
	}
	if cfg.Version != GetVersion() {
		t.Errorf("Expected version '%s', got '%s'", GetVersion(), cfg.Version)
	}
}

func TestLoadFlags(t *testing.T) {
	clearEnv(t, "FEEDPARSE_CONFIG", "WORKER_COUNT", "DEBUG")

	cfg, err := Load([]string{
		"-c", "feedparse.yml",
		"--format", "rss",
		"-n", "urn:a",
		"--ignore-namespace", "urn:b",
		"-w", "2",
		"--debug",
		"feed.xml",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.ConfigPath != "feedparse.yml" {
		t.Errorf("Expected config path 'feedparse.yml', got '%s'", cfg.ConfigPath)
	}
	if cfg.Format != FormatRSS {
		t.Errorf("Expected format 'rss', got '%s'", cfg.Format)
	}
	if strings.Join(cfg.IgnoredNamespaces, ",") != "urn:a,urn:b" {
		t.Errorf("Expected namespaces [urn:a urn:b], got %v", cfg.IgnoredNamespaces)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t, "DEBUG")
	t.Setenv("FEEDPARSE_CONFIG", "/etc/feedparse.yml")
	t.Setenv("WORKER_COUNT", "8")

	cfg, err := Load([]string{"feed.xml"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ConfigPath != "/etc/feedparse.yml" {
		t.Errorf("Expected config path from environment, got '%s'", cfg.ConfigPath)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("Expected worker count 8, got %d", cfg.WorkerCount)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t, "FEEDPARSE_CONFIG", "WORKER_COUNT", "DEBUG")

	tests := map[string][]string{
		"no files":       {},
		"unknown format": {"--format", "json", "feed.xml"},
		"zero workers":   {"-w", "0", "feed.xml"},
		"unknown flag":   {"--port", "8080", "feed.xml"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(args)
			if err == nil {
				t.Errorf("Expected error, got config %+v", cfg)
			}
		})
	}
}
