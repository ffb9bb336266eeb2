package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlog2arrow/config"
)

// runWithConfig parses args with the export flags and returns the merged config.
func runWithConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()

	var cfg *config.Config
	app := &cli.App{
		Name:  "test",
		Flags: append(exportFlags(), configFlag()),
		Action: func(c *cli.Context) error {
			var err error
			cfg, err = loadConfig(c)
			return err
		},
	}
	if err := app.Run(append([]string{"test"}, args...)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	cfg := runWithConfig(t, "--config", missing)

	if cfg.Export.MaxCount != 1024 {
		t.Errorf("MaxCount = %d, want 1024", cfg.Export.MaxCount)
	}
	if cfg.Export.TrimMessage {
		t.Error("TrimMessage = true, want false")
	}
	if cfg.Filters != (config.FilterConfig{}) {
		t.Errorf("Filters = %+v, want none", cfg.Filters)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	cfg := runWithConfig(t,
		"--config", missing,
		"--max-count", "5",
		"--trim-message",
		"--author", "Bob",
		"--since", "2024-01-01T00:00:00Z",
		"--until", "2024-02-01T00:00:00Z",
		"--rev", "main",
		"--order", "dfs",
		"--backend", "git-cli",
	)

	if cfg.Filters.Author == nil || *cfg.Filters.Author != "Bob" {
		t.Fatalf("Author = %v, want %q", cfg.Filters.Author, "Bob")
	}

	got := *cfg
	got.Filters.Author = nil
	want := config.Config{
		Export:     config.ExportConfig{MaxCount: 5, TrimMessage: true},
		Filters:    config.FilterConfig{Since: "2024-01-01T00:00:00Z", Until: "2024-02-01T00:00:00Z"},
		Repository: config.RepositoryConfig{Rev: "main", Order: "dfs", Backend: "git-cli"},
	}
	if got != want {
		t.Fatalf("config = %+v, want %+v", got, want)
	}
}

func TestLoadConfig_ExplicitEmptyAuthor(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	cfg := runWithConfig(t, "--config", missing, "--author", "")
	if cfg.Filters.Author == nil || *cfg.Filters.Author != "" {
		t.Fatalf("Author = %v, want explicit empty", cfg.Filters.Author)
	}

	cfg = runWithConfig(t, "--config", missing)
	if cfg.Filters.Author != nil {
		t.Fatalf("Author = %q, want unset", *cfg.Filters.Author)
	}
}

func TestLoadConfig_FileValuesKeptUnlessFlagSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"export": {"maxCount": 7, "trimMessage": true}, "filters": {"author": "Alice"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := runWithConfig(t, "--config", path, "--author", "Bob")

	if cfg.Export.MaxCount != 7 {
		t.Errorf("MaxCount = %d, want 7 from file", cfg.Export.MaxCount)
	}
	if !cfg.Export.TrimMessage {
		t.Error("TrimMessage = false, want true from file")
	}
	if cfg.Filters.Author == nil || *cfg.Filters.Author != "Bob" {
		t.Errorf("Author = %v, want flag value %q", cfg.Filters.Author, "Bob")
	}
}
