package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"gazecat/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GAZECAT_ROOTS", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCatalog := filepath.Join(tempHome, ".local", "share", "gazecat")
	if cfg.Paths.CatalogDir != wantCatalog {
		t.Fatalf("unexpected catalog dir: got %q want %q", cfg.Paths.CatalogDir, wantCatalog)
	}
	if cfg.Scan.Workers != 4 {
		t.Fatalf("unexpected worker default: %d", cfg.Scan.Workers)
	}
	if !cfg.Watch.Devices {
		t.Fatal("expected device monitoring enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if cfg.CatalogPath() != filepath.Join(wantCatalog, "catalog.db") {
		t.Fatalf("unexpected catalog path: %q", cfg.CatalogPath())
	}
}

func TestLoadReadsFileAndNormalizesRoots(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[paths]
roots = ["~/recordings", "~/recordings", ""]

[scan]
workers = 8

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected config file to be found: exists=%v resolved=%q", exists, resolved)
	}
	if len(cfg.Paths.Roots) != 1 {
		t.Fatalf("expected duplicate and blank roots dropped, got %v", cfg.Paths.Roots)
	}
	if cfg.Paths.Roots[0] != filepath.Join(tempHome, "recordings") {
		t.Fatalf("root not expanded: %q", cfg.Paths.Roots[0])
	}
	if cfg.Scan.Workers != 8 {
		t.Fatalf("unexpected workers: %d", cfg.Scan.Workers)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadRootsFromEnvironment(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GAZECAT_ROOTS", "~/a"+string(os.PathListSeparator)+"~/b")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []string{filepath.Join(tempHome, "a"), filepath.Join(tempHome, "b")}
	if len(cfg.Paths.Roots) != len(want) {
		t.Fatalf("unexpected roots: %v", cfg.Paths.Roots)
	}
	for i := range want {
		if cfg.Paths.Roots[i] != want[i] {
			t.Fatalf("root %d: got %q want %q", i, cfg.Paths.Roots[i], want[i])
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero workers to fail validation")
	}

	cfg = config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown log format to fail validation")
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
}
