package preflight_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gazecat/internal/config"
	"gazecat/internal/preflight"
)

func TestCheckWritableDirectory(t *testing.T) {
	dir := t.TempDir()

	result := preflight.CheckWritableDirectory("Catalog directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for %s: %s", dir, result.Detail)
	}

	result = preflight.CheckWritableDirectory("Catalog directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = preflight.CheckWritableDirectory("Catalog directory", file)
	if result.Passed {
		t.Fatal("expected failure for non-directory")
	}
}

func TestCheckReadableDirectory(t *testing.T) {
	result := preflight.CheckReadableDirectory("Recording root 1", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass: %s", result.Detail)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	result := preflight.CheckFreeSpace("Catalog free space", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass: %s", result.Detail)
	}
	if result.Detail == "" {
		t.Fatal("expected a detail with the free amount")
	}
}

func TestRunAllWithoutRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.CatalogDir = t.TempDir()
	cfg.Paths.LogDir = filepath.Join(cfg.Paths.CatalogDir, "logs")
	cfg.Paths.Roots = nil

	results := preflight.RunAll(&cfg)
	if preflight.AllPassed(results) {
		t.Fatal("missing roots should fail preflight")
	}

	found := false
	for _, result := range results {
		if result.Name == "Recording roots" && !result.Passed {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a failed roots check")
	}
}

func TestRunAllWithRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.CatalogDir = t.TempDir()
	cfg.Paths.LogDir = filepath.Join(cfg.Paths.CatalogDir, "logs")
	cfg.Paths.Roots = []string{t.TempDir()}

	results := preflight.RunAll(&cfg)
	if !preflight.AllPassed(results) {
		for _, result := range results {
			t.Logf("%s: passed=%v detail=%s", result.Name, result.Passed, result.Detail)
		}
		t.Fatal("expected all checks to pass")
	}
}
