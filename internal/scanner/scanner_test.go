package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gazecat/internal/catalog"
	"gazecat/internal/config"
	"gazecat/internal/recording"
	"gazecat/internal/scanner"
	"gazecat/internal/testsupport"
)

func newTestScanner(t *testing.T) (*scanner.Scanner, *catalog.Store, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.CatalogDir = t.TempDir()
	cfg.Paths.LogDir = filepath.Join(cfg.Paths.CatalogDir, "logs")
	cfg.Scan.Workers = 2

	store, err := catalog.Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	s, err := scanner.New(&cfg, store, nil)
	if err != nil {
		t.Fatalf("new scanner: %v", err)
	}
	return s, store, &cfg
}

func TestScanClassifiesAllFormats(t *testing.T) {
	s, store, _ := newTestScanner(t)
	root := t.TempDir()

	testsupport.WriteNewStyleRecording(t, mkdir(t, root, "session_new"))
	testsupport.WriteOldStyleRecording(t, mkdir(t, root, "session_old"))
	testsupport.WriteInvisibleRecording(t, mkdir(t, root, "session_pi"))
	testsupport.WriteMobileRecording(t, mkdir(t, root, "nested/session_mobile"))
	mkdir(t, root, "not_a_recording")

	summary, err := s.Scan(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if summary.Classified != 4 {
		t.Fatalf("unexpected classified count: %d", summary.Classified)
	}
	if summary.Faults != 0 {
		t.Fatalf("unexpected faults: %d", summary.Faults)
	}
	for _, format := range recording.Types() {
		if summary.ByFormat[format] != 1 {
			t.Fatalf("expected one %s recording, got %d", format, summary.ByFormat[format])
		}
	}

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("unexpected catalog size: %d", len(entries))
	}
}

func TestScanDoesNotDescendIntoRecordings(t *testing.T) {
	s, store, _ := newTestScanner(t)
	root := t.TempDir()

	outer := testsupport.WriteInvisibleRecording(t, mkdir(t, root, "outer"))
	// A marker inside an already-classified recording must be ignored.
	testsupport.WriteNewStyleRecording(t, mkdir(t, outer, "PI left v1 ps1"))

	summary, err := s.Scan(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if summary.Classified != 1 {
		t.Fatalf("unexpected classified count: %d", summary.Classified)
	}
	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Format != recording.Invisible {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestScanPrunesVanishedRecordings(t *testing.T) {
	s, store, _ := newTestScanner(t)
	root := t.TempDir()

	gone := testsupport.WriteMobileRecording(t, mkdir(t, root, "gone"))
	if _, err := s.Scan(context.Background(), []string{root}); err != nil {
		t.Fatalf("first scan: %v", err)
	}

	if err := os.RemoveAll(gone); err != nil {
		t.Fatalf("remove recording: %v", err)
	}
	summary, err := s.Scan(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if summary.Removed != 1 {
		t.Fatalf("expected one pruned entry, got %d", summary.Removed)
	}

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("catalog should be empty, got %d entries", len(entries))
	}
}

func TestScanCountsFaults(t *testing.T) {
	s, _, _ := newTestScanner(t)
	root := t.TempDir()

	// Corrupt Invisible marker: the directory is a candidate but
	// classification propagates a parse fault.
	dir := mkdir(t, root, "broken")
	if err := os.WriteFile(filepath.Join(dir, "info.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	summary, err := s.Scan(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if summary.Faults != 1 {
		t.Fatalf("expected one fault, got %d", summary.Faults)
	}
	if summary.Classified != 0 {
		t.Fatalf("expected nothing classified, got %d", summary.Classified)
	}
}

func TestScanRequiresRoots(t *testing.T) {
	s, _, _ := newTestScanner(t)
	if _, err := s.Scan(context.Background(), nil); err == nil {
		t.Fatal("expected error when no roots configured")
	}
}

func TestClassifyOne(t *testing.T) {
	s, _, _ := newTestScanner(t)
	dir := testsupport.WriteNewStyleRecording(t, t.TempDir())

	entry, err := s.ClassifyOne(context.Background(), dir)
	if err != nil {
		t.Fatalf("classify one: %v", err)
	}
	if entry.Format != recording.NewStyle {
		t.Fatalf("unexpected format: %s", entry.Format)
	}
	if entry.Label != "Test Recording" {
		t.Fatalf("label not taken from marker: %q", entry.Label)
	}
	if entry.SizeBytes <= 0 {
		t.Fatalf("expected non-zero size, got %d", entry.SizeBytes)
	}
	if entry.RecordedAt == nil {
		t.Fatal("expected recorded-at from start_time_system_s")
	}
}

func mkdir(t *testing.T, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	return dir
}
