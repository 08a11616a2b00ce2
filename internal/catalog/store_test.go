package catalog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gazecat/internal/catalog"
	"gazecat/internal/recording"
)

func openTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.OpenPath(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertInsertsAndUpdates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	inserted, err := store.Upsert(ctx, catalog.Entry{
		Path:      "/recordings/a",
		Format:    recording.Mobile,
		Label:     "Mobile Session",
		SizeBytes: 1024,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if inserted.ID == "" {
		t.Fatal("expected generated id")
	}
	if inserted.FirstSeenAt.IsZero() || inserted.ScannedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	// Re-scanning after the legacy player upgraded the directory keeps the
	// id and first-seen timestamp but moves the format.
	updated, err := store.Upsert(ctx, catalog.Entry{
		Path:      "/recordings/a",
		Format:    recording.OldStyle,
		Label:     "Mobile Session",
		SizeBytes: 2048,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != inserted.ID {
		t.Fatalf("id changed on upsert: %q vs %q", updated.ID, inserted.ID)
	}
	if !updated.FirstSeenAt.Equal(inserted.FirstSeenAt) {
		t.Fatal("first-seen timestamp changed on upsert")
	}
	if updated.Format != recording.OldStyle {
		t.Fatalf("format not updated: %s", updated.Format)
	}
	if updated.SizeBytes != 2048 {
		t.Fatalf("size not updated: %d", updated.SizeBytes)
	}
}

func TestGetByPathMissing(t *testing.T) {
	store := openTestStore(t)
	entry, err := store.GetByPath(context.Background(), "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry, got %+v", entry)
	}
}

func TestListOrdersByPath(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, path := range []string{"/recordings/b", "/recordings/a"} {
		if _, err := store.Upsert(ctx, catalog.Entry{Path: path, Format: recording.NewStyle}); err != nil {
			t.Fatalf("upsert %s: %v", path, err)
		}
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("unexpected entry count: %d", len(entries))
	}
	if entries[0].Path != "/recordings/a" || entries[1].Path != "/recordings/b" {
		t.Fatalf("entries not ordered: %q, %q", entries[0].Path, entries[1].Path)
	}
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Upsert(ctx, catalog.Entry{Path: "/recordings/a", Format: recording.Invisible}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	removed, err := store.Remove(ctx, "/recordings/a")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal to report an existing row")
	}

	removed, err = store.Remove(ctx, "/recordings/a")
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if removed {
		t.Fatal("second removal must report no row")
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	recordedAt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []catalog.Entry{
		{Path: "/r/a", Format: recording.NewStyle, SizeBytes: 10, RecordedAt: &recordedAt},
		{Path: "/r/b", Format: recording.NewStyle, SizeBytes: 20},
		{Path: "/r/c", Format: recording.Invisible, SizeBytes: 5},
	}
	for _, entry := range seed {
		if _, err := store.Upsert(ctx, entry); err != nil {
			t.Fatalf("upsert %s: %v", entry.Path, err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("unexpected total: %d", stats.Total)
	}
	if stats.TotalBytes != 35 {
		t.Fatalf("unexpected total bytes: %d", stats.TotalBytes)
	}
	if stats.ByFormat[recording.NewStyle] != 2 || stats.ByFormat[recording.Invisible] != 1 {
		t.Fatalf("unexpected by-format counts: %v", stats.ByFormat)
	}

	entry, err := store.GetByPath(ctx, "/r/a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.RecordedAt == nil || !entry.RecordedAt.Equal(recordedAt) {
		t.Fatalf("recorded-at not persisted: %v", entry.RecordedAt)
	}
}
