package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gazecat/internal/testsupport"
)

func TestScanListAndExport(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.WriteNewStyleRecording(t, mkdirCLI(t, env.root, "session_a"))
	testsupport.WriteInvisibleRecording(t, mkdirCLI(t, env.root, "session_b"))

	out, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Classified 2 recording(s)")

	out, _, err = runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "New Style")
	requireContains(t, out, "Invisible")
	requireContains(t, out, "2 recording(s)")

	out, _, err = runCLI(t, []string{"list", "--format", "invisible"}, env.configPath)
	if err != nil {
		t.Fatalf("list --format: %v", err)
	}
	requireContains(t, out, "1 recording(s)")

	target := filepath.Join(t.TempDir(), "export.json")
	out, _, err = runCLI(t, []string{"export", "--output", target}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 2 recording(s)")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if doc.Count != 2 || len(doc.Recordings) != 2 {
		t.Fatalf("unexpected export contents: count=%d recordings=%d", doc.Count, len(doc.Recordings))
	}
}

func TestListEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

func TestScanFailsPreflightWithoutRoots(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.RemoveAll(env.root); err != nil {
		t.Fatalf("remove root: %v", err)
	}

	_, stderr, err := runCLI(t, []string{"scan"}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, stderr, "FAIL")
}

func mkdirCLI(t *testing.T, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	return dir
}
