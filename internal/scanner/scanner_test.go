package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTree creates files (with trivial content) under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("# placeholder\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_DefaultPattern(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"order_agent.py",
		"billing_agent.py",
		"helpers.py",
		"readme.md",
		"nested/pricing_agent.py",
	)

	got, err := Scan(dir, Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	want := []string{"billing_agent.py", "nested/pricing_agent.py", "order_agent.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %v, want %v", got, want)
	}
}

func TestScan_SkipsHiddenAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"visible_agent.py",
		".git/hooks/sneaky_agent.py",
		".hidden_agent.py",
		"__pycache__/cached_agent.py",
	)

	got, err := Scan(dir, Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	want := []string{"visible_agent.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %v, want %v", got, want)
	}
}

func TestScan_ExcludesArtifact(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "real_agent.py", "fake_manifest_agent.py")

	got, err := Scan(dir, Options{Exclude: []string{"fake_manifest_agent.py"}})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	want := []string{"real_agent.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %v, want %v", got, want)
	}
}

func TestScan_DoublestarPattern(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"agents/chat/support_bot.py",
		"agents/tools/resize.py",
		"top_bot.py",
	)

	got, err := Scan(dir, Options{Patterns: []string{"agents/**/*_bot.py"}})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	want := []string{"agents/chat/support_bot.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %v, want %v", got, want)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	got, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	if err != nil {
		t.Fatalf("missing root should not error, got: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Scan = %v, want empty", got)
	}
}

func TestScan_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "plain.txt")

	if _, err := Scan(filepath.Join(dir, "plain.txt"), Options{}); err == nil {
		t.Fatal("expected error for non-directory root, got nil")
	}
}

func TestScan_EmptyRoot(t *testing.T) {
	got, err := Scan(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Scan = %v, want empty", got)
	}
}
