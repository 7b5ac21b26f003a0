package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

type report struct {
	Hand   string  `json:"hand"`
	Equity float64 `json:"equity"`
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	want := report{Hand: "AsAh", Equity: 0.81}

	if err := WriteJSON(path, want); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var got report
	if err := ReadJSON(path, &got); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0o644)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "report.json" {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}

func TestWriteAtomicOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteAtomic(path, []byte("initial"), 0o600); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}
	if err := WriteAtomic(path, []byte("updated"), 0o600); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "updated" {
		t.Errorf("File content mismatch: got %q", data)
	}
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	if err := WriteJSON("/nonexistent/dir/out.json", report{}); err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
	if err := WriteJSON(filepath.Join(t.TempDir(), "bad.json"), make(chan int)); err == nil {
		t.Error("Expected error encoding a channel")
	}
	if err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &report{}); err == nil {
		t.Error("Expected error reading a missing file")
	}
}
