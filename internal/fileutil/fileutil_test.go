package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tracksort/internal/fileutil"
)

func TestCopyPreservingTimesKeepsContentAndModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")

	payload := []byte("audio payload")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	stamp := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatalf("set source times: %v", err)
	}

	if err := fileutil.CopyPreservingTimes(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(copied) != string(payload) {
		t.Fatalf("destination content = %q, want %q", copied, payload)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("destination mtime = %v, want %v", info.ModTime(), stamp)
	}
}

func TestCopyPreservingTimesMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := fileutil.CopyPreservingTimes(filepath.Join(dir, "absent.mp3"), filepath.Join(dir, "out.mp3"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
