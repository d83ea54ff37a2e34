package organizer_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tracksort/internal/organizer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestMoveRelocatesFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in", "song.mp3")
	dst := filepath.Join(root, "out", "Artist", "Album", "01 - Song.mp3")
	writeFile(t, src, "audio")

	result, err := organizer.Move(src, dst, false, "")
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !result.Moved || result.Skipped {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source still present: %v", err)
	}
}

func TestMoveSamePathSkips(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "song.mp3")
	writeFile(t, src, "audio")

	result, err := organizer.Move(src, src, false, "")
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !result.Skipped || result.Moved {
		t.Fatalf("expected same-path skip, got %+v", result)
	}
}

func TestMoveDryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in", "song.mp3")
	dst := filepath.Join(root, "out", "song.mp3")
	writeFile(t, src, "audio")

	result, err := organizer.Move(src, dst, true, "")
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if result.Moved {
		t.Fatal("dry run reported a move")
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("dry run moved the source: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dst)); !os.IsNotExist(err) {
		t.Fatal("dry run created the destination directory")
	}
}

func TestMoveCollisionSuffix(t *testing.T) {
	root := t.TempDir()
	dst := filepath.Join(root, "out", "01 - Song.mp3")
	writeFile(t, dst, "existing")

	src := filepath.Join(root, "in", "dupe.mp3")
	writeFile(t, src, "audio")

	result, err := organizer.Move(src, dst, false, "")
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	want := filepath.Join(root, "out", "01 - Song (1).mp3")
	if result.Destination != want {
		t.Fatalf("destination = %q, want %q", result.Destination, want)
	}

	src2 := filepath.Join(root, "in", "dupe2.mp3")
	writeFile(t, src2, "audio")
	result2, err := organizer.Move(src2, dst, false, "")
	if err != nil {
		t.Fatalf("second Move failed: %v", err)
	}
	want2 := filepath.Join(root, "out", "01 - Song (2).mp3")
	if result2.Destination != want2 {
		t.Fatalf("destination = %q, want %q", result2.Destination, want2)
	}
}

func TestMoveBackupPreservesTimestamps(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in", "song.mp3")
	writeFile(t, src, "audio")
	stamp := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	backupRoot := filepath.Join(root, ".backup")
	dst := filepath.Join(root, "out", "song.mp3")
	result, err := organizer.Move(src, dst, false, backupRoot)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !result.BackedUp {
		t.Fatalf("expected backup, got %+v", result)
	}
	info, err := os.Stat(result.BackupPath)
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("backup mtime = %v, want %v", info.ModTime(), stamp)
	}
	data, err := os.ReadFile(result.BackupPath)
	if err != nil || string(data) != "audio" {
		t.Fatalf("backup content = %q, err %v", data, err)
	}
}

func TestMoveCleansEmptySourceDirs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in", "artist", "album", "song.mp3")
	dst := filepath.Join(root, "out", "song.mp3")
	writeFile(t, src, "audio")

	if _, err := organizer.Move(src, dst, false, ""); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "in", "artist")); !os.IsNotExist(err) {
		t.Fatal("empty source tree was not cleaned up")
	}
}

func TestMoveKeepsNonEmptySourceDirs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in", "song.mp3")
	sibling := filepath.Join(root, "in", "other.mp3")
	dst := filepath.Join(root, "out", "song.mp3")
	writeFile(t, src, "audio")
	writeFile(t, sibling, "other")

	if _, err := organizer.Move(src, dst, false, ""); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if _, err := os.Stat(sibling); err != nil {
		t.Fatalf("sibling disturbed: %v", err)
	}
}

func TestMoveToUnmatchedPreservesStructure(t *testing.T) {
	root := t.TempDir()
	scanRoot := filepath.Join(root, "library")
	src := filepath.Join(scanRoot, "ripped", "cd1", "track.mp3")
	writeFile(t, src, "audio")

	result, err := organizer.MoveToUnmatched(src, scanRoot, filepath.Join(root, "out"), "_unmatched", false)
	if err != nil {
		t.Fatalf("MoveToUnmatched failed: %v", err)
	}
	want := filepath.Join(root, "out", "_unmatched", "ripped", "cd1", "track.mp3")
	if result.Destination != want {
		t.Fatalf("destination = %q, want %q", result.Destination, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("unmatched file missing: %v", err)
	}
}

func TestMoveToUnmatchedOutsideScanRoot(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "elsewhere", "stray.mp3")
	writeFile(t, src, "audio")

	result, err := organizer.MoveToUnmatched(src, filepath.Join(root, "library"), filepath.Join(root, "out"), "_unmatched", false)
	if err != nil {
		t.Fatalf("MoveToUnmatched failed: %v", err)
	}
	want := filepath.Join(root, "out", "_unmatched", "stray.mp3")
	if result.Destination != want {
		t.Fatalf("destination = %q, want %q", result.Destination, want)
	}
}
