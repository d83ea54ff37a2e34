package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"tracksort/internal/scanner"
	"tracksort/internal/testsupport"
)

func TestScanFindsMP3sCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mp3"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "sub", "b.MP3"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "sub", "notes.txt"), 16)

	files, err := scanner.Scan(root, scanner.Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestScanSkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "keep.mp3"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "_unmatched", "skip.mp3"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "nested", ".backup", "skip2.mp3"), 16)

	files, err := scanner.Scan(root, scanner.Options{ExcludeDirs: []string{"_unmatched", ".backup"}})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.mp3" {
		t.Fatalf("expected only keep.mp3, got %v", files)
	}
}

func TestScanDeduplicatesSymlinkedPaths(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real", "song.mp3")
	testsupport.WriteFile(t, target, 16)
	if err := os.Symlink(target, filepath.Join(root, "dup.mp3")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := scanner.Scan(root, scanner.Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected symlinked duplicate collapsed, got %v", files)
	}
}

func TestScanKeepsCaseDistinctFiles(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Song.mp3"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "song.mp3"), 16)

	// On a case-insensitive filesystem the two writes hit one file; either
	// way every distinct file on disk must come back exactly once.
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	files, err := scanner.Scan(root, scanner.Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != len(entries) {
		t.Fatalf("scanned %d files, want %d: %v", len(files), len(entries), files)
	}
}

func TestScanRejectsMissingRoot(t *testing.T) {
	if _, err := scanner.Scan(filepath.Join(t.TempDir(), "absent"), scanner.Options{}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestScanRejectsFileRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "just-a-file.mp3")
	testsupport.WriteFile(t, file, 16)
	if _, err := scanner.Scan(file, scanner.Options{}); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestCountMatchesScan(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.mp3"), 16)
	testsupport.WriteFile(t, filepath.Join(root, "b.mp3"), 16)

	n, err := scanner.Count(root, scanner.Options{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}
}
