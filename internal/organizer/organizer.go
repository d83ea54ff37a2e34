package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"tracksort/internal/fileutil"
	"tracksort/internal/services"
)

// MoveResult describes what a move did (or would do, in dry-run mode).
type MoveResult struct {
	Source      string
	Destination string
	Moved       bool
	Skipped     bool
	Reason      string
	BackedUp    bool
	BackupPath  string
}

// Move relocates src to dst. The destination directory is created, an
// occupied destination gets a " (N)" suffix, and when backupRoot is set the
// source is copied there (timestamps preserved) before the move. Renames
// across filesystems fall back to copy and delete. After a successful move
// the now-empty source directories are removed best-effort. In dry-run mode
// nothing on disk changes.
func Move(src, dst string, dryRun bool, backupRoot string) (MoveResult, error) {
	result := MoveResult{Source: src, Destination: dst}

	if filepath.Clean(src) == filepath.Clean(dst) {
		result.Skipped = true
		result.Reason = "same path"
		return result, nil
	}
	if dryRun {
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return result, services.Wrap(services.ErrOrganizing, "organizing", "create destination dir", dst, err)
	}

	dst, err := resolveCollision(dst)
	if err != nil {
		return result, services.Wrap(services.ErrOrganizing, "organizing", "resolve destination", dst, err)
	}
	result.Destination = dst

	if backupRoot != "" {
		backupPath := filepath.Join(backupRoot, filepath.Base(src))
		if err := os.MkdirAll(backupRoot, 0o755); err != nil {
			return result, services.Wrap(services.ErrOrganizing, "organizing", "create backup dir", backupRoot, err)
		}
		if err := fileutil.CopyPreservingTimes(src, backupPath); err != nil {
			return result, services.Wrap(services.ErrOrganizing, "organizing", "backup source", src, err)
		}
		result.BackedUp = true
		result.BackupPath = backupPath
	}

	if err := moveFile(src, dst); err != nil {
		return result, services.Wrap(services.ErrOrganizing, "organizing", "move file", src, err)
	}
	result.Moved = true

	cleanupEmptyDirs(filepath.Dir(src))
	return result, nil
}

// MoveToUnmatched relocates a file that could not be identified into the
// unmatched folder under outputRoot, preserving its path relative to
// scanRoot. Files outside scanRoot keep only their base name.
func MoveToUnmatched(src, scanRoot, outputRoot, unmatchedDir string, dryRun bool) (MoveResult, error) {
	relative, err := filepath.Rel(scanRoot, src)
	if err != nil || strings.HasPrefix(relative, "..") {
		relative = filepath.Base(src)
	}
	dst := filepath.Join(outputRoot, unmatchedDir, relative)
	return Move(src, dst, dryRun, "")
}

// resolveCollision returns dst untouched when free, otherwise the first
// "name (N).ext" variant that does not exist yet.
func resolveCollision(dst string) (string, error) {
	if _, err := os.Stat(dst); errors.Is(err, os.ErrNotExist) {
		return dst, nil
	} else if err != nil {
		return "", err
	}

	ext := filepath.Ext(dst)
	stem := strings.TrimSuffix(dst, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, counter, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}
}

func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if err := fileutil.CopyPreservingTimes(src, dst); err != nil {
				return fmt.Errorf("copy across devices: %w", err)
			}
			if err := os.Remove(src); err != nil {
				return fmt.Errorf("remove source after copy: %w", err)
			}
			return nil
		}
		return err
	}
	return nil
}

// cleanupEmptyDirs walks up from dir removing empty directories. Best
// effort; stops silently at the first non-empty or unremovable level.
func cleanupEmptyDirs(dir string) {
	for {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
