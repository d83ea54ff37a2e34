// Package fileutil provides file copy helpers shared by the organizer.
package fileutil

import (
	"fmt"
	"io"
	"os"
)

// CopyPreservingTimes copies src to dst, carrying over the source's
// permission bits and modification time. The destination is synced before
// the timestamps are applied so a crash cannot leave a newer-looking
// partial copy.
func CopyPreservingTimes(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dest, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return fmt.Errorf("copy data: %w", err)
	}
	if err := dest.Sync(); err != nil {
		dest.Close()
		return fmt.Errorf("sync destination: %w", err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
