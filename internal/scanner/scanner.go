package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Options controls which files a scan yields.
type Options struct {
	// ExcludeDirs lists directory names skipped wherever they appear.
	ExcludeDirs []string
}

// Scan walks root and returns every MP3 file in deterministic walk order.
// The root must exist and be a directory.
func Scan(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat source path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", root)
	}

	excluded := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		if name = strings.TrimSpace(name); name != "" {
			excluded[name] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var files []string

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if _, skip := excluded[entry.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			return nil
		}
		if !entry.Type().IsRegular() {
			// Follow file symlinks; anything else is skipped.
			if entry.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			target, statErr := os.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				return nil
			}
		}
		key := canonicalKey(path)
		if _, dup := seen[key]; dup {
			return nil
		}
		seen[key] = struct{}{}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", root, walkErr)
	}
	return files, nil
}

// Count returns how many files a scan of root would yield.
func Count(root string, opts Options) (int, error) {
	files, err := Scan(root, opts)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// canonicalKey identifies the underlying file so the de-duplication set keys
// on file identity, not on the spelling of the path that reached it. Symlink
// and case aliases of one file collapse to one entry while distinct files
// that differ only by letter case stay distinct.
func canonicalKey(path string) string {
	if info, err := os.Stat(path); err == nil {
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			return fmt.Sprintf("%d:%d", st.Dev, st.Ino)
		}
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
