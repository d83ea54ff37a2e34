// Package scanner enumerates candidate MP3 files under a source root.
//
// Matching is case-insensitive on the extension, configured directory names
// are skipped, and results are de-duplicated by file identity so a file
// reachable twice (symlinks, case-insensitive filesystems) is processed once.
package scanner
