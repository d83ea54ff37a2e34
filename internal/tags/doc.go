// Package tags reads and updates ID3v2 metadata on MP3 files. Updates are
// computed as a field-level diff against the current tags so that re-running
// over an already organized file writes nothing.
package tags
