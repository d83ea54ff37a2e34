// Package organizer computes library destinations from resolved track
// metadata and moves files into place. Names are sanitized for cross-platform
// filesystems, destinations come from configurable folder and filename
// templates, and collisions get a numeric suffix rather than overwriting.
package organizer
