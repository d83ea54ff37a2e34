package metadata

import (
	"fmt"
	"strings"
)

// Sentinel values used when the source data has no usable field. Core fields
// are always populated after resolution; they are never left empty.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Track is the canonical resolved record for one audio file. Title, Artist,
// and Album are always non-empty after resolution (sentinels when the source
// is silent). Numeric fields hold a positive value or zero for unset; zero is
// never a real value.
type Track struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string

	TrackNumber int
	TotalTracks int
	DiscNumber  int
	Year        int

	RecordingID string
	ReleaseID   string
}

// TrackString renders the track field the way it is written to tags:
// "N" or "N/total". Empty when the track number is unset.
func (t *Track) TrackString() string {
	if t.TrackNumber <= 0 {
		return ""
	}
	if t.TotalTracks > 0 {
		return fmt.Sprintf("%d/%d", t.TrackNumber, t.TotalTracks)
	}
	return fmt.Sprintf("%d", t.TrackNumber)
}

// DisplayName is the "Artist - Title" label used in run output and logs.
func (t *Track) DisplayName() string {
	return strings.TrimSpace(t.Artist + " - " + t.Title)
}
