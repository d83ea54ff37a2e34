// Package metadata resolves a MusicBrainz recording identifier into the
// canonical tag values for one audio file.
//
// Resolution picks one release among the alternatives that contain the
// recording using a scoring heuristic (official albums beat bootleg
// compilation appearances), derives the display artist from the ordered
// credit list, and back-fills track and disc numbering from the release's
// full track listing when the recording lookup alone cannot provide it.
package metadata
