// Package musicbrainz provides a minimal MusicBrainz WS/2 JSON client for
// recording and release lookups, plus the rate-limit gate every call must
// pass through.
//
// MusicBrainz enforces one request per second per client. The gate is owned
// by the pipeline driver and injected into the client so the ceiling holds
// globally across all files in a run.
package musicbrainz
