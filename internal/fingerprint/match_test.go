package fingerprint_test

import (
	"testing"

	"tracksort/internal/fingerprint"
)

func TestBestMatchPicksMaximum(t *testing.T) {
	matches := []fingerprint.Match{
		{ID: "a", Score: 0.6},
		{ID: "b", Score: 0.92},
		{ID: "c", Score: 0.7},
	}
	best := fingerprint.BestMatch(matches, 0.5)
	if best == nil || best.ID != "b" {
		t.Fatalf("best = %+v", best)
	}
}

func TestBestMatchRejectsLowConfidence(t *testing.T) {
	matches := []fingerprint.Match{{ID: "a", Score: 0.3}, {ID: "b", Score: 0.49}}
	if best := fingerprint.BestMatch(matches, 0.5); best != nil {
		t.Fatalf("expected nil for sub-threshold scores, got %+v", best)
	}
}

func TestBestMatchStableOnTies(t *testing.T) {
	matches := []fingerprint.Match{
		{ID: "first", Score: 0.8},
		{ID: "second", Score: 0.8},
	}
	best := fingerprint.BestMatch(matches, 0.5)
	if best == nil || best.ID != "first" {
		t.Fatalf("tie should keep first candidate, got %+v", best)
	}
}

func TestBestMatchMonotonic(t *testing.T) {
	matches := []fingerprint.Match{{ID: "a", Score: 0.6}, {ID: "b", Score: 0.75}}
	before := fingerprint.BestMatch(matches, 0.5)
	withHigher := append(matches, fingerprint.Match{ID: "c", Score: 0.9})
	after := fingerprint.BestMatch(withHigher, 0.5)
	if after == nil || before == nil {
		t.Fatal("expected selections")
	}
	if after.Score < before.Score {
		t.Fatalf("adding a higher-scoring candidate decreased selection: %v -> %v", before.Score, after.Score)
	}
}

func TestBestMatchEmpty(t *testing.T) {
	if best := fingerprint.BestMatch(nil, 0.5); best != nil {
		t.Fatalf("expected nil for empty input, got %+v", best)
	}
}

func TestRecordingID(t *testing.T) {
	match := fingerprint.Match{Recordings: []fingerprint.Recording{{ID: "rec-1"}, {ID: "rec-2"}}}
	if got := match.RecordingID(); got != "rec-1" {
		t.Fatalf("RecordingID = %q", got)
	}
	if got := (fingerprint.Match{}).RecordingID(); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
