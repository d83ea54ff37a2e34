package musicbrainz_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tracksort/internal/musicbrainz"
)

func newTestGate() *musicbrainz.Gate {
	return musicbrainz.NewGate(0)
}

func TestLookupRecordingDecodesPayload(t *testing.T) {
	var gotUA, gotInc string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotInc = r.URL.Query().Get("inc")
		if r.URL.Query().Get("fmt") != "json" {
			t.Errorf("missing fmt=json, query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "rec-1",
			"title": "Come Together",
			"artist-credit": [{"name": "The Beatles", "joinphrase": "", "artist": {"id": "a1", "name": "The Beatles"}}],
			"releases": [{
				"id": "rel-1",
				"title": "Abbey Road",
				"status": "Official",
				"date": "1969-09-26",
				"release-group": {"primary-type": "Album", "secondary-types": []},
				"media": [{"position": 1, "track-count": 17}]
			}]
		}`))
	}))
	defer server.Close()

	client, err := musicbrainz.New(server.URL, "tracksort-test/1.0", newTestGate())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec, err := client.LookupRecording(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("LookupRecording: %v", err)
	}
	if rec.Title != "Come Together" {
		t.Fatalf("title = %q", rec.Title)
	}
	if len(rec.Releases) != 1 || rec.Releases[0].ReleaseGroup.PrimaryType != "Album" {
		t.Fatalf("unexpected releases: %+v", rec.Releases)
	}
	if gotUA != "tracksort-test/1.0" {
		t.Fatalf("user agent = %q", gotUA)
	}
	if gotInc != "artist-credits+releases+release-groups+media" {
		t.Fatalf("inc = %q", gotInc)
	}
}

func TestLookupReleaseDecodesTrackListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("inc") != "recordings" {
			t.Errorf("inc = %q", r.URL.Query().Get("inc"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "rel-1",
			"title": "Abbey Road",
			"media": [{
				"position": 1,
				"track-count": 2,
				"tracks": [
					{"position": 1, "title": "Come Together", "recording": {"id": "rec-1"}},
					{"position": 2, "title": "Something", "recording": {"id": "rec-2"}}
				]
			}]
		}`))
	}))
	defer server.Close()

	client, err := musicbrainz.New(server.URL, "tracksort-test/1.0", newTestGate())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rel, err := client.LookupRelease(context.Background(), "rel-1")
	if err != nil {
		t.Fatalf("LookupRelease: %v", err)
	}
	if len(rel.Media) != 1 || len(rel.Media[0].Tracks) != 2 {
		t.Fatalf("unexpected media: %+v", rel.Media)
	}
	if rel.Media[0].Tracks[1].Recording.ID != "rec-2" {
		t.Fatalf("unexpected track recording: %+v", rel.Media[0].Tracks[1])
	}
}

func TestLookupNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client, err := musicbrainz.New(server.URL, "tracksort-test/1.0", newTestGate())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.LookupRecording(context.Background(), "nope"); !errors.Is(err, musicbrainz.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupsPassThroughGate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "rec-1", "title": "x"}`))
	}))
	defer server.Close()

	waits := 0
	gate := musicbrainz.NewGate(
		time.Second,
		musicbrainz.WithSleeper(func(context.Context, time.Duration) error {
			waits++
			return nil
		}),
	)

	client, err := musicbrainz.New(server.URL, "tracksort-test/1.0", gate)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := client.LookupRecording(context.Background(), "rec-1"); err != nil {
			t.Fatalf("LookupRecording %d: %v", i, err)
		}
	}
	// First call is free; subsequent back-to-back calls block.
	if waits != 2 {
		t.Fatalf("expected 2 gate sleeps, got %d", waits)
	}
}
