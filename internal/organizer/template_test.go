package organizer_test

import (
	"errors"
	"path/filepath"
	"testing"

	"tracksort/internal/metadata"
	"tracksort/internal/organizer"
	"tracksort/internal/services"
)

func resolvedTrack() *metadata.Track {
	return &metadata.Track{
		Title:       "Time",
		Artist:      "Pink Floyd",
		AlbumArtist: "Pink Floyd",
		Album:       "The Dark Side of the Moon",
		TrackNumber: 4,
		TotalTracks: 10,
		Year:        1973,
	}
}

func TestBuildFolderPath(t *testing.T) {
	got, err := organizer.BuildFolderPath("/music", resolvedTrack(), "{artist}/{album}")
	if err != nil {
		t.Fatalf("BuildFolderPath failed: %v", err)
	}
	want := filepath.Join("/music", "Pink Floyd", "The Dark Side of the Moon")
	if got != want {
		t.Fatalf("BuildFolderPath = %q, want %q", got, want)
	}
}

func TestBuildFolderPathYearAndAlbumArtist(t *testing.T) {
	track := resolvedTrack()
	track.AlbumArtist = ""
	got, err := organizer.BuildFolderPath("/music", track, "{album_artist}/{year} - {album}")
	if err != nil {
		t.Fatalf("BuildFolderPath failed: %v", err)
	}
	want := filepath.Join("/music", "Pink Floyd", "1973 - The Dark Side of the Moon")
	if got != want {
		t.Fatalf("BuildFolderPath = %q, want %q", got, want)
	}

	track.Year = 0
	got, err = organizer.BuildFolderPath("/music", track, "{year}")
	if err != nil {
		t.Fatalf("BuildFolderPath failed: %v", err)
	}
	if got != filepath.Join("/music", "Unknown Year") {
		t.Fatalf("BuildFolderPath = %q", got)
	}
}

func TestBuildFolderPathUnknownToken(t *testing.T) {
	_, err := organizer.BuildFolderPath("/music", resolvedTrack(), "{artist}/{composer}")
	if !errors.Is(err, services.ErrOrganizing) {
		t.Fatalf("expected organizing error, got %v", err)
	}
}

func TestBuildFolderPathSanitizesSegments(t *testing.T) {
	track := resolvedTrack()
	track.Artist = "AC/DC"
	track.Album = "Who Made Who?"
	got, err := organizer.BuildFolderPath("/music", track, "{artist}/{album}")
	if err != nil {
		t.Fatalf("BuildFolderPath failed: %v", err)
	}
	want := filepath.Join("/music", "ACDC", "Who Made Who")
	if got != want {
		t.Fatalf("BuildFolderPath = %q, want %q", got, want)
	}
}

func TestBuildFilename(t *testing.T) {
	got := organizer.BuildFilename(resolvedTrack(), "{track} - {title}")
	if got != "04 - Time.mp3" {
		t.Fatalf("BuildFilename = %q", got)
	}
}

func TestBuildFilenameFallback(t *testing.T) {
	track := resolvedTrack()
	got := organizer.BuildFilename(track, "{track} - {bogus}")
	if got != "04 - Time.mp3" {
		t.Fatalf("fallback with track = %q", got)
	}

	track.TrackNumber = 0
	got = organizer.BuildFilename(track, "{bogus}")
	if got != "Time.mp3" {
		t.Fatalf("fallback without track = %q", got)
	}
}

func TestBuildFilenameZeroTrack(t *testing.T) {
	track := resolvedTrack()
	track.TrackNumber = 0
	got := organizer.BuildFilename(track, "{track} - {title}")
	if got != "00 - Time.mp3" {
		t.Fatalf("BuildFilename = %q", got)
	}
}

func TestNewPath(t *testing.T) {
	got, err := organizer.NewPath("/music", resolvedTrack(), "{artist}/{album}", "{track} - {title}")
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}
	want := filepath.Join("/music", "Pink Floyd", "The Dark Side of the Moon", "04 - Time.mp3")
	if got != want {
		t.Fatalf("NewPath = %q, want %q", got, want)
	}
}
