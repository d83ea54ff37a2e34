package fingerprint_test

import (
	"context"
	"errors"
	"testing"

	"tracksort/internal/fingerprint"
	"tracksort/internal/services"
)

func TestExtractUsesConfiguredRunner(t *testing.T) {
	restore := fingerprint.SetExtractorForTests(func(ctx context.Context, binary, path string) (fingerprint.Fingerprint, error) {
		if path != "/music/song.mp3" {
			t.Errorf("path = %q", path)
		}
		return fingerprint.Fingerprint{Duration: 180.5, Fingerprint: "AQAD"}, nil
	})
	defer restore()

	fp, err := fingerprint.Extract(context.Background(), "fpcalc", "/music/song.mp3")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if fp.Fingerprint != "AQAD" || fp.Duration != 180.5 {
		t.Fatalf("unexpected fingerprint: %+v", fp)
	}
}

func TestExtractWrapsRunnerFailure(t *testing.T) {
	restore := fingerprint.SetExtractorForTests(func(ctx context.Context, binary, path string) (fingerprint.Fingerprint, error) {
		return fingerprint.Fingerprint{}, errors.New("corrupt stream")
	})
	defer restore()

	_, err := fingerprint.Extract(context.Background(), "fpcalc", "/music/bad.mp3")
	if !errors.Is(err, services.ErrFingerprint) {
		t.Fatalf("expected fingerprint error, got %v", err)
	}
}

func TestExtractRejectsEmptyFingerprint(t *testing.T) {
	restore := fingerprint.SetExtractorForTests(func(ctx context.Context, binary, path string) (fingerprint.Fingerprint, error) {
		return fingerprint.Fingerprint{Duration: 12}, nil
	})
	defer restore()

	_, err := fingerprint.Extract(context.Background(), "fpcalc", "/music/silent.mp3")
	if !errors.Is(err, services.ErrFingerprint) {
		t.Fatalf("expected fingerprint error for empty output, got %v", err)
	}
}
