package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFingerprint marks local fingerprint extraction failures and AcoustID
	// transport or service errors. "No match" is not an error and never
	// carries this marker.
	ErrFingerprint = errors.New("fingerprint error")

	// ErrMetadata marks MusicBrainz lookups that failed or returned nothing.
	ErrMetadata = errors.New("metadata unavailable")

	// ErrTagging marks files whose tag container could not be read or written.
	ErrTagging = errors.New("tagging error")

	// ErrOrganizing marks template or filesystem failures while relocating a
	// file. Tags already written stay written; the two steps are independent.
	ErrOrganizing = errors.New("organizing error")

	// ErrConfiguration marks run-level precondition failures (missing source
	// path, API key, or fpcalc). These abort the run before any file.
	ErrConfiguration = errors.New("configuration error")

	// ErrTransient marks failures with no better classification.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later outcome classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
