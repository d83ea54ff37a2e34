package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"tracksort/internal/services"
)

// Fingerprint holds the output of one fpcalc extraction.
type Fingerprint struct {
	Duration    float64
	Fingerprint string
}

// extractor runs fpcalc; replaceable in tests.
var extractor = runFpcalc

// SetExtractorForTests swaps the fpcalc runner and returns a restore func.
func SetExtractorForTests(fn func(ctx context.Context, binary, path string) (Fingerprint, error)) func() {
	previous := extractor
	extractor = fn
	return func() { extractor = previous }
}

// CheckFpcalc reports whether the Chromaprint fpcalc binary is on PATH.
func CheckFpcalc(binary string) bool {
	if strings.TrimSpace(binary) == "" {
		binary = "fpcalc"
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// Extract computes the acoustic fingerprint for path. Failures (missing
// tool, corrupt audio) wrap services.ErrFingerprint.
func Extract(ctx context.Context, binary, path string) (Fingerprint, error) {
	fp, err := extractor(ctx, binary, path)
	if err != nil {
		return Fingerprint{}, services.Wrap(services.ErrFingerprint, "identifying", "extract fingerprint", "fpcalc failed", err)
	}
	if fp.Fingerprint == "" {
		return Fingerprint{}, services.Wrap(services.ErrFingerprint, "identifying", "extract fingerprint", "fpcalc produced no fingerprint", nil)
	}
	return fp, nil
}

type fpcalcOutput struct {
	Duration    float64 `json:"duration"`
	Fingerprint string  `json:"fingerprint"`
}

func runFpcalc(ctx context.Context, binary, path string) (Fingerprint, error) {
	if strings.TrimSpace(binary) == "" {
		binary = "fpcalc"
	}
	cmd := exec.CommandContext(ctx, binary, "-json", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return Fingerprint{}, &toolError{err: err, detail: detail}
		}
		return Fingerprint{}, err
	}

	var parsed fpcalcOutput
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Duration: parsed.Duration, Fingerprint: parsed.Fingerprint}, nil
}

type toolError struct {
	err    error
	detail string
}

func (e *toolError) Error() string { return e.err.Error() + ": " + e.detail }

func (e *toolError) Unwrap() error { return e.err }
