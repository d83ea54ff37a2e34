// Package services defines shared error utilities consumed by the pipeline
// stages and external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent per-file outcomes (error vs unmatched).
//   - A uniform "stage: operation: message" error text so run logs and
//     journal entries read the same regardless of which stage failed.
//
// Use these helpers when wiring new stage logic so error handling stays
// uniform across the pipeline.
package services
