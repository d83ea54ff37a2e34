// Package logging wires log/slog with the handlers used across tracksort.
//
// Two output formats are supported: a compact console format for interactive
// runs and JSON for machine consumption. Loggers write to stdout/stderr and,
// when a log directory is configured, append to the run log file so each
// file's outcome leaves a persistent trace.
package logging
