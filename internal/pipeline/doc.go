// Package pipeline sequences identification, metadata resolution, tag
// writing, and organizing for each scanned file. Files are processed one at
// a time in scan order; a failure on one file never aborts the run.
package pipeline
