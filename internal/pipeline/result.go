package pipeline

import (
	"errors"

	"tracksort/internal/journal"
	"tracksort/internal/metadata"
	"tracksort/internal/organizer"
	"tracksort/internal/services"
	"tracksort/internal/tags"
)

// Status classifies the outcome for one file.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSuccess   Status = "success"
	StatusUnmatched Status = "unmatched"
	StatusError     Status = "error"
)

// Result is the outcome of processing one file. Once a terminal status is
// set the result is never mutated again.
type Result struct {
	File       string
	Status     Status
	Score      float64
	Track      *metadata.Track
	TagChanges []tags.Change
	Move       organizer.MoveResult
	Err        string
}

// Summary aggregates per-status counts across a run.
type Summary struct {
	Processed int
	Succeeded int
	Unmatched int
	Failed    int
	Skipped   int
}

func (s *Summary) add(result Result) {
	s.Processed++
	switch result.Status {
	case StatusSuccess:
		if result.Move.Skipped {
			s.Skipped++
		}
		s.Succeeded++
	case StatusUnmatched:
		s.Unmatched++
	default:
		s.Failed++
	}
}

// Counts converts the summary for journaling.
func (s Summary) Counts() journal.Counts {
	return journal.Counts{
		Processed: s.Processed,
		Succeeded: s.Succeeded,
		Unmatched: s.Unmatched,
		Failed:    s.Failed,
		Skipped:   s.Skipped,
	}
}

// StatusForError maps a stage error to the per-file status it produces.
// Every stage failure is an "error" outcome; "unmatched" is a benign status
// the stages report without an error. Configuration errors are run-level and
// never reach per-file classification.
func StatusForError(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	if errors.Is(err, services.ErrConfiguration) {
		return StatusPending
	}
	return StatusError
}
