package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"tracksort/internal/config"
	"tracksort/internal/fingerprint"
	"tracksort/internal/journal"
	"tracksort/internal/logging"
	"tracksort/internal/metadata"
	"tracksort/internal/musicbrainz"
	"tracksort/internal/organizer"
	"tracksort/internal/scanner"
	"tracksort/internal/services"
	"tracksort/internal/tags"
)

// MatchService looks up fingerprint matches against the acoustic catalog.
type MatchService interface {
	Lookup(ctx context.Context, fp fingerprint.Fingerprint) ([]fingerprint.Match, error)
}

// MetadataResolver resolves a recording id into track metadata.
type MetadataResolver interface {
	Resolve(ctx context.Context, recordingID string) (*metadata.Track, error)
}

// Pipeline drives the per-file identify, resolve, tag, organize sequence.
type Pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	matcher  MatchService
	resolver MetadataResolver
	store    *journal.Store
}

// Options controls a run.
type Options struct {
	DryRun bool
	// Limit truncates the number of files attempted when positive.
	Limit int
	// OnResult is invoked after each file reaches a terminal status.
	OnResult func(Result)
}

// Report is the outcome of a whole run.
type Report struct {
	RunID   string
	DryRun  bool
	Source  string
	Results []Result
	Summary Summary
}

// New constructs the pipeline with live AcoustID and MusicBrainz clients.
// The MusicBrainz rate gate is created here and shared by every lookup in
// the run, including track-listing backfills.
func New(cfg *config.Config, store *journal.Store, logger *slog.Logger) (*Pipeline, error) {
	acoustid, err := fingerprint.NewClient(
		cfg.AcoustID.APIKey,
		cfg.AcoustID.BaseURL,
		fingerprint.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.AcoustID.TimeoutSeconds) * time.Second}),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "acoustid client", "", err)
	}

	gate := musicbrainz.NewGate(time.Duration(cfg.MusicBrainz.RateLimitMillis) * time.Millisecond)
	mb, err := musicbrainz.New(
		cfg.MusicBrainz.BaseURL,
		cfg.MusicBrainz.UserAgent,
		gate,
		musicbrainz.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.MusicBrainz.TimeoutSeconds) * time.Second}),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "musicbrainz client", "", err)
	}
	resolver := metadata.NewResolver(mb, logger)

	return NewWithDependencies(cfg, store, logger, acoustid, resolver), nil
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, store *journal.Store, logger *slog.Logger, matcher MatchService, resolver MetadataResolver) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		matcher:  matcher,
		resolver: resolver,
		store:    store,
	}
}

// CheckPreconditions validates the run-level requirements: a readable source
// directory, an AcoustID API key, and the fpcalc binary on PATH. Failures
// are fatal before any file is touched.
func (p *Pipeline) CheckPreconditions() error {
	source := strings.TrimSpace(p.cfg.Paths.SourceDir)
	if source == "" {
		return services.Wrap(services.ErrConfiguration, "preflight", "source dir",
			"source directory not configured; set paths.source_dir or pass --source", nil)
	}
	info, err := os.Stat(source)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "preflight", "source dir", source, err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrConfiguration, "preflight", "source dir",
			fmt.Sprintf("%s is not a directory", source), nil)
	}
	key := strings.TrimSpace(p.cfg.AcoustID.APIKey)
	if key == "" || key == "YOUR_API_KEY_HERE" {
		return services.Wrap(services.ErrConfiguration, "preflight", "acoustid key",
			"AcoustID API key not configured; set ACOUSTID_API_KEY or acoustid.api_key", nil)
	}
	if !fingerprint.CheckFpcalc(p.cfg.FpcalcBinary()) {
		return services.Wrap(services.ErrConfiguration, "preflight", "fpcalc",
			"fpcalc (Chromaprint) not found on PATH", nil)
	}
	return nil
}

// Run scans the source directory and processes every file sequentially.
// Per-file failures are recorded and the run continues; only precondition
// and scan failures abort.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := p.CheckPreconditions(); err != nil {
		return nil, err
	}

	source := p.cfg.Paths.SourceDir
	files, err := scanner.Scan(source, scanner.Options{ExcludeDirs: p.cfg.Scanner.ExcludeDirs})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "scanning", "enumerate files", source, err)
	}
	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}

	report := &Report{DryRun: opts.DryRun, Source: source}
	p.logger.Info("run starting",
		logging.String("source", source),
		logging.Int("files", len(files)),
		logging.Bool("dry_run", opts.DryRun),
	)

	var run *journal.Run
	if p.store != nil {
		run, err = p.store.StartRun(ctx, source, opts.DryRun)
		if err != nil {
			p.logger.Warn("journal run insert failed", logging.Error(err))
		} else {
			report.RunID = run.ID
		}
	}

	for _, file := range files {
		result := p.ProcessFile(ctx, file, opts.DryRun)

		if result.Status == StatusUnmatched && !opts.DryRun {
			move, moveErr := organizer.MoveToUnmatched(
				file, source, p.cfg.OutputRoot(), p.cfg.Organizer.UnmatchedDir, false)
			if moveErr != nil {
				p.logger.Warn("unmatched relocation failed",
					logging.String("file", file), logging.Error(moveErr))
			} else {
				result.Move = move
			}
		}

		report.Results = append(report.Results, result)
		report.Summary.add(result)
		p.recordResult(ctx, run, result)
		if opts.OnResult != nil {
			opts.OnResult(result)
		}
	}

	if p.store != nil && run != nil {
		if err := p.store.FinishRun(ctx, run.ID, report.Summary.Counts()); err != nil {
			p.logger.Warn("journal run finish failed", logging.Error(err))
		}
	}

	p.logger.Info("run finished",
		logging.Int("processed", report.Summary.Processed),
		logging.Int("succeeded", report.Summary.Succeeded),
		logging.Int("unmatched", report.Summary.Unmatched),
		logging.Int("failed", report.Summary.Failed),
	)
	return report, nil
}

func (p *Pipeline) recordResult(ctx context.Context, run *journal.Run, result Result) {
	if p.store == nil || run == nil {
		return
	}
	entry := journal.Result{
		RunID:       run.ID,
		File:        result.File,
		Status:      string(result.Status),
		Destination: result.Move.Destination,
		Error:       result.Err,
	}
	if result.Track != nil {
		entry.Artist = result.Track.Artist
		entry.Title = result.Track.Title
	}
	if err := p.store.RecordResult(ctx, entry); err != nil {
		p.logger.Warn("journal result insert failed",
			logging.String("file", result.File), logging.Error(err))
	}
}

// ProcessFile runs the full identify, resolve, tag, organize sequence for
// one file and returns its terminal result. It never returns an error; all
// failures land in the result.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, dryRun bool) Result {
	result := Result{File: path, Status: StatusPending}

	fp, err := fingerprint.Extract(ctx, p.cfg.FpcalcBinary(), path)
	if err != nil {
		return p.fail(result, "fingerprint extraction failed", err)
	}

	matches, err := p.matcher.Lookup(ctx, fp)
	if err != nil {
		return p.fail(result, "match lookup failed", err)
	}

	best := fingerprint.BestMatch(matches, p.cfg.AcoustID.MinScore)
	if best == nil {
		result.Status = StatusUnmatched
		p.logger.Warn("no confident match", logging.String("file", path))
		return result
	}
	recordingID := best.RecordingID()
	if recordingID == "" {
		result.Status = StatusUnmatched
		result.Err = "match carries no recording id"
		p.logger.Warn("match without recording id", logging.String("file", path))
		return result
	}
	result.Score = best.Score

	track, err := p.resolver.Resolve(ctx, recordingID)
	if err != nil {
		return p.fail(result, "metadata resolution failed", err)
	}
	result.Track = track

	changes, err := tags.Apply(path, track, dryRun)
	if err != nil {
		return p.fail(result, "tag update failed", err)
	}
	result.TagChanges = changes

	destination, err := organizer.NewPath(
		p.cfg.OutputRoot(), track,
		p.cfg.Organizer.FolderTemplate, p.cfg.Organizer.FilenameTemplate)
	if err != nil {
		return p.fail(result, "destination template failed", err)
	}
	move, err := organizer.Move(path, destination, dryRun, p.cfg.BackupRoot())
	if err != nil {
		return p.fail(result, "file move failed", err)
	}
	result.Move = move

	result.Status = StatusSuccess
	p.logger.Info("file processed",
		logging.String("file", path),
		logging.String("track", track.DisplayName()),
		logging.String("destination", move.Destination),
		logging.Int("tag_changes", len(changes)),
	)
	return result
}

func (p *Pipeline) fail(result Result, message string, err error) Result {
	result.Status = StatusForError(err)
	if result.Status == StatusPending {
		result.Status = StatusError
	}
	result.Err = fmt.Sprintf("%s: %v", message, errorDetail(err))
	p.logger.Error(message, logging.String("file", result.File), logging.Error(err))
	return result
}

// errorDetail strips the leading sentinel text so user-facing lines read as
// plain reasons rather than classification prefixes.
func errorDetail(err error) string {
	if err == nil {
		return "unknown failure"
	}
	msg := err.Error()
	for _, sentinel := range []error{
		services.ErrFingerprint, services.ErrMetadata, services.ErrTagging,
		services.ErrOrganizing, services.ErrConfiguration, services.ErrTransient,
	} {
		if errors.Is(err, sentinel) {
			if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
				return trimmed
			}
		}
	}
	return msg
}
