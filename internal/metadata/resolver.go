package metadata

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"tracksort/internal/logging"
	"tracksort/internal/musicbrainz"
	"tracksort/internal/services"
)

// Resolver turns recording identifiers into Track metadata.
type Resolver struct {
	lookups musicbrainz.Lookups
	logger  *slog.Logger
}

// NewResolver constructs a resolver over the given lookup service.
func NewResolver(lookups musicbrainz.Lookups, logger *slog.Logger) *Resolver {
	return &Resolver{
		lookups: lookups,
		logger:  logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve fetches the recording, disambiguates among its releases, and
// back-fills track/disc numbering from the chosen release's track listing
// when the recording lookup alone could not provide it. Lookup failures wrap
// services.ErrMetadata; a failed backfill lookup leaves numbering unset and
// is not an error.
func (r *Resolver) Resolve(ctx context.Context, recordingID string) (*Track, error) {
	recording, err := r.lookups.LookupRecording(ctx, recordingID)
	if err != nil {
		return nil, services.Wrap(services.ErrMetadata, "resolving", "recording lookup", "MusicBrainz recording lookup failed", err)
	}

	track := &Track{
		Title:       strings.TrimSpace(recording.Title),
		Artist:      JoinArtistCredits(recording.ArtistCredit),
		Album:       UnknownAlbum,
		RecordingID: recordingID,
	}
	if track.Title == "" {
		track.Title = UnknownTitle
	}

	if release, ok := SelectBestRelease(recording.Releases); ok {
		applyRelease(track, release)
	}

	if track.ReleaseID != "" && track.TrackNumber == 0 {
		pos, total, disc, findErr := r.FindTrackPosition(ctx, recordingID, track.ReleaseID)
		switch {
		case findErr != nil:
			r.logger.Warn("track position lookup failed",
				logging.String("recording_id", recordingID),
				logging.String("release_id", track.ReleaseID),
				logging.Error(findErr))
		case pos > 0:
			track.TrackNumber = pos
			track.TotalTracks = total
			track.DiscNumber = disc
		}
	}

	return track, nil
}

// FindTrackPosition locates the recording inside the release's ordered track
// listing and returns its 1-based track number, the count of tracks on the
// same disc, and the disc number. All zeros when the listing has no entry for
// the recording.
func (r *Resolver) FindTrackPosition(ctx context.Context, recordingID, releaseID string) (int, int, int, error) {
	release, err := r.lookups.LookupRelease(ctx, releaseID)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, medium := range release.Media {
		disc := medium.Position
		if disc <= 0 {
			disc = 1
		}
		for _, entry := range medium.Tracks {
			if entry.Recording.ID != recordingID {
				continue
			}
			// The listing is authoritative for the disc's track total; the
			// service's track-count field can disagree with it.
			return entry.Position, len(medium.Tracks), disc, nil
		}
	}
	return 0, 0, 0, nil
}

// releaseScore implements the disambiguation heuristic: official releases
// beat everything, albums beat EPs beat singles, and non-compilations get a
// bonus.
func releaseScore(release musicbrainz.Release) int {
	score := 0
	if strings.EqualFold(release.Status, "official") {
		score += 100
	}
	switch strings.ToLower(release.ReleaseGroup.PrimaryType) {
	case "album":
		score += 50
	case "ep":
		score += 40
	case "single":
		score += 30
	}
	compilation := false
	for _, secondary := range release.ReleaseGroup.SecondaryTypes {
		if strings.EqualFold(secondary, "compilation") {
			compilation = true
			break
		}
	}
	if !compilation {
		score += 20
	}
	return score
}

// SelectBestRelease picks the highest-scoring release. Ties keep the release
// that appears first in the input, so selection is stable with respect to
// the order the service returned.
func SelectBestRelease(releases []musicbrainz.Release) (musicbrainz.Release, bool) {
	if len(releases) == 0 {
		return musicbrainz.Release{}, false
	}
	best := releases[0]
	bestScore := releaseScore(best)
	for _, candidate := range releases[1:] {
		if score := releaseScore(candidate); score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, true
}

func applyRelease(track *Track, release musicbrainz.Release) {
	if title := strings.TrimSpace(release.Title); title != "" {
		track.Album = title
	}
	track.ReleaseID = release.ID
	if len(release.ArtistCredit) > 0 {
		track.AlbumArtist = JoinArtistCredits(release.ArtistCredit)
	}
	track.Year = parseYear(release.Date)

	// The recording lookup exposes per-medium track counts but not which
	// track the recording is; numbering proper comes from the backfill.
	if len(release.Media) > 0 {
		last := release.Media[len(release.Media)-1]
		if last.TrackCount > 0 {
			track.TotalTracks = last.TrackCount
		}
		if len(release.Media) > 1 {
			track.DiscNumber = len(release.Media)
		}
	}
}

// JoinArtistCredits concatenates credited names with their join phrases in
// sequence order. Join phrases carry their own separators, so nothing is
// inserted between entries. An empty credit list yields the sentinel artist.
func JoinArtistCredits(credits []musicbrainz.ArtistCredit) string {
	if len(credits) == 0 {
		return UnknownArtist
	}
	var b strings.Builder
	for _, credit := range credits {
		name := credit.Name
		if name == "" {
			name = credit.Artist.Name
		}
		b.WriteString(name)
		b.WriteString(credit.JoinPhrase)
	}
	joined := strings.TrimSpace(b.String())
	if joined == "" {
		return UnknownArtist
	}
	return joined
}

// parseYear extracts the year from a WS/2 date ("2006", "2006-01", or
// "2006-01-02"). Zero when absent or unparseable.
func parseYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
