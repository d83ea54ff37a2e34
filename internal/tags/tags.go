package tags

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"

	"tracksort/internal/metadata"
	"tracksort/internal/services"
)

const (
	frameAlbumArtist = "TPE2"
	frameTrack       = "TRCK"
	frameDisc        = "TPOS"
	frameRecordDate  = "TDRC"
	frameYear        = "TYER"
	frameUserText    = "TXXX"

	descRecordingID = "MusicBrainz Recording Id"
	descReleaseID   = "MusicBrainz Release Id"
)

// Current holds the tag values present on a file before any update.
type Current struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Track       string
	Disc        string
	Year        int
	Genre       string
}

// Change records one field update: the value that was on disk and the value
// that replaces it.
type Change struct {
	Field string
	Old   string
	New   string
}

// ReadCurrent reads the ID3 tags from path. A file without a tag returns a
// zero Current; an unreadable file wraps services.ErrTagging.
func ReadCurrent(path string) (Current, error) {
	file, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Current{}, services.Wrap(services.ErrTagging, "tagging", "read tags", path, err)
	}
	defer file.Close()
	return readFrom(file), nil
}

// HasCompleteTags reports whether the file already carries title, artist and
// album. Unreadable files report false.
func HasCompleteTags(path string) bool {
	current, err := ReadCurrent(path)
	if err != nil {
		return false
	}
	return current.Title != "" && current.Artist != "" && current.Album != ""
}

// Apply diffs the resolved track against the file's current tags and writes
// the differing fields. The returned changes describe every field written.
// MusicBrainz identifiers are refreshed whenever present but never reported
// as changes. In dry-run mode, or when nothing differs, the file is left
// untouched.
func Apply(path string, track *metadata.Track, dryRun bool) ([]Change, error) {
	file, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, services.Wrap(services.ErrTagging, "tagging", "open tags", path, err)
	}
	defer file.Close()

	current := readFrom(file)
	var changes []Change
	record := func(field, old, want string, write func(string)) {
		if want == "" || want == old {
			return
		}
		write(want)
		changes = append(changes, Change{Field: field, Old: old, New: want})
	}

	record("title", current.Title, track.Title, file.SetTitle)
	record("artist", current.Artist, track.Artist, file.SetArtist)
	record("album_artist", current.AlbumArtist, track.AlbumArtist, func(v string) {
		file.AddTextFrame(frameAlbumArtist, id3v2.EncodingUTF8, v)
	})
	record("album", current.Album, track.Album, file.SetAlbum)
	record("track", current.Track, track.TrackString(), func(v string) {
		file.AddTextFrame(frameTrack, id3v2.EncodingUTF8, v)
	})
	if track.DiscNumber > 0 {
		record("disc", current.Disc, strconv.Itoa(track.DiscNumber), func(v string) {
			file.AddTextFrame(frameDisc, id3v2.EncodingUTF8, v)
		})
	}
	if track.Year > 0 && track.Year != current.Year {
		old := ""
		if current.Year > 0 {
			old = strconv.Itoa(current.Year)
		}
		want := strconv.Itoa(track.Year)
		file.AddTextFrame(frameRecordDate, id3v2.EncodingUTF8, want)
		changes = append(changes, Change{Field: "year", Old: old, New: want})
	}
	record("genre", current.Genre, track.Genre, file.SetGenre)

	if track.RecordingID != "" {
		setUserDefined(file, descRecordingID, track.RecordingID)
	}
	if track.ReleaseID != "" {
		setUserDefined(file, descReleaseID, track.ReleaseID)
	}

	if len(changes) == 0 || dryRun {
		return changes, nil
	}
	if err := file.Save(); err != nil {
		return changes, services.Wrap(services.ErrTagging, "tagging", "save tags", path, err)
	}
	return changes, nil
}

func readFrom(file *id3v2.Tag) Current {
	current := Current{
		Title:       file.Title(),
		Artist:      file.Artist(),
		AlbumArtist: textFrame(file, frameAlbumArtist),
		Album:       file.Album(),
		Track:       textFrame(file, frameTrack),
		Disc:        textFrame(file, frameDisc),
		Genre:       file.Genre(),
	}
	rawYear := textFrame(file, frameRecordDate)
	if rawYear == "" {
		rawYear = textFrame(file, frameYear)
	}
	if len(rawYear) >= 4 {
		if year, err := strconv.Atoi(rawYear[:4]); err == nil {
			current.Year = year
		}
	}
	return current
}

func textFrame(file *id3v2.Tag, id string) string {
	return strings.TrimSpace(file.GetTextFrame(id).Text)
}

// setUserDefined replaces any TXXX frame carrying the same description.
// Text frames are keyed by id alone in the container, so duplicates have to
// be filtered by hand.
func setUserDefined(file *id3v2.Tag, description, value string) {
	existing := file.GetFrames(frameUserText)
	file.DeleteFrames(frameUserText)
	for _, frame := range existing {
		udt, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok || udt.Description == description {
			continue
		}
		file.AddUserDefinedTextFrame(udt)
	}
	file.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: description,
		Value:       value,
	})
}
