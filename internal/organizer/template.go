package organizer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"tracksort/internal/metadata"
	"tracksort/internal/services"
)

// unknownYear stands in for the {year} token when no year was resolved.
const unknownYear = "Unknown Year"

// BuildFolderPath renders the folder template below base. Recognized tokens
// are {artist}, {album}, {album_artist} and {year}; {album_artist} falls
// back to the track artist. An unrecognized token is a configuration-shaped
// organizing error rather than a silently misplaced file.
func BuildFolderPath(base string, track *metadata.Track, template string) (string, error) {
	year := unknownYear
	if track.Year > 0 {
		year = strconv.Itoa(track.Year)
	}
	albumArtist := track.AlbumArtist
	if albumArtist == "" {
		albumArtist = track.Artist
	}
	vars := map[string]string{
		"artist":       SanitizeName(track.Artist),
		"album":        SanitizeName(track.Album),
		"album_artist": SanitizeName(albumArtist),
		"year":         year,
	}
	rendered, err := renderTemplate(template, vars)
	if err != nil {
		return "", services.Wrap(services.ErrOrganizing, "organizing", "render folder template", err.Error(), nil)
	}
	return filepath.Join(base, filepath.FromSlash(rendered)), nil
}

// BuildFilename renders the filename template and appends the ".mp3"
// extension. {track} renders zero-padded to two digits, 0 when unset. A
// template that fails to render falls back to "NN - Title", dropping the
// track prefix when there is no track number.
func BuildFilename(track *metadata.Track, template string) string {
	trackNumber := track.TrackNumber
	vars := map[string]string{
		"track":  fmt.Sprintf("%02d", trackNumber),
		"title":  SanitizeName(track.Title),
		"artist": SanitizeName(track.Artist),
		"album":  SanitizeName(track.Album),
	}
	rendered, err := renderTemplate(template, vars)
	if err != nil {
		if trackNumber > 0 {
			rendered = fmt.Sprintf("%02d - %s", trackNumber, vars["title"])
		} else {
			rendered = vars["title"]
		}
	}
	return rendered + ".mp3"
}

// NewPath computes the full destination path for a resolved track.
func NewPath(base string, track *metadata.Track, folderTemplate, filenameTemplate string) (string, error) {
	folder, err := BuildFolderPath(base, track, folderTemplate)
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, BuildFilename(track, filenameTemplate)), nil
}

// renderTemplate substitutes {token} placeholders from vars. Tokens not in
// vars, unterminated braces, and stray closing braces are errors.
func renderTemplate(template string, vars map[string]string) (string, error) {
	var out strings.Builder
	out.Grow(len(template))
	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder in template %q", template)
			}
			token := template[i+1 : i+1+end]
			value, ok := vars[token]
			if !ok {
				return "", fmt.Errorf("unknown template token %q", token)
			}
			out.WriteString(value)
			i += end + 1
		case '}':
			return "", fmt.Errorf("unexpected '}' in template %q", template)
		default:
			out.WriteByte(template[i])
		}
	}
	return out.String(), nil
}
