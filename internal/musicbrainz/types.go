package musicbrainz

// Artist identifies a single credited artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArtistCredit is one entry of an ordered credit list. JoinPhrase carries its
// own whitespace and punctuation (" feat. ", " & ").
type ArtistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
	Artist     Artist `json:"artist"`
}

// ReleaseGroup classifies a release's form for disambiguation.
type ReleaseGroup struct {
	ID             string   `json:"id"`
	PrimaryType    string   `json:"primary-type"`
	SecondaryTypes []string `json:"secondary-types"`
}

// RecordingRef links a track entry back to its recording.
type RecordingRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TrackEntry is one position in a medium's ordered track listing.
type TrackEntry struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Position  int          `json:"position"`
	Recording RecordingRef `json:"recording"`
}

// Medium is one disc of a release.
type Medium struct {
	Position   int          `json:"position"`
	Format     string       `json:"format"`
	TrackCount int          `json:"track-count"`
	Tracks     []TrackEntry `json:"tracks"`
}

// Release is a specific published edition containing an ordered set of
// recordings.
type Release struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Status       string         `json:"status"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
	ReleaseGroup ReleaseGroup   `json:"release-group"`
	Media        []Medium       `json:"media"`
}

// Recording is the WS/2 recording payload with the includes tracksort asks
// for (artist-credits, releases, release-groups, media).
type Recording struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Length       int            `json:"length"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
	Releases     []Release      `json:"releases"`
}
