package config

const (
	defaultLogDir               = "~/.local/share/tracksort/logs"
	defaultAcoustIDBaseURL      = "https://api.acoustid.org/v2"
	defaultAcoustIDMinScore     = 0.5
	defaultAcoustIDTimeout      = 30
	defaultMusicBrainzBaseURL   = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzUserAgent = "tracksort/1.0 (https://github.com/tracksort/tracksort)"
	defaultMusicBrainzRateMS    = 1000
	defaultMusicBrainzTimeout   = 30
	defaultFolderTemplate       = "{artist}/{album}"
	defaultFilenameTemplate     = "{track} - {title}"
	defaultUnmatchedDir         = "_unmatched"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		AcoustID: AcoustID{
			BaseURL:        defaultAcoustIDBaseURL,
			MinScore:       defaultAcoustIDMinScore,
			TimeoutSeconds: defaultAcoustIDTimeout,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:         defaultMusicBrainzBaseURL,
			UserAgent:       defaultMusicBrainzUserAgent,
			RateLimitMillis: defaultMusicBrainzRateMS,
			TimeoutSeconds:  defaultMusicBrainzTimeout,
		},
		Scanner: Scanner{
			ExcludeDirs: []string{".backup", "_unmatched"},
		},
		Organizer: Organizer{
			FolderTemplate:   defaultFolderTemplate,
			FilenameTemplate: defaultFilenameTemplate,
			UnmatchedDir:     defaultUnmatchedDir,
		},
		Options: Options{
			DryRun: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
