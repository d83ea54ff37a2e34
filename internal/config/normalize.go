package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServices()
	c.normalizeOrganizer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) != "" {
		if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
			return fmt.Errorf("paths.source_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) != "" {
		if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
			return fmt.Errorf("paths.backup_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeServices() {
	c.AcoustID.APIKey = strings.TrimSpace(c.AcoustID.APIKey)
	c.AcoustID.BaseURL = strings.TrimRight(strings.TrimSpace(c.AcoustID.BaseURL), "/")
	if c.AcoustID.BaseURL == "" {
		c.AcoustID.BaseURL = defaultAcoustIDBaseURL
	}
	if c.AcoustID.TimeoutSeconds <= 0 {
		c.AcoustID.TimeoutSeconds = defaultAcoustIDTimeout
	}

	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzBaseURL
	}
	c.MusicBrainz.UserAgent = strings.TrimSpace(c.MusicBrainz.UserAgent)
	if c.MusicBrainz.UserAgent == "" {
		c.MusicBrainz.UserAgent = defaultMusicBrainzUserAgent
	}
	if c.MusicBrainz.RateLimitMillis <= 0 {
		c.MusicBrainz.RateLimitMillis = defaultMusicBrainzRateMS
	}
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		c.MusicBrainz.TimeoutSeconds = defaultMusicBrainzTimeout
	}
}

func (c *Config) normalizeOrganizer() {
	c.Organizer.FolderTemplate = strings.TrimSpace(c.Organizer.FolderTemplate)
	if c.Organizer.FolderTemplate == "" {
		c.Organizer.FolderTemplate = defaultFolderTemplate
	}
	c.Organizer.FilenameTemplate = strings.TrimSpace(c.Organizer.FilenameTemplate)
	if c.Organizer.FilenameTemplate == "" {
		c.Organizer.FilenameTemplate = defaultFilenameTemplate
	}
	c.Organizer.UnmatchedDir = strings.TrimSpace(c.Organizer.UnmatchedDir)
	if c.Organizer.UnmatchedDir == "" {
		c.Organizer.UnmatchedDir = defaultUnmatchedDir
	}

	trimmed := make([]string, 0, len(c.Scanner.ExcludeDirs))
	for _, dir := range c.Scanner.ExcludeDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			trimmed = append(trimmed, dir)
		}
	}
	c.Scanner.ExcludeDirs = trimmed
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
