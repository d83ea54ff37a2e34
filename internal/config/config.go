package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	BackupDir string `toml:"backup_dir"`
}

// AcoustID contains configuration for the AcoustID match service.
type AcoustID struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	MinScore       float64 `toml:"min_score"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// MusicBrainz contains configuration for the MusicBrainz metadata service.
type MusicBrainz struct {
	BaseURL         string `toml:"base_url"`
	UserAgent       string `toml:"user_agent"`
	RateLimitMillis int    `toml:"rate_limit_millis"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// Scanner contains configuration for source file enumeration.
type Scanner struct {
	ExcludeDirs []string `toml:"exclude_dirs"`
}

// Organizer contains configuration for the library layout.
type Organizer struct {
	FolderTemplate   string `toml:"folder_template"`
	FilenameTemplate string `toml:"filename_template"`
	UnmatchedDir     string `toml:"unmatched_dir"`
	Backup           bool   `toml:"backup"`
}

// Options contains run behavior toggles.
type Options struct {
	DryRun bool `toml:"dry_run"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tracksort.
//
// Configuration sections by subsystem:
//   - Paths: source, output, backup, and log directories
//   - AcoustID: fingerprint match service credentials and threshold
//   - MusicBrainz: metadata service endpoint and rate limit
//   - Scanner: directory names excluded from the scan
//   - Organizer: folder/filename templates and unmatched handling
//   - Options: dry-run default
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	AcoustID    AcoustID    `toml:"acoustid"`
	MusicBrainz MusicBrainz `toml:"musicbrainz"`
	Scanner     Scanner     `toml:"scanner"`
	Organizer   Organizer   `toml:"organizer"`
	Options     Options     `toml:"options"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tracksort/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized, and environment
// overrides applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// applyEnvOverrides layers environment variables over file values. A local
// .env file is loaded best-effort first so credentials can stay out of the
// TOML file.
func (c *Config) applyEnvOverrides() {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("ACOUSTID_API_KEY")); v != "" {
		c.AcoustID.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("TRACKSORT_SOURCE_DIR")); v != "" {
		c.Paths.SourceDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TRACKSORT_OUTPUT_DIR")); v != "" {
		c.Paths.OutputDir = v
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tracksort.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs. The output directory
// is created on a best-effort basis so dry runs work when the library volume
// is offline.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		_ = os.MkdirAll(c.Paths.OutputDir, 0o755)
	}
	return nil
}

// OutputRoot returns the configured output directory, falling back to the
// source directory when unset.
func (c *Config) OutputRoot() string {
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		return c.Paths.OutputDir
	}
	return c.Paths.SourceDir
}

// BackupRoot returns the backup directory when backups are enabled, or "".
// An enabled backup with no explicit directory lands under the source tree.
func (c *Config) BackupRoot() string {
	if !c.Organizer.Backup {
		return ""
	}
	if strings.TrimSpace(c.Paths.BackupDir) != "" {
		return c.Paths.BackupDir
	}
	return filepath.Join(c.Paths.SourceDir, ".backup")
}

// FpcalcBinary returns the Chromaprint executable name.
func (c *Config) FpcalcBinary() string {
	return "fpcalc"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
