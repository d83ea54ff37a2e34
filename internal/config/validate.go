package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is internally consistent. Run-level
// preconditions that depend on what the user is doing (source path, API key,
// fpcalc availability) are checked by the pipeline, not here, so read-only
// commands work on a partial config.
func (c *Config) Validate() error {
	if c.AcoustID.MinScore < 0 || c.AcoustID.MinScore > 1 {
		return errors.New("acoustid.min_score must be between 0 and 1")
	}
	if err := validateTemplate("organizer.folder_template", c.Organizer.FolderTemplate); err != nil {
		return err
	}
	if err := validateTemplate("organizer.filename_template", c.Organizer.FilenameTemplate); err != nil {
		return err
	}
	if strings.ContainsAny(c.Organizer.UnmatchedDir, `/\`) {
		return errors.New("organizer.unmatched_dir must be a bare directory name")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// validateTemplate rejects templates with unbalanced braces early; the
// organizer rejects unknown placeholder names per template kind.
func validateTemplate(field, tmpl string) error {
	depth := 0
	for _, r := range tmpl {
		switch r {
		case '{':
			depth++
			if depth > 1 {
				return fmt.Errorf("%s: nested '{' in template %q", field, tmpl)
			}
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%s: unbalanced '}' in template %q", field, tmpl)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%s: unbalanced '{' in template %q", field, tmpl)
	}
	return nil
}
