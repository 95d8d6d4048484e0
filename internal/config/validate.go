package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateLinking(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLibrary() error {
	if c.Library.ShowsDir == "" {
		return errors.New("library.shows_dir must be set")
	}
	if c.Library.MoviesDir == "" {
		return errors.New("library.movies_dir must be set")
	}
	if c.Library.MusicDir == "" {
		return errors.New("library.music_dir must be set")
	}
	names := map[string]string{
		c.Library.ShowsDir:  "library.shows_dir",
		c.Library.MoviesDir: "library.movies_dir",
		c.Library.MusicDir:  "library.music_dir",
	}
	if len(names) != 3 {
		return errors.New("library.shows_dir, library.movies_dir, and library.music_dir must be distinct")
	}
	return nil
}

func (c *Config) validateLinking() error {
	switch c.Linking.Mode {
	case LinkModeHardlink, LinkModeMove:
		return nil
	default:
		return fmt.Errorf("linking.mode must be %q or %q, got %q", LinkModeHardlink, LinkModeMove, c.Linking.Mode)
	}
}

func (c *Config) validateJournal() error {
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path must be set when journal.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
