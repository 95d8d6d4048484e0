package config

import "strings"

// normalize expands user paths and canonicalizes enumerated values so the
// rest of the program only ever sees sanitized settings.
func (c *Config) normalize() error {
	var err error

	if c.Paths.LibraryDir = strings.TrimSpace(c.Paths.LibraryDir); c.Paths.LibraryDir != "" {
		if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
			return err
		}
	}
	if c.Paths.DataDir = strings.TrimSpace(c.Paths.DataDir); c.Paths.DataDir != "" {
		if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
			return err
		}
	}
	if c.Journal.Path = strings.TrimSpace(c.Journal.Path); c.Journal.Path != "" {
		if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
			return err
		}
	}

	c.Library.ShowsDir = strings.TrimSpace(c.Library.ShowsDir)
	c.Library.MoviesDir = strings.TrimSpace(c.Library.MoviesDir)
	c.Library.MusicDir = strings.TrimSpace(c.Library.MusicDir)

	c.Linking.Mode = strings.ToLower(strings.TrimSpace(c.Linking.Mode))
	if c.Linking.Mode == "" {
		c.Linking.Mode = defaultLinkMode
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	return nil
}
