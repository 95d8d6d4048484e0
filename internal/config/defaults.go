package config

const (
	defaultDataDir     = "~/.local/share/mediasort"
	defaultShowsDir    = "Shows"
	defaultMoviesDir   = "Movies"
	defaultMusicDir    = "Music"
	defaultLinkMode    = "hardlink"
	defaultJournalPath = "~/.local/share/mediasort/journal.db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// LinkModeHardlink places files by creating hard links in the library.
const LinkModeHardlink = "hardlink"

// LinkModeMove places files by renaming them into the library and pruning
// emptied source directories.
const LinkModeMove = "move"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Library: Library{
			ShowsDir:  defaultShowsDir,
			MoviesDir: defaultMoviesDir,
			MusicDir:  defaultMusicDir,
		},
		Linking: Linking{
			Mode: defaultLinkMode,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
