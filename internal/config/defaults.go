package config

const (
	defaultPlaylistDir        = "~/.local/share/mediabridge/playlists"
	defaultLogDir             = "~/.local/share/mediabridge/logs"
	defaultPlayerMethod       = "auto"
	defaultKeyTool            = "xdotool"
	defaultPollInterval       = 1
	defaultNotifyTimeout      = 10
	defaultJournalMaxEvents   = 1000
	defaultPackagingSourceDir = "."
	defaultPackagingOutputDir = "dist"
	defaultPackagingInstaller = "pip"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PlaylistDir: defaultPlaylistDir,
			LogDir:      defaultLogDir,
		},
		Player: Player{
			Method:       defaultPlayerMethod,
			KeyTool:      defaultKeyTool,
			PollInterval: defaultPollInterval,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			TrackChanges:   true,
			Errors:         true,
		},
		Journal: Journal{
			MaxEvents: defaultJournalMaxEvents,
		},
		Packaging: Packaging{
			SourceDir: defaultPackagingSourceDir,
			OutputDir: defaultPackagingOutputDir,
			Installer: defaultPackagingInstaller,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
