package config

const (
	defaultSnapshotPath     = "~/.local/share/bindery/ledger.json"
	defaultLogDir           = "~/.local/share/bindery/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultIdentifierColumn = "ISBN"
	defaultTitleColumn      = "Title"
	defaultStatusColumn     = "Status"
	defaultPublisherColumn  = "Publisher"
	defaultFormatColumn     = "Format"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SnapshotPath: defaultSnapshotPath,
			LogDir:       defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Import: Import{
			IdentifierColumn: defaultIdentifierColumn,
			TitleColumn:      defaultTitleColumn,
			StatusColumn:     defaultStatusColumn,
			PublisherColumn:  defaultPublisherColumn,
			FormatColumn:     defaultFormatColumn,
		},
	}
}
