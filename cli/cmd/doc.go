// Package cmd implements the dragon subcommands.
//
// Commands read their shared state (catalog search path, history database,
// output streams) from the [context.Context] kong binds for them; see
// [WithCatalogPaths], [WithHistoryPath] and [WithStreams].
package cmd

//nolint:gochecknoglobals
var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the
	// default path of the play history database.
	HistoryIdentifier = "historyFile"
)
