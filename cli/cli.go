package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dragon/cli/cmd"
	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/pkg"
)

// CLI is the top-level command-line interface for dragon.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version   kong.VersionFlag `help:"Print version and exit"`
	Catalog   []string         `help:"Additional level catalog file(s)" short:"c"                     type:"existingfile"`
	HistoryDB string           `default:"${historyFile}"                help:"Play history database" name:"history-db" type:"path"`

	Play    cmd.Play    `cmd:"" help:"Play a battle plan against a level"`
	Check   cmd.Check   `cmd:"" help:"Check battle plans for syntax errors"`
	Fmt     cmd.Fmt     `cmd:"" help:"Format battle plans"`
	Levels  cmd.Levels  `cmd:"" help:"List levels or show one"`
	Solve   cmd.Solve   `cmd:"" help:"Play the reference solution of levels"`
	Repl    cmd.Repl    `cmd:"" help:"Write and run a battle plan interactively"`
	Serve   cmd.Serve   `cmd:"" help:"Serve levels over HTTP"`
	History cmd.History `cmd:"" help:"Show or clear recorded plays"`
	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
}

// Run executes the dragon CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   pkg.CacheDir(),
		cmd.HistoryIdentifier: historyPath(),
		"playTimeout":         cmd.DefaultTimeout.String(),
		"maxDepth":            strconv.Itoa(lang.DefaultMaxDepth),
		"version":             pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	loggers, release, err := cli.Log.start(ctx)
	if err != nil {
		return err
	}
	defer release()

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithLoggers(ctx, loggers)
	ctx = cmd.WithCatalogPaths(ctx, append(catalogPaths(), cli.Catalog...))
	ctx = cmd.WithHistoryPath(ctx, cli.HistoryDB)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
