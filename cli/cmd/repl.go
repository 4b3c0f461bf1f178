package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ardnew/dragon/cli/cmd/repl"
	"github.com/ardnew/dragon/game"
)

// Repl writes and runs a battle plan interactively.
type Repl struct {
	Level    string        `default:"1-1"            help:"Level ID to start on"                       short:"l"`
	Seed     int64         `default:"-1"             help:"Seed for dragon placement (-1 for random)"`
	Strict   bool          `help:"Reject statements the level excludes" short:"s"`
	Timeout  time.Duration `default:"${playTimeout}" help:"Abort each run after this long (0 to disable)"`
	MaxDepth int           `default:"${maxDepth}"    help:"Maximum nested function call depth"`
	NoSave   bool          `help:"Do not persist line history"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	catalog, err := catalogFrom(ctx)
	if err != nil {
		return err
	}

	opts := []game.Option{
		game.WithStrictExclusions(r.Strict),
		game.WithMaxDepth(r.MaxDepth),
		game.WithLogger(loggerFrom(ctx, ComponentGame)),
	}

	if r.Seed >= 0 {
		opts = append(opts, game.WithSeed(uint64(r.Seed)))
	}

	logger := loggerFrom(ctx, ComponentREPL)

	session, err := repl.NewSession(catalog, r.Level,
		repl.WithLogger(logger),
		repl.WithTimeout(r.Timeout),
		repl.WithGameOptions(opts...),
	)
	if err != nil {
		return err
	}

	return repl.Run(ctx, session, r.historyPath(ctx), logger)
}

func (r *Repl) historyPath(ctx context.Context) string {
	if r.NoSave {
		return ""
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok || dir == "" {
		return ""
	}

	return filepath.Join(dir, repl.BaseHistory)
}
