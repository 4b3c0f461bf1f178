package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ardnew/dragon/cli/cmd/view"
	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/level"
	"github.com/ardnew/dragon/store"
)

// DefaultTimeout bounds a single play started from the command line.
const DefaultTimeout = 5 * time.Second

// Play runs a battle plan against a level.
type Play struct {
	Level    string        `help:"Level ID (e.g. 1-1)"                                  required:"" short:"l"`
	Seed     int64         `default:"-1"                                                help:"Seed for dragon placement (-1 for random)"`
	Frames   bool          `help:"Print every rendered frame"                           short:"f"`
	Strict   bool          `help:"Reject statements the level excludes"                 short:"s"`
	Record   bool          `help:"Record the result in the play history"                short:"r"`
	Timeout  time.Duration `default:"${playTimeout}"                                    help:"Abort evaluation after this long (0 to disable)"`
	MaxDepth int           `default:"${maxDepth}"                                       help:"Maximum nested function call depth"`
	Source   string        `arg:""                                                      default:"-"                                          help:"Battle plan file (- for stdin)" type:"path"`
}

// Run executes the play command.
func (p *Play) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	catalog, err := catalogFrom(ctx)
	if err != nil {
		return err
	}

	def, err := catalog.Lookup(p.Level)
	if err != nil {
		return err
	}

	src, err := readSource(ctx, p.Source)
	if err != nil {
		return err
	}

	res, frames, err := p.play(ctx, def, src.text)
	if err != nil {
		return err
	}

	p.print(ctx, def.ID, def.Actions, res, frames)

	if p.Record {
		if err := record(ctx, def.ID, src.text, res); err != nil {
			return err
		}
	}

	if res.State != game.WON {
		return ErrDefeated.With(
			slog.String("level", def.ID),
			slog.String("state", res.State.String()),
		)
	}

	return nil
}

func (p *Play) play(
	ctx context.Context,
	def *level.Definition,
	script string,
) (game.Result, []game.Frame, error) {
	opts := []game.Option{
		game.WithLogger(loggerFrom(ctx, ComponentGame)),
		game.WithStrictExclusions(p.Strict),
		game.WithMaxDepth(p.MaxDepth),
	}

	if p.Seed >= 0 {
		opts = append(opts, game.WithSeed(uint64(p.Seed)))
	}

	g, err := game.New(def, opts...)
	if err != nil {
		return game.Result{}, nil, err
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	res, err := g.Play(ctx, script)
	if err != nil {
		return game.Result{}, nil, err
	}

	return res, g.Frames(), nil
}

// print writes the frames (or only the final death dialog) and the verdict.
func (p *Play) print(
	ctx context.Context,
	id string,
	limit int,
	res game.Result,
	frames []game.Frame,
) {
	out := streamsFrom(ctx).Out

	if p.Frames {
		for _, f := range frames {
			fmt.Fprintln(out, view.Frame(f))
		}
	} else if n := len(frames); n > 0 && frames[n-1].Kind == game.DIALOG {
		fmt.Fprintln(out, view.Frame(frames[n-1]))
	}

	view.Verdict(out, id, res, limit)
}

// record saves a play result in the history database.
func record(ctx context.Context, id, script string, res game.Result) error {
	st, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.Save(ctx, store.NewRecord(id, script, res))
}
