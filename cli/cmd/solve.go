package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/dragon/game"
)

// Solve plays a level's reference solution.
type Solve struct {
	Frames bool     `help:"Print every rendered frame" short:"f"`
	Levels []string `arg:""                            help:"Level IDs (all levels if omitted)" optional:""`
}

// Run executes the solve command.
func (s *Solve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	catalog, err := catalogFrom(ctx)
	if err != nil {
		return err
	}

	ids := s.Levels
	if len(ids) == 0 {
		for id := range catalog.All() {
			ids = append(ids, id)
		}
	}

	var failed []string

	for _, id := range ids {
		def, err := catalog.Lookup(id)
		if err != nil {
			return err
		}

		if strings.TrimSpace(def.Solution) == "" {
			return ErrNoSolution.With(slog.String("level", id))
		}

		p := Play{
			Level:   id,
			Seed:    -1,
			Frames:  s.Frames,
			Strict:  true,
			Timeout: DefaultTimeout,
		}

		res, frames, err := p.play(ctx, def, def.Solution)
		if err != nil {
			return err
		}

		p.print(ctx, def.ID, def.Actions, res, frames)

		if res.State != game.WON {
			failed = append(failed, id)
		}
	}

	if len(failed) > 0 {
		return ErrDefeated.With(slog.String("levels", strings.Join(failed, ",")))
	}

	return nil
}
