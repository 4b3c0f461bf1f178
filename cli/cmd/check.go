package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/dragon/cli/cmd/view"
	"github.com/ardnew/dragon/lang"
)

// Check parses battle plans without running them.
type Check struct {
	Sources []string `arg:"" default:"-" help:"Battle plan files (- for stdin)" type:"path"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := streamsFrom(ctx).Out
	failed := 0

	for _, path := range uniqueSources(c.Sources) {
		src, err := readSource(ctx, path)
		if err != nil {
			return err
		}

		_, err = lang.ParseString(ctx, src.text, lang.WithLogger(loggerFrom(ctx, ComponentLang)))
		if err == nil {
			view.OK(out, src.name)

			continue
		}

		var perr *lang.ParseError
		if !errors.As(err, &perr) {
			return err
		}

		failed++

		view.Fail(out, src.name,
			strings.Join(perr.Messages(), "\n")+"\n"+perr.Snippet())
	}

	if failed > 0 {
		return ErrCheck.With(slog.Int("files", failed))
	}

	return nil
}
