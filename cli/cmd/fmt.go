package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/dragon/lang"
)

// Fmt rewrites battle plans in canonical form.
type Fmt struct {
	Write   bool     `help:"Write result to the source file instead of stdout" short:"w"`
	Sources []string `arg:""                                                   default:"-" help:"Battle plan files (- for stdin)" type:"path"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := streamsFrom(ctx).Out

	for _, path := range uniqueSources(f.Sources) {
		src, err := readSource(ctx, path)
		if err != nil {
			return err
		}

		program, err := lang.ParseString(ctx, src.text, lang.WithLogger(loggerFrom(ctx, ComponentLang)))
		if err != nil {
			return ErrCheck.Wrap(err).With(slog.String("file", src.name))
		}

		var buf bytes.Buffer
		if err := lang.Format(&buf, program); err != nil {
			return ErrWriteSource.Wrap(err).With(slog.String("file", src.name))
		}

		if !f.Write || src.isStdin() {
			if _, err := out.Write(buf.Bytes()); err != nil {
				return ErrWriteSource.Wrap(err)
			}

			continue
		}

		if buf.String() == src.text {
			continue
		}

		if err := writeFile(src.path, buf.Bytes()); err != nil {
			return err
		}

		loggerFrom(ctx, ComponentCLI).DebugContext(ctx, "formatted", slog.String("file", src.path))
	}

	return nil
}

// writeFile replaces the content of path, keeping its permissions.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return ErrWriteSource.Wrap(err).With(slog.String("file", path))
	}

	return nil
}
