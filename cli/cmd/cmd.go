package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dragon/level"
	"github.com/ardnew/dragon/store"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	catalogKey struct{}
	historyKey struct{}
	streamsKey struct{}
)

// Streams are the standard streams commands read and write.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a context whose commands use s instead of the process
// streams. Nil fields keep the process stream.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// WithCatalogPaths returns a context whose commands load the catalog files
// in paths after the built-in catalog.
func WithCatalogPaths(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, catalogKey{}, paths)
}

// catalogFrom loads the built-in catalog merged with every catalog file
// stored in ctx.
func catalogFrom(ctx context.Context) (*level.Catalog, error) {
	base, err := level.Default()
	if err != nil {
		return nil, err
	}

	paths, _ := ctx.Value(catalogKey{}).([]string)
	if len(paths) == 0 {
		return base, nil
	}

	all := []*level.Catalog{base}

	for _, path := range paths {
		c, err := level.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}

		loggerFrom(ctx, ComponentLevel).DebugContext(ctx, "catalog loaded",
			slog.String("path", path),
			slog.Int("levels", c.Len()))

		all = append(all, c)
	}

	return level.Merge(all...), nil
}

// WithHistoryPath returns a context whose commands record plays in the
// database at path.
func WithHistoryPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, historyKey{}, path)
}

func openHistory(ctx context.Context) (*store.Store, error) {
	path, _ := ctx.Value(historyKey{}).(string)
	if path == "" {
		path = store.Memory
	}

	return store.Open(ctx, path, store.WithLogger(loggerFrom(ctx, ComponentStore)))
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is a script read from a file or stdin.
type source struct {
	name string
	path string
	text string
}

func (s source) isStdin() bool { return s.path == stdinSource }

// readSource reads the script at path, or stdin if path is "-".
func readSource(ctx context.Context, path string) (source, error) {
	var (
		r    io.Reader
		name = path
	)

	if path == stdinSource || path == "" {
		path, name = stdinSource, "<stdin>"
		r = streamsFrom(ctx).In
	} else {
		f, err := os.Open(path)
		if err != nil {
			return source{}, ErrReadSource.Wrap(err).With(slog.String("path", path))
		}
		defer f.Close()

		r = f
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return source{}, ErrReadSource.Wrap(err).With(slog.String("path", name))
	}

	return source{name: name, path: path, text: string(b)}, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueSources drops repeated paths, including different names for the
// same file. Every "-" collapses into one stdin entry placed last.
func uniqueSources(paths []string) []string {
	var (
		out      = make([]string, 0, len(paths))
		seen     = make(map[fileKey]struct{})
		hasStdin bool
	)

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		key, ok := keyOf(path)
		if ok {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		// unreadable paths are kept so reading them reports the error
		out = append(out, path)
	}

	if hasStdin {
		out = append(out, stdinSource)
	}

	return out
}

// keyOf resolves path and returns its device and inode.
func keyOf(path string) (fileKey, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
