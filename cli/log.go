package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dragon/cli/cmd"
	"github.com/ardnew/dragon/log"
)

// early holds the logger options seen while arguments are still being
// parsed. Each flag refines the package logger instead of replacing it.
//
//nolint:gochecknoglobals
var early struct {
	sync.Mutex

	opts []log.Option
}

func configureEarly(opts ...log.Option) {
	early.Lock()
	defer early.Unlock()

	early.opts = append(early.opts, opts...)
	log.Config(early.opts...)
}

func resetEarly() {
	early.Lock()
	defer early.Unlock()

	early.opts = nil
}

// logFormat configures the package logger as kong decodes --log-format, so
// usage errors are already written in the requested format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	configureEarly(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is [logFormat] for --log-level.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	configureEarly(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" env:"DRAGON_LOG_LEVEL"  help:"Set log level."`
	Format     logFormat `default:"json"    enum:"json,text"                   env:"DRAGON_LOG_FORMAT" help:"Set log format."`
	TimeLayout string    `default:"RFC3339" help:"Set timestamp format."`
	Caller     bool      `default:"false"   help:"Include caller information."        negatable:""`
	Pretty     bool      `default:"true"    help:"Enable colorized pretty printing."  negatable:""`
	File       string    `help:"Append log records to this file instead of stderr."  type:"path"`
	Quiet      []string  `help:"Silence log records from these components (${logComponents})." placeholder:"COMPONENT"`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logComponents": strings.Join(cmd.Components(), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (c *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.ParseLevel(string(c.Level))),
		log.WithFormat(log.ParseFormat(string(c.Format))),
		log.WithTimeLayout(c.TimeLayout),
		log.WithCaller(c.Caller),
		log.WithPretty(c.Pretty),
	}
}

// start builds the loggers commands hand to the packages they drive. The
// returned function closes the log file, if any.
func (c *logConfig) start(ctx context.Context) (cmd.Loggers, func(), error) {
	release := func() {}

	quiet, err := cmd.ParseComponents(c.Quiet)
	if err != nil {
		return cmd.Loggers{}, release, err
	}

	opts := c.options()

	if c.File != "" {
		f, err := openLogFile(c.File)
		if err != nil {
			return cmd.Loggers{}, release, err
		}

		// escape sequences are noise in a file
		opts = append(opts, log.WithOutput(f), log.WithPretty(false))
		release = func() { _ = f.Close() }
	}

	base := log.Config(opts...)

	base.DebugContext(ctx, "logger initialized",
		slog.String("level", string(c.Level)),
		slog.String("format", string(c.Format)),
		slog.String("file", c.File),
		slog.Any("quiet", quiet),
	)

	return cmd.Loggers{Base: base, Quiet: quiet}, release, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return nil, err
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// scan applies the --log-* flags in args before kong parses them, so a flag
// placed after the command still affects messages logged during parsing.
// Boolean flags never pass through UnmarshalText, which is why this runs at
// all.
func (c *logConfig) scan(args []string) {
	resetEarly()

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		negated := false
		if rest, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negated = "--log-"+rest, true
		}

		switch name {
		case "--log-level", "--log-format":
			if negated {
				continue
			}

			if !assigned {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					continue
				}

				i++
				value = args[i]
			}

			if name == "--log-level" {
				_ = c.Level.UnmarshalText([]byte(value))
			} else {
				_ = c.Format.UnmarshalText([]byte(value))
			}

		case "--log-pretty", "--log-caller":
			enable := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			enable = enable != negated

			if name == "--log-pretty" {
				c.Pretty = enable
				configureEarly(log.WithPretty(enable))
			} else {
				c.Caller = enable
				configureEarly(log.WithCaller(enable))
			}
		}
	}
}
