package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

//nolint:gochecknoglobals
var (
	keyColor    = color.New(color.Faint)
	timeColor   = color.New(color.FgHiBlack)
	msgColor    = color.New(color.Bold)
	stringColor = color.New(color.FgGreen)
	numberColor = color.New(color.FgCyan)
	boolColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	sourceColor = color.New(color.FgBlue, color.Faint)

	levelColor = map[Level]*color.Color{
		LevelTrace: color.New(color.FgMagenta),
		LevelDebug: color.New(color.FgBlue),
		LevelInfo:  color.New(color.FgGreen),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed, color.Bold),
	}
)

// prettyHandler writes key=value records with colorized keys and values.
// Colors are disabled whenever [color.NoColor] is set, e.g., when the
// output is not a terminal.
type prettyHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	opts   *slog.HandlerOptions
	prefix string // group prefix for attrs added after WithGroup
	attrs  []byte // preformatted attrs from WithAttrs
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &prettyHandler{mu: &sync.Mutex{}, out: w, opts: opts}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			buf.WriteString(timeColor.Sprint(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	lc, ok := levelColor[Level(r.Level)]
	if !ok {
		lc = levelColor[LevelInfo]
	}

	buf.WriteString(lc.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String())))
	buf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		buf.WriteString(sourceColor.Sprintf("%s:%d", f.File, f.Line))
		buf.WriteByte(' ')
	}

	buf.WriteString(msgColor.Sprint(r.Message))
	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var buf bytes.Buffer
	for _, a := range attrs {
		h.appendAttr(&buf, h.prefix, a)
	}

	clone := *h
	clone.attrs = append(slices.Clip(h.attrs), buf.Bytes()...)

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}

		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range group {
			h.appendAttr(buf, prefix, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(keyColor.Sprint(prefix + a.Key + "="))
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if needsQuote(s) {
			s = strconv.Quote(s)
		}

		return stringColor.Sprint(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return numberColor.Sprint(v.String())

	case slog.KindDuration:
		return numberColor.Sprint(v.Duration().String())

	case slog.KindBool:
		return boolColor.Sprint(strconv.FormatBool(v.Bool()))

	case slog.KindTime:
		return timeColor.Sprint(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return errorColor.Sprint(strconv.Quote(err.Error()))
		}

		s := fmt.Sprint(v.Any())
		if needsQuote(s) {
			s = strconv.Quote(s)
		}

		return s

	default:
		return v.String()
	}
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}

	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' || r == 0x7f {
			return true
		}
	}

	return false
}
