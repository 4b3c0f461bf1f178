package cmd

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/dragon/log"
)

// Component names a part of the program that logs through its own logger.
type Component string

// Components.
const (
	ComponentCLI    Component = "cli"
	ComponentLevel  Component = "level"
	ComponentLang   Component = "lang"
	ComponentGame   Component = "game"
	ComponentStore  Component = "store"
	ComponentServer Component = "server"
	ComponentREPL   Component = "repl"
)

// Components returns the name of every component in a fixed order.
func Components() []string {
	return []string{
		string(ComponentCLI),
		string(ComponentLevel),
		string(ComponentLang),
		string(ComponentGame),
		string(ComponentStore),
		string(ComponentServer),
		string(ComponentREPL),
	}
}

// ParseComponents converts names to components. Names are matched without
// regard to case.
func ParseComponents(names []string) ([]Component, error) {
	out := make([]Component, 0, len(names))

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(Components(), name) {
			return nil, ErrUnknownComponent.With(
				slog.String("component", name),
				slog.String("valid", strings.Join(Components(), ",")),
			)
		}

		out = append(out, Component(name))
	}

	return out, nil
}

// Loggers hands out one logger per component. Every record is tagged with
// the component that wrote it, and quiet components get a logger that
// discards everything.
type Loggers struct {
	Base  log.Logger
	Quiet []Component
}

// For returns the logger for c.
func (l Loggers) For(c Component) log.Logger {
	if slices.Contains(l.Quiet, c) {
		return log.Logger{}
	}

	return l.Base.With(slog.String("component", string(c)))
}

type loggersKey struct{}

// WithLoggers returns a context whose commands log through l.
func WithLoggers(ctx context.Context, l Loggers) context.Context {
	return context.WithValue(ctx, loggersKey{}, l)
}

// loggerFrom returns the logger for c stored in ctx, falling back to the
// package logger.
func loggerFrom(ctx context.Context, c Component) log.Logger {
	l, ok := ctx.Value(loggersKey{}).(Loggers)
	if !ok {
		l = Loggers{Base: log.Default()}
	}

	return l.For(c)
}
