package cmd

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/dragon/log"
)

func TestParseComponents(t *testing.T) {
	got, err := ParseComponents([]string{"store", " Game "})
	if err != nil {
		t.Fatal(err)
	}

	if want := []Component{ComponentStore, ComponentGame}; !slices.Equal(got, want) {
		t.Errorf("ParseComponents() = %v, want %v", got, want)
	}

	_, err = ParseComponents([]string{"dragon"})
	if !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("unknown component: got %v, want %v", err, ErrUnknownComponent)
	}
}

func TestLoggers(t *testing.T) {
	var buf bytes.Buffer

	loggers := Loggers{
		Base:  log.Make(&buf, log.WithFormat(log.FormatJSON), log.WithLevel(log.LevelTrace)),
		Quiet: []Component{ComponentStore},
	}

	ctx := WithLoggers(t.Context(), loggers)

	loggerFrom(ctx, ComponentGame).InfoContext(ctx, "placed")
	loggerFrom(ctx, ComponentStore).InfoContext(ctx, "saved")

	out := buf.String()

	if !strings.Contains(out, `"component":"game"`) || !strings.Contains(out, "placed") {
		t.Errorf("game record missing: %s", out)
	}

	if strings.Contains(out, "saved") {
		t.Errorf("quiet component logged: %s", out)
	}
}

func TestLoggerFromDefault(t *testing.T) {
	if l := loggerFrom(t.Context(), ComponentCLI); l.Logger == nil {
		t.Error("loggerFrom without loggers returned a silent logger")
	}
}
