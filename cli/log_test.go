package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/dragon/cli/cmd"
	"github.com/ardnew/dragon/log"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "separate values",
			args:   []string{"play", "--log-level", "debug", "--log-format", "text"},
			level:  "debug",
			format: "text",
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"--log-level=warn", "--log-caller", "--no-log-pretty"},
			level:  "warn",
			format: "json",
			caller: true,
		},
		{
			name:   "negated assignment",
			args:   []string{"--no-log-pretty=false", "--log-caller=false"},
			level:  "info",
			format: "json",
			pretty: true,
		},
		{
			name:   "stops at terminator",
			args:   []string{"--", "--log-level", "error"},
			level:  "info",
			format: "json",
			pretty: true,
		},
		{
			name:   "missing value",
			args:   []string{"--log-level", "-"},
			level:  "info",
			format: "json",
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := logConfig{Level: "info", Format: "json", Pretty: true}
			c.scan(tt.args)

			if c.Level != tt.level || c.Format != tt.format {
				t.Errorf("level, format = %q, %q; want %q, %q", c.Level, c.Format, tt.level, tt.format)
			}

			if c.Pretty != tt.pretty || c.Caller != tt.caller {
				t.Errorf("pretty, caller = %v, %v; want %v, %v", c.Pretty, c.Caller, tt.pretty, tt.caller)
			}
		})
	}
}

func TestStartLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dragon.log")

	c := logConfig{
		Level:      "debug",
		Format:     "json",
		TimeLayout: "none",
		File:       path,
		Quiet:      []string{"store"},
	}

	t.Cleanup(func() { log.Config() })

	loggers, release, err := c.start(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	loggers.For(cmd.ComponentGame).Info("dragon placed")
	loggers.For(cmd.ComponentStore).Info("play saved")
	release()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	out := string(b)

	if !strings.Contains(out, "dragon placed") || !strings.Contains(out, `"component":"game"`) {
		t.Errorf("log file missing game record:\n%s", out)
	}

	if strings.Contains(out, "play saved") {
		t.Errorf("log file has a record from a quiet component:\n%s", out)
	}
}

func TestStartUnknownComponent(t *testing.T) {
	c := logConfig{Level: "info", Format: "json", Quiet: []string{"wyvern"}}

	_, release, err := c.start(t.Context())
	defer release()

	if !errors.Is(err, cmd.ErrUnknownComponent) {
		t.Errorf("start() error = %v, want %v", err, cmd.ErrUnknownComponent)
	}
}
