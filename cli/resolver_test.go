package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	const src = `
log-level: debug
log_pretty: false
history-db: /tmp/dragon.db
max-depth: 128
ratio: 0.5
catalog:
  - a.yaml
  - b.yaml
`

	r, err := resolve(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"history-db", "/tmp/dragon.db"},
		{"max-depth", "128"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}

	got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "catalog"}})

	list, ok := got.([]any)
	if !ok || !slices.Equal(list, []any{"a.yaml", "b.yaml"}) {
		t.Errorf("Resolve(catalog) = %#v", got)
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, src := range []string{"", "log-level: [unterminated", "- a\n- b\n"} {
		r, err := resolve(strings.NewReader(src))
		if err != nil {
			t.Errorf("resolve(%q) error = %v", src, err)

			continue
		}

		if v, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}}); v != nil {
			t.Errorf("resolve(%q) resolved log-level = %v", src, v)
		}
	}
}

func TestConfigFile(t *testing.T) {
	type app struct {
		Level string `default:"info"`
		Depth int    `default:"1"`
	}

	path := t.TempDir() + "/config.yaml"
	writeFile(t, path, "level: warn\ndepth: 7\n")

	var a app

	parser, err := kong.New(&a, kong.Configuration(resolve, path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--depth=9"}); err != nil {
		t.Fatal(err)
	}

	if a.Level != "warn" || a.Depth != 9 {
		t.Errorf("parsed %+v, want {warn 9}", a)
	}
}
