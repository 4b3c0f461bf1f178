package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() { color.NoColor = true }

// testContext returns a context whose commands write to the returned buffer
// and read stdin from in.
func testContext(t *testing.T, in string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithStreams(t.Context(), Streams{
		In:  strings.NewReader(in),
		Out: &out,
		Err: &out,
	})

	return ctx, &out
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestUniqueSources(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "")
	b := writeTestFile(t, dir, "b.txt", "")

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(a, link); err != nil {
		t.Fatal(err)
	}

	missing := filepath.Join(dir, "missing.txt")

	got := uniqueSources([]string{"-", a, link, b, "-", missing, a})
	want := []string{a, b, missing, "-"}

	if !slices.Equal(got, want) {
		t.Errorf("uniqueSources() = %v, want %v", got, want)
	}
}

func TestReadSource(t *testing.T) {
	ctx, _ := testContext(t, "knight.move(EAST);")

	src, err := readSource(ctx, "-")
	if err != nil {
		t.Fatal(err)
	}

	if !src.isStdin() || src.name != "<stdin>" || src.text != "knight.move(EAST);" {
		t.Errorf("readSource(-) = %+v", src)
	}

	_, err = readSource(ctx, filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrReadSource) {
		t.Errorf("readSource(missing) error = %v, want %v", err, ErrReadSource)
	}
}

func TestCatalogFrom(t *testing.T) {
	extra := writeTestFile(t, t.TempDir(), "extra.yaml", `
worlds:
  - name: Extra
    levels:
      - tiles: [[ROAD, ROAD]]
        knight: {position: {row: 0, column: 0}}
        dragon: {position: {row: 0, column: 1}, hp: 1}
        actions: 1
`)

	base, err := catalogFrom(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	merged, err := catalogFrom(WithCatalogPaths(t.Context(), []string{extra}))
	if err != nil {
		t.Fatal(err)
	}

	if merged.Len() != base.Len()+1 {
		t.Errorf("merged Len() = %d, want %d", merged.Len(), base.Len()+1)
	}

	_, err = catalogFrom(WithCatalogPaths(t.Context(), []string{extra + ".missing"}))
	if err == nil {
		t.Error("catalogFrom(missing) succeeded")
	}
}
