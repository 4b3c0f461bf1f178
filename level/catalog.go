package level

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
)

// World is a themed group of levels.
type World struct {
	Name   string        `json:"name"   yaml:"name"`
	Color  string        `json:"color"  yaml:"color"`
	Levels []*Definition `json:"levels" yaml:"levels"`
}

// Catalog is an ordered list of worlds.
type Catalog struct {
	Worlds []*World `json:"worlds" yaml:"worlds"`
}

//go:embed levels.yaml
var defaultCatalog []byte

//nolint:gochecknoglobals
var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(context.Background(), bytes.NewReader(defaultCatalog))
})

// Default returns the embedded catalog. The same Catalog is returned on
// every call and must not be modified.
func Default() (*Catalog, error) { return loadDefault() }

// Load decodes and validates a YAML catalog.
func Load(ctx context.Context, r io.Reader) (*Catalog, error) {
	var c Catalog

	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.DecodeContext(ctx, &c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}

		return nil, ErrReadCatalog.Wrap(err)
	}

	if err := c.index(ctx); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadFile loads the catalog stored at path.
func LoadFile(ctx context.Context, path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadCatalog.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	c, err := Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Merge returns a catalog holding copies of the worlds of every catalog in
// order. Level identifiers are reassigned to match their new positions; the
// given catalogs are not modified.
func Merge(catalogs ...*Catalog) *Catalog {
	var out Catalog

	for _, c := range catalogs {
		if c == nil {
			continue
		}

		for _, w := range c.Worlds {
			if w == nil {
				continue
			}

			cw := *w
			cw.Levels = make([]*Definition, 0, len(w.Levels))

			for _, d := range w.Levels {
				if d != nil {
					cd := *d
					cw.Levels = append(cw.Levels, &cd)
				}
			}

			out.Worlds = append(out.Worlds, &cw)
		}
	}

	out.assignIDs()

	return &out
}

// ID formats the identifier of a level from 1-based world and level numbers.
func ID(world, level int) string {
	return strconv.Itoa(world) + "-" + strconv.Itoa(level)
}

// Lookup returns the level with the given identifier.
func (c *Catalog) Lookup(id string) (*Definition, error) {
	wi, li, ok := c.locate(id)
	if !ok {
		return nil, ErrLevelNotFound.With(slog.String("id", id))
	}

	return c.Worlds[wi].Levels[li], nil
}

// WorldOf returns the world holding the level id.
func (c *Catalog) WorldOf(id string) (*World, error) {
	wi, _, ok := c.locate(id)
	if !ok {
		return nil, ErrLevelNotFound.With(slog.String("id", id))
	}

	return c.Worlds[wi], nil
}

// locate returns the 0-based world and level indices of id.
func (c *Catalog) locate(id string) (world, lvl int, ok bool) {
	w, l, ok := strings.Cut(strings.TrimSpace(id), "-")
	if !ok {
		return 0, 0, false
	}

	wi, werr := strconv.Atoi(w)
	li, lerr := strconv.Atoi(l)

	if werr != nil || lerr != nil ||
		wi < 1 || wi > len(c.Worlds) ||
		li < 1 || li > len(c.Worlds[wi-1].Levels) {
		return 0, 0, false
	}

	return wi - 1, li - 1, true
}

// All returns an iterator over every level in catalog order, keyed by
// identifier.
func (c *Catalog) All() iter.Seq2[string, *Definition] {
	return func(yield func(string, *Definition) bool) {
		for _, w := range c.Worlds {
			for _, d := range w.Levels {
				if !yield(d.ID, d) {
					return
				}
			}
		}
	}
}

// Len returns the total number of levels.
func (c *Catalog) Len() int {
	n := 0
	for _, w := range c.Worlds {
		n += len(w.Levels)
	}

	return n
}

func (c *Catalog) assignIDs() {
	for wi, w := range c.Worlds {
		if w == nil {
			continue
		}

		for li, d := range w.Levels {
			if d != nil {
				d.ID = ID(wi+1, li+1)
			}
		}
	}
}

func (c *Catalog) index(ctx context.Context) error {
	c.assignIDs()

	for _, w := range c.Worlds {
		if w == nil {
			return ErrInvalidLevel.Wrap(fmt.Errorf("empty world entry"))
		}

		for _, d := range w.Levels {
			if d == nil {
				return ErrInvalidLevel.Wrap(fmt.Errorf("empty level entry in %q", w.Name))
			}

			if err := d.Validate(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}
