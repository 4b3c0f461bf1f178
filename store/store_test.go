package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/log"
)

func open(t *testing.T, path string, opts ...Option) *Store {
	t.Helper()

	s, err := Open(t.Context(), path, opts...)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Error(err)
		}
	})

	return s
}

func TestSaveList(t *testing.T) {
	s := open(t, Memory)
	ctx := t.Context()

	plays := []struct {
		level  string
		script string
		res    game.Result
	}{
		{"1-1", "knight.attack(EAST);", game.Result{State: game.LOST, Actions: 1, Message: game.NotSlain}},
		{"1-1", "knight.move(EAST); knight.attack(EAST);", game.Result{State: game.WON, Actions: 2}},
		{"1-2", "knight.move(", game.Result{State: game.ERROR, Actions: 1, Message: "Line[1]: ..."}},
	}

	for _, p := range plays {
		r := NewRecord(p.level, p.script, p.res)
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}

		if r.ID == 0 || r.CreatedAt.IsZero() {
			t.Errorf("saved record = %+v", r)
		}
	}

	all, err := s.List(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(all) != 3 || all[0].Level != "1-2" || all[2].State != "LOST" {
		t.Fatalf("List = %+v", all)
	}

	one, err := s.List(ctx, "1-1", 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(one) != 1 || one[0].State != "WON" || one[0].Actions != 2 {
		t.Errorf("List(1-1, 1) = %+v", one)
	}

	if one[0].Digest != Digest(plays[1].script) {
		t.Errorf("digest = %s", one[0].Digest)
	}
}

func TestClear(t *testing.T) {
	s := open(t, Memory)
	ctx := t.Context()

	for range 3 {
		if err := s.Save(ctx, NewRecord("1-1", "", game.Result{State: game.ERROR})); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Clear(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Clear = %d, %v", n, err)
	}

	if got, _ := s.List(ctx, "", 0); len(got) != 0 {
		t.Errorf("List after Clear = %+v", got)
	}

	if live, _ := s.Count(ctx, false); live != 0 {
		t.Errorf("live = %d", live)
	}

	if all, _ := s.Count(ctx, true); all != 3 {
		t.Errorf("unscoped = %d, want 3", all)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFile)

	s, err := Open(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(t.Context(), NewRecord("3-4", "x", game.Result{})); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s = open(t, path)

	if n, _ := s.Count(t.Context(), false); n != 1 {
		t.Errorf("count after reopen = %d", n)
	}
}

func TestOpenFails(t *testing.T) {
	dir := t.TempDir()

	// a directory is not a database
	if _, err := Open(t.Context(), dir); !errors.Is(err, ErrOpen) {
		t.Errorf("err = %v", err)
	}
}

func TestDigest(t *testing.T) {
	a, b := Digest("knight.move(EAST);"), Digest("knight.move(WEST);")

	if len(a) != 64 || a == b || a != Digest("knight.move(EAST);") {
		t.Errorf("digests %s %s", a, b)
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON))
	s := open(t, Memory, WithLogger(logger))

	if _, err := s.List(t.Context(), "", 5); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), `"sql":"SELECT`) {
		t.Errorf("no SQL traced:\n%s", buf.String())
	}
}
