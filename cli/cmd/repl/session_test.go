package repl

import (
	"errors"
	"testing"
	"time"

	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/level"
)

func newSession(t *testing.T, id string, opts ...Option) *Session {
	t.Helper()

	catalog, err := level.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	s, err := NewSession(catalog, id, opts...)
	if err != nil {
		t.Fatalf("NewSession(%q) error = %v", id, err)
	}

	return s
}

func TestSessionRun(t *testing.T) {
	s := newSession(t, "1-1")

	if _, _, err := s.Run(t.Context()); !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("Run() on empty plan error = %v, want %v", err, ErrEmptyPlan)
	}

	s.Append("knight.move(EAST);")
	s.Append("knight.attack(EAST);")

	res, frames, err := s.Run(t.Context())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.State != game.WON {
		t.Errorf("Run() state = %v, want WON (%s)", res.State, res.Message)
	}

	if len(frames) != 2 {
		t.Errorf("Run() frames = %d, want 2", len(frames))
	}

	if got := s.Board().Knight; got == nil || got.Position != (level.Position{Row: 0, Column: 1}) {
		t.Errorf("Board().Knight = %+v, want at (0,1)", got)
	}

	board, err := s.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if board.Knight.Position != (level.Position{}) {
		t.Errorf("Reset() knight at %v, want (0,0)", board.Knight.Position)
	}
}

func TestSessionEditing(t *testing.T) {
	s := newSession(t, "1-1")

	if _, err := s.Undo(); !errors.Is(err, ErrNothingUndo) {
		t.Errorf("Undo() on empty plan error = %v, want %v", err, ErrNothingUndo)
	}

	s.Append("knight.move(EAST);")
	s.Append("knight.move(WEST);")

	line, err := s.Undo()
	if err != nil || line != "knight.move(WEST);" {
		t.Errorf("Undo() = %q, %v", line, err)
	}

	if got, want := s.Source(), "knight.move(EAST);\n"; got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}

	s.Replace("a;\nb;\n")

	if s.Lines() != 2 {
		t.Errorf("Lines() after Replace = %d, want 2", s.Lines())
	}

	s.Wipe()

	if s.Source() != "" || s.Lines() != 0 {
		t.Errorf("Wipe() left %q", s.Source())
	}
}

func TestSessionLoad(t *testing.T) {
	s := newSession(t, "1-1")
	s.Append("knight.move(EAST);")

	if err := s.Load("3-4"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !s.Level().HasMage() {
		t.Error("Level() after Load(3-4) has no mage")
	}

	if s.Lines() != 1 {
		t.Errorf("Load() dropped the plan")
	}

	if got := s.World().Name; got != "World #3" {
		t.Errorf("World() = %q, want World #3", got)
	}

	if err := s.Load("9-9"); !errors.Is(err, level.ErrLevelNotFound) {
		t.Errorf("Load(9-9) error = %v, want %v", err, level.ErrLevelNotFound)
	}

	if s.Level().ID != "3-4" {
		t.Errorf("failed Load changed level to %s", s.Level().ID)
	}
}

func TestSessionTimeout(t *testing.T) {
	s := newSession(t, "1-1", WithTimeout(50*time.Millisecond))
	s.Append("while (not knight.isNextTo(EAST, dragon)) { }")

	res, _, err := s.Run(t.Context())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.State != game.ERROR {
		t.Errorf("Run() state = %v, want ERROR", res.State)
	}
}
