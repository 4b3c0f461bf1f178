package repl

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/log"
)

func init() { color.NoColor = true }

func newTestModel(t *testing.T, id string) model {
	t.Helper()

	return newModel(t.Context(), newSession(t, id), NewHistory(""), log.Logger{})
}

func typeLine(m model, mode inputMode, line string) model {
	if m.mode != mode {
		m, _ = m.switchToMode(mode)
	}

	m.input.SetValue(line)
	m, _ = m.executeInput()

	return m
}

func TestModelPlanLines(t *testing.T) {
	m := newTestModel(t, "1-1")

	m = typeLine(m, modePlan, "knight.move(EAST);")
	m = typeLine(m, modePlan, "knight.attack(EAST);")

	if got := m.session.Lines(); got != 2 {
		t.Fatalf("Lines() = %d, want 2", got)
	}

	if got := m.history.Len(); got != 2 {
		t.Errorf("history.Len() = %d, want 2", got)
	}

	m = typeLine(m, modeCtrl, "undo")

	if got := m.session.Source(); got != "knight.move(EAST);\n" {
		t.Errorf("Source() after undo = %q", got)
	}

	m = typeLine(m, modeCtrl, "wipe")

	if m.session.Lines() != 0 {
		t.Errorf("Lines() after wipe = %d, want 0", m.session.Lines())
	}
}

func TestModelRun(t *testing.T) {
	m := newTestModel(t, "1-1")

	m = typeLine(m, modePlan, "knight.move(EAST);")
	m = typeLine(m, modePlan, "knight.attack(EAST);")
	m = typeLine(m, modeCtrl, "run")

	if !m.running {
		t.Fatal("run did not start")
	}

	res, frames, err := m.session.Run(t.Context())

	next, _ := m.Update(runDoneMsg{res: res, frames: frames, err: err})
	m = next.(model)

	if m.running {
		t.Error("running still set after runDoneMsg")
	}

	if res.State != game.WON {
		t.Errorf("state = %v, want WON", res.State)
	}

	out := m.runView(runDoneMsg{res: res, frames: frames})
	if !strings.Contains(out, "WON 1-1") {
		t.Errorf("runView() = %q, want verdict", out)
	}
}

func TestModelLevelCommand(t *testing.T) {
	m := newTestModel(t, "1-1")

	m = typeLine(m, modeCtrl, "level 3-4")

	if got := m.session.Level().ID; got != "3-4" {
		t.Errorf("level = %s, want 3-4", got)
	}

	m = typeLine(m, modeCtrl, "level nope")

	if got := m.session.Level().ID; got != "3-4" {
		t.Errorf("level after bad switch = %s, want 3-4", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, "1-1")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if !next.(model).quitting || cmd == nil {
		t.Error("Ctrl+D on empty input did not quit")
	}
}
