package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dragon/cli/cmd/view"
	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/log"
)

// editDoneMsg is sent when editing completes; source is nil if the plan is
// unchanged.
type editDoneMsg struct{ source *string }

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-parse error.
type editErrorMsg struct{ err error }

// runDoneMsg carries the outcome of running the battle plan.
type runDoneMsg struct {
	res    game.Result
	frames []game.Frame
	err    error
}

const (
	planPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  run          Play the battle plan
  show         Print the battle plan
  undo         Remove the last line of the battle plan
  wipe         Discard the battle plan
  edit         Edit the battle plan in $EDITOR
  fmt          Reformat the battle plan
  reset        Restore the level to its initial state
  board        Print the current board
  level ID     Switch to another level
  help         Print this cruft
  clear        Clear screen
  quit         Exit REPL

Usage:
  Type a line of the battle plan and press Enter to append it
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between plan and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modePlan inputMode = iota
	modeCtrl
)

// Styles.
//
//nolint:gochecknoglobals
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the plan line echo with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(planPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and input
// styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *Session
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	running      bool          // whether the battle plan is being played
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	planText     string
	planCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL on session. Line history is kept in historyPath; an
// empty path keeps it in memory.
func Run(
	ctx context.Context,
	session *Session,
	historyPath string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", historyPath),
		slog.String("level", session.Level().ID),
	)

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	m := newModel(ctx, session, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(planPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    session,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modePlan,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Sequence(tea.Println(m.boardView()), textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(planPrompt) - 2

		return m, nil

	case runDoneMsg:
		m.running = false

		return m, tea.Println(m.runView(msg))

	case editDoneMsg:
		if msg.source == nil {
			return m, tea.Println(hintStyle.Render("plan unchanged"))
		}

		m.session.Replace(*msg.source)

		return m, tea.Println(resultStyle.Render(
			fmt.Sprintf("plan updated (%d lines)", m.session.Lines())))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.running:
		b.WriteString(hintStyle.Render("running..."))

	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := fmt.Sprintf("%s: %d line(s) planned; press Esc for commands",
			m.session.Level().ID, m.session.Lines())
		if m.mode == modeCtrl {
			hint = "Type: run, show, undo, board, help, quit (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case call.inCall && m.mode == modePlan:
		if sig, params := m.session.signature(call.name); sig != "" {
			b.WriteString(renderSignatureHint(sig, params, call.argIndex))
		} else {
			b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
		}

	default:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.historyPrev(false)

	case tea.KeyDown:
		return m.historyNext(false)

	case tea.KeyShiftUp:
		return m.historyPrev(true)

	case tea.KeyShiftDown:
		return m.historyNext(true)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modePlan {
			return m.switchToMode(modeCtrl)
		}

		return m.switchToMode(modePlan)

	case tea.KeyRunes:
		// Space breaks tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step (1 or -1).
func (m model) cycle(step int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals it.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	raw := m.input.Value()
	input := strings.TrimSpace(raw)

	if input == "" && m.mode == modeCtrl {
		return m, nil
	}

	m.planText, m.planCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	refreshMatches(&m, false)

	if err := m.history.Write(input, m.mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write failed", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

		return m.executeCommand(input)
	}

	m.session.Append(raw)

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl plan line",
		slog.Int("line", m.session.Lines()),
		slog.String("input", raw),
	)

	return m, tea.Println(formatCommand(raw))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatCtrlCommand(input))
	say := func(s string) (model, tea.Cmd) {
		return m, tea.Sequence(echo, tea.Println(s))
	}

	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return say(helpMessage())

	case "c", "clear":
		return m, tea.ClearScreen

	case "r", "run":
		if m.running {
			return say(errorStyle.Render("error: " + game.ErrBusy.Error()))
		}

		m.running = true
		session, ctx := m.session, m.ctxFunc()

		return m, tea.Sequence(echo, func() tea.Msg {
			res, frames, err := session.Run(ctx)

			return runDoneMsg{res: res, frames: frames, err: err}
		})

	case "s", "show":
		return say(m.planView())

	case "u", "undo":
		line, err := m.session.Undo()
		if err != nil {
			return say(errorStyle.Render("error: " + err.Error()))
		}

		return say(hintStyle.Render("removed: " + line))

	case "w", "wipe":
		m.session.Wipe()

		return say(hintStyle.Render("plan discarded"))

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	case "f", "fmt":
		program, err := lang.ParseString(m.ctxFunc(), m.session.Source())
		if err != nil {
			return say(errorStyle.Render(err.Error()))
		}

		m.session.Replace(lang.FormatString(program))

		return say(m.planView())

	case "reset":
		if _, err := m.session.Reset(); err != nil {
			return say(errorStyle.Render("error: " + err.Error()))
		}

		return say(m.boardView())

	case "b", "board":
		return say(m.boardView())

	case "l", "level":
		if len(args) != 1 {
			return say(errorStyle.Render("usage: level ID"))
		}

		if m.running {
			return say(errorStyle.Render("error: " + game.ErrBusy.Error()))
		}

		if err := m.session.Load(args[0]); err != nil {
			return say(errorStyle.Render("error: " + err.Error()))
		}

		return say(m.boardView())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		source:  m.session.Source(),
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		return editDoneMsg{source: cmd.edited}
	})
}

func (m model) historyPrev(sameMode bool) (model, tea.Cmd) {
	for i := m.historyIdx - 1; i >= 0; i-- {
		entry, err := m.history.GetEntry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		return m.recall(i, entry), nil
	}

	return m, nil
}

func (m model) historyNext(sameMode bool) (model, tea.Cmd) {
	for i := m.historyIdx + 1; i < m.history.Len(); i++ {
		entry, err := m.history.GetEntry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		return m.recall(i, entry), nil
	}

	// Reached end of history, clear input
	if m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// recall shows history entry i, switching mode if needed.
func (m model) recall(i int, entry HistoryEntry) model {
	if m.mode != entry.Mode {
		m, _ = m.switchToMode(entry.Mode)
	}

	m.historyIdx = i
	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// switchToMode switches to the specified mode, preserving input state.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modePlan {
		m.planText = m.input.Value()
		m.planCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modePlan {
		m.input.Prompt = promptStyle.Render(planPrompt)
		m.input.SetValue(m.planText)
		m.input.SetCursor(m.planCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}

func (m model) boardView() string {
	return view.Board(m.session.Board(), m.session.World().Color)
}

func (m model) planView() string {
	if m.session.Lines() == 0 {
		return hintStyle.Render("(empty plan)")
	}

	lines := strings.Split(strings.TrimRight(m.session.Source(), "\n"), "\n")
	width := len(strconv.Itoa(len(lines)))

	var b strings.Builder

	for i, line := range lines {
		fmt.Fprintf(&b, "%s %s\n",
			hintStyle.Render(fmt.Sprintf("%*d", width, i+1)), line)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m model) runView(msg runDoneMsg) string {
	if msg.err != nil {
		return errorStyle.Render("error: " + msg.err.Error())
	}

	var b strings.Builder

	for _, f := range msg.frames {
		b.WriteString(view.Frame(f))
		b.WriteString("\n")
	}

	view.Verdict(&b, m.session.Level().ID, msg.res, m.session.Level().Actions)

	return strings.TrimRight(b.String(), "\n")
}
