package repl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/level"
	"github.com/ardnew/dragon/log"
)

// Session is the state behind the REPL: a level, the game being played on
// it, and the battle plan typed so far.
type Session struct {
	catalog *level.Catalog
	game    *game.Game
	lines   []string
	board   game.Frame
	logger  log.Logger
	timeout time.Duration
	opts    []game.Option
}

// Option configures a [Session].
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithTimeout bounds every run of the battle plan. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithGameOptions passes opts to every game the session creates.
func WithGameOptions(opts ...game.Option) Option {
	return func(s *Session) { s.opts = append(s.opts, opts...) }
}

// NewSession starts a session on level id of catalog.
func NewSession(catalog *level.Catalog, id string, opts ...Option) (*Session, error) {
	s := &Session{catalog: catalog}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.opts = append([]game.Option{game.WithLogger(s.logger)}, s.opts...)

	if err := s.Load(id); err != nil {
		return nil, err
	}

	return s, nil
}

// Load switches to level id. The battle plan is kept.
func (s *Session) Load(id string) error {
	def, err := s.catalog.Lookup(id)
	if err != nil {
		return err
	}

	g, err := game.New(def, s.opts...)
	if err != nil {
		return err
	}

	s.game = g
	s.drain()

	s.logger.Debug("level loaded", slog.String("level", def.ID))

	return nil
}

// Level returns the current level.
func (s *Session) Level() *level.Definition { return s.game.Definition() }

// World returns the world containing the current level.
func (s *Session) World() *level.World {
	w, err := s.catalog.WorldOf(s.Level().ID)
	if err != nil {
		return &level.World{}
	}

	return w
}

// Append adds a line to the battle plan.
func (s *Session) Append(line string) { s.lines = append(s.lines, line) }

// Undo removes and returns the last line of the battle plan.
func (s *Session) Undo() (string, error) {
	if len(s.lines) == 0 {
		return "", ErrNothingUndo
	}

	last := s.lines[len(s.lines)-1]
	s.lines = s.lines[:len(s.lines)-1]

	return last, nil
}

// Wipe discards the battle plan.
func (s *Session) Wipe() { s.lines = nil }

// Replace sets the battle plan to src.
func (s *Session) Replace(src string) {
	src = strings.TrimRight(src, "\n")
	if src == "" {
		s.lines = nil

		return
	}

	s.lines = strings.Split(src, "\n")
}

// Source returns the battle plan.
func (s *Session) Source() string {
	if len(s.lines) == 0 {
		return ""
	}

	return strings.Join(s.lines, "\n") + "\n"
}

// Lines returns the number of lines in the battle plan.
func (s *Session) Lines() int { return len(s.lines) }

// Run plays the battle plan. The level state carries over from previous runs
// until [Session.Reset].
func (s *Session) Run(ctx context.Context) (game.Result, []game.Frame, error) {
	if strings.TrimSpace(s.Source()) == "" {
		return game.Result{}, nil, ErrEmptyPlan
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.game.Play(ctx, s.Source())
	if err != nil {
		return game.Result{}, nil, err
	}

	return res, s.drain(), nil
}

// Reset restores the level to its initial state and returns the frame
// showing it.
func (s *Session) Reset() (game.Frame, error) {
	if err := s.game.Reset(); err != nil {
		return game.Frame{}, err
	}

	s.drain()

	return s.board, nil
}

// Board returns the most recent board frame.
func (s *Session) Board() game.Frame { return s.board }

// drain empties the render queue and remembers its last board frame.
func (s *Session) drain() []game.Frame {
	frames := s.game.Frames()

	for _, f := range frames {
		if f.Kind == game.LEVEL {
			s.board = f
		}
	}

	return frames
}

// program parses the battle plan, returning nil if it does not parse.
func (s *Session) program() *lang.Program {
	p, err := lang.ParseString(context.Background(), s.Source())
	if err != nil {
		return nil
	}

	return p
}
