package game

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/tevino/abool/v2"

	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/level"
)

// Death dialog texts.
const (
	TooManyActions = "You used too many actions!"
	Erroneous      = "Your battle plan is erroneous!"
	NotSlain       = "You didn't slay the dragon!"
	Burned         = "The dragon woke up and burned you!"
)

// Names the characters are bound to in a script.
const (
	KnightName = "knight"
	MageName   = "mage"
)

// Every character starts with this attack.
const initialAttack = 1

// Game is the mutable state of one level.
//
// A Game is safe for concurrent use, but only one Play may run at a time;
// a second concurrent Play returns [ErrBusy].
type Game struct {
	def   *level.Definition
	opts  options
	busy  *abool.AtomicBool
	queue *RenderQueue

	mu     sync.Mutex
	knight *character
	mage   *character
	dragon dragon
}

type dragon struct {
	position level.Position
	placed   bool
	hp       int
}

// New returns a game for def in its initial state. The initial board is
// pushed onto the render queue.
func New(def *level.Definition, opts ...Option) (*Game, error) {
	if def == nil {
		return nil, ErrNoLevel
	}

	g := &Game{
		def:   def,
		opts:  makeOptions(opts...),
		busy:  abool.NewBool(false),
		queue: NewRenderQueue(),
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.reset()

	return g, nil
}

// Definition returns the level being played.
func (g *Game) Definition() *level.Definition { return g.def }

// Queue returns the game's render queue.
func (g *Game) Queue() *RenderQueue { return g.queue }

// Frames drains the render queue.
func (g *Game) Frames() []Frame { return g.queue.Drain() }

// Reset restores the initial level state and pushes the initial board.
// It returns [ErrBusy] while a Play is running.
func (g *Game) Reset() error {
	if !g.busy.SetToIf(false, true) {
		return ErrBusy
	}
	defer g.busy.UnSet()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.reset()

	return nil
}

func (g *Game) reset() {
	g.knight = &character{
		game:     g,
		name:     KnightName,
		position: g.def.Knight.Position,
		attack:   initialAttack,
	}

	g.mage = nil
	if g.def.Mage != nil {
		g.mage = &character{
			game:     g,
			name:     MageName,
			position: g.def.Mage.Position,
			attack:   initialAttack,
		}
	}

	g.dragon = dragon{hp: g.def.Dragon.HP}
	if len(g.def.Dragon.Position) == 1 {
		g.dragon.position = g.def.Dragon.Position[0]
		g.dragon.placed = true
	}

	g.render(nil, nil)
}

// ActionCount counts the actions written in script: every literal
// occurrence of "move(", "attack(" and "support(".
func ActionCount(script string) int {
	return strings.Count(script, MethodCall(lang.MethodMove)) +
		strings.Count(script, MethodCall(lang.MethodAttack)) +
		strings.Count(script, MethodCall(lang.MethodSupport))
}

// MethodCall returns the text that opens a call of method.
func MethodCall(method string) string { return method + "(" }

// Play runs script against the current state and reports the outcome.
//
// Script failures are reported in the Result; the error is non-nil only if
// the game is busy.
func (g *Game) Play(ctx context.Context, script string) (Result, error) {
	if !g.busy.SetToIf(false, true) {
		return Result{}, ErrBusy
	}
	defer g.busy.UnSet()

	g.mu.Lock()
	defer g.mu.Unlock()

	res := g.play(ctx, script)

	g.opts.logger.TraceContext(ctx, "play complete",
		slog.String("level", g.def.ID),
		slog.String("state", res.State.String()),
		slog.Int("actions", res.Actions))

	return res, nil
}

func (g *Game) play(ctx context.Context, script string) Result {
	res := Result{Actions: ActionCount(script)}

	if res.Actions > g.def.Actions {
		return g.die(res, TOO_MANY_ACTIONS, TooManyActions)
	}

	g.placeDragon()

	program, err := lang.ParseString(ctx, script, g.opts.langOptions()...)
	if err != nil {
		var perr *lang.ParseError
		if errors.As(err, &perr) {
			return g.die(res, ERROR, strings.Join(perr.Messages(), "\n"))
		}

		return g.die(res, ERROR, err.Error())
	}

	if g.opts.strict {
		if msg := g.violation(program); msg != "" {
			return g.die(res, ERROR, msg)
		}
	}

	std := StandardEnv()
	env := lang.NewEnclosedEnvironment(std)
	env.Set(KnightName, lang.NewInstance(Knight{g.knight}, std))

	if g.mage != nil {
		env.Set(MageName, lang.NewInstance(Mage{g.mage}, std))
	}

	out := lang.NewEvaluator(g.opts.langOptions()...).Eval(ctx, program, env)
	if e, ok := out.(*lang.ErrorObject); ok {
		return g.die(res, ERROR, Erroneous+"\n\nERROR: "+e.Message)
	}

	won, err := g.def.Reached(g.goalEnv(res.Actions))
	if err != nil {
		return g.die(res, ERROR, err.Error())
	}

	if !won {
		return g.die(res, LOST, NotSlain)
	}

	res.State = WON

	return res
}

func (g *Game) die(res Result, state State, reason string) Result {
	res.State = state
	res.Message = reason

	g.queue.Push(Frame{Kind: DIALOG, Dialog: reason + "\n\n" + Burned})

	return res
}

func (g *Game) placeDragon() {
	candidates := g.def.Dragon.Position
	if len(candidates) < 2 {
		return
	}

	g.dragon.position = candidates[g.opts.rng.IntN(len(candidates))]
	g.dragon.placed = true

	g.opts.logger.Trace("dragon placed",
		slog.String("level", g.def.ID),
		slog.String("position", g.dragon.position.String()))
}

func (g *Game) goalEnv(actions int) level.GoalEnv {
	env := level.GoalEnv{
		Dragon: level.GoalDragon{
			HP:     g.dragon.hp,
			Row:    g.dragon.position.Row,
			Column: g.dragon.position.Column,
		},
		Knight:  goalCharacter(g.knight),
		HasMage: g.mage != nil,
		Actions: actions,
	}

	if g.mage != nil {
		env.Mage = goalCharacter(g.mage)
	}

	return env
}

func goalCharacter(c *character) level.GoalCharacter {
	return level.GoalCharacter{
		Row:    c.position.Row,
		Column: c.position.Column,
		Attack: c.attack,
	}
}

// walkable reports whether a character may step onto p: any tile on the
// board except a hole. Walls only matter to isNextTo.
func (g *Game) walkable(p level.Position) bool {
	tile, ok := g.def.Tile(p)

	return ok && tile != level.HOLE
}

func (g *Game) move(c *character, d Direction) {
	if next := d.Next(c.position); g.walkable(next) {
		c.position = next
	}

	g.opts.logger.Trace("move", slog.String("direction", d.String()), slog.Any("character", c))
	g.render(nil, nil)
}

func (g *Game) attack(c *character, d Direction) {
	target := d.Next(c.position)
	if g.dragonAt(target) {
		g.dragon.hp -= c.attack
	}

	c.attack = 0

	g.opts.logger.Trace("attack",
		slog.String("direction", d.String()),
		slog.Int("dragon_hp", g.dragon.hp),
		slog.Any("character", c))
	g.render(&target, nil)
}

func (g *Game) isNextTo(c *character, d Direction, what Interactable) bool {
	probe := d.Next(c.position)
	g.render(nil, &probe)

	if what == DRAGON {
		return g.dragonAt(probe)
	}

	want, _ := what.Tile()
	tile, _ := g.def.Tile(probe)

	return tile == want
}

func (g *Game) support(m *character, d Direction) {
	if d.Next(m.position) == g.knight.position {
		g.knight.attack += m.attack
		m.attack = 0
	}

	g.opts.logger.Trace("support",
		slog.String("direction", d.String()),
		slog.Any("knight", g.knight),
		slog.Any("mage", m))
	g.render(nil, nil)
}

func (g *Game) dragonAt(p level.Position) bool {
	return g.dragon.placed && g.dragon.position == p
}

func (g *Game) render(attack, probe *level.Position) {
	f := Frame{
		Kind:   LEVEL,
		Tiles:  g.def.Tiles,
		Knight: g.knight.snapshot(),
		Dragon: &DragonSnapshot{HP: g.dragon.hp},
		Attack: attack,
		Probe:  probe,
	}

	if g.mage != nil {
		f.Mage = g.mage.snapshot()
	}

	if g.dragon.placed {
		f.Dragon.Positions = []level.Position{g.dragon.position}
	} else {
		f.Dragon.Positions = slices.Clone(g.def.Dragon.Position)
	}

	g.queue.Push(f)
}
