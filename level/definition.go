package level

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/dragon/lang"
)

// DefaultGoal is the goal used when a definition does not set one.
const DefaultGoal = "dragon.hp == 0"

// Character places a playable character.
type Character struct {
	Position Position `json:"position" yaml:"position"`
}

// Placement is one or more candidate positions. In YAML it is written either
// as a single position mapping or as a sequence of them.
type Placement []Position

// UnmarshalYAML accepts a mapping or a sequence of mappings.
func (p *Placement) UnmarshalYAML(b []byte) error {
	var probe any
	if err := yaml.Unmarshal(b, &probe); err != nil {
		return err
	}

	if _, ok := probe.([]any); ok {
		var many []Position
		if err := yaml.Unmarshal(b, &many); err != nil {
			return err
		}

		*p = many

		return nil
	}

	var one Position
	if err := yaml.Unmarshal(b, &one); err != nil {
		return err
	}

	*p = Placement{one}

	return nil
}

// MarshalYAML writes a single position as a mapping.
func (p Placement) MarshalYAML() (any, error) {
	if len(p) == 1 {
		return p[0], nil
	}

	return []Position(p), nil
}

// Dragon places the dragon. When several positions are given one is chosen
// at random each time the level is played.
type Dragon struct {
	Position Placement `json:"position" yaml:"position"`
	HP       int       `json:"hp"       yaml:"hp"`
}

// Definition is a single level.
type Definition struct {
	ID       string      `json:"id"                 yaml:"-"`
	Tiles    [][]Tile    `json:"tiles"              yaml:"tiles"`
	Knight   Character   `json:"knight"             yaml:"knight"`
	Mage     *Character  `json:"mage,omitempty"     yaml:"mage,omitempty"`
	Dragon   Dragon      `json:"dragon"             yaml:"dragon"`
	Actions  int         `json:"actions"            yaml:"actions"`
	Excluded []Statement `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Extends  []string    `json:"extends,omitempty"  yaml:"extends,omitempty"`
	Help     string      `json:"help,omitempty"     yaml:"help,omitempty"`
	Solution string      `json:"-"                  yaml:"solution,omitempty"`
	Goal     string      `json:"goal,omitempty"     yaml:"goal,omitempty"`

	goal *vm.Program
}

// GoalEnv is the environment a goal expression is evaluated in.
type GoalEnv struct {
	Dragon  GoalDragon    `expr:"dragon"`
	Knight  GoalCharacter `expr:"knight"`
	Mage    GoalCharacter `expr:"mage"`
	HasMage bool          `expr:"hasMage"`
	Actions int           `expr:"actions"`
}

// GoalDragon is the dragon's final state.
type GoalDragon struct {
	HP     int `expr:"hp"`
	Row    int `expr:"row"`
	Column int `expr:"column"`
}

// GoalCharacter is a playable character's final state.
type GoalCharacter struct {
	Row    int `expr:"row"`
	Column int `expr:"column"`
	Attack int `expr:"attack"`
}

// HasMage reports whether the level places a mage.
func (d *Definition) HasMage() bool { return d.Mage != nil }

// Rows returns the number of board rows.
func (d *Definition) Rows() int { return len(d.Tiles) }

// Tile returns the tile at p. The second result is false if p is off the
// board.
func (d *Definition) Tile(p Position) (Tile, bool) {
	if p.Row < 0 || p.Row >= len(d.Tiles) {
		return WALL, false
	}

	if p.Column < 0 || p.Column >= len(d.Tiles[p.Row]) {
		return WALL, false
	}

	return d.Tiles[p.Row][p.Column], true
}

// Excludes reports whether s is excluded from this level.
func (d *Definition) Excludes(s Statement) bool {
	return slices.Contains(d.Excluded, s)
}

// CanExtend reports whether the level lists name as extendable.
func (d *Definition) CanExtend(name string) bool {
	return slices.Contains(d.Extends, name)
}

// GoalSource returns the goal expression, or [DefaultGoal].
func (d *Definition) GoalSource() string {
	if d.Goal == "" {
		return DefaultGoal
	}

	return d.Goal
}

// Reached evaluates the goal against env.
func (d *Definition) Reached(env GoalEnv) (bool, error) {
	program := d.goal
	if program == nil {
		// not validated; compile without caching so Reached stays read-only
		var err error
		if program, err = d.compileGoal(); err != nil {
			return false, err
		}
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, ErrInvalidGoal.Wrap(err).With(slog.String("level", d.ID))
	}

	ok, _ := out.(bool)

	return ok, nil
}

func (d *Definition) compileGoal() (*vm.Program, error) {
	program, err := expr.Compile(d.GoalSource(), expr.Env(GoalEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrInvalidGoal.Wrap(err).With(
			slog.String("level", d.ID),
			slog.String("goal", d.GoalSource()))
	}

	return program, nil
}

// Validate checks that the definition is playable and compiles its goal.
func (d *Definition) Validate(ctx context.Context) error {
	invalid := func(format string, args ...any) error {
		return ErrInvalidLevel.Wrap(fmt.Errorf(format, args...)).
			With(slog.String("level", d.ID))
	}

	if len(d.Tiles) == 0 {
		return invalid("no tiles")
	}

	for i, row := range d.Tiles {
		if len(row) == 0 {
			return invalid("row %d is empty", i)
		}
	}

	if d.Actions <= 0 {
		return invalid("actions must be positive, got %d", d.Actions)
	}

	if d.Dragon.HP <= 0 {
		return invalid("dragon hp must be positive, got %d", d.Dragon.HP)
	}

	if len(d.Dragon.Position) == 0 {
		return invalid("dragon has no position")
	}

	check := func(who string, p Position) error {
		tile, ok := d.Tile(p)
		if !ok {
			return invalid("%s at %s is off the board", who, p)
		}

		if tile == HOLE {
			return invalid("%s at %s is over a hole", who, p)
		}

		return nil
	}

	if err := check("knight", d.Knight.Position); err != nil {
		return err
	}

	if d.Mage != nil {
		if err := check("mage", d.Mage.Position); err != nil {
			return err
		}
	}

	for _, p := range d.Dragon.Position {
		if err := check("dragon", p); err != nil {
			return err
		}
	}

	if d.Solution != "" {
		if _, err := lang.ParseString(ctx, d.Solution); err != nil {
			return invalid("solution: %w", err)
		}
	}

	program, err := d.compileGoal()
	if err != nil {
		return err
	}

	d.goal = program

	return nil
}
