package level

import (
	"fmt"
	"strings"
)

// Tile is the terrain of a single board cell.
type Tile int

// Tiles.
const (
	ROAD Tile = iota
	WALL
	HOLE
)

//nolint:gochecknoglobals
var tileNames = [...]string{ROAD: "ROAD", WALL: "WALL", HOLE: "HOLE"}

func (t Tile) String() string {
	if t >= 0 && int(t) < len(tileNames) {
		return tileNames[t]
	}

	return fmt.Sprintf("Tile(%d)", int(t))
}

// ParseTile parses a tile name, ignoring case.
func ParseTile(s string) (Tile, error) {
	for i, name := range tileNames {
		if strings.EqualFold(s, name) {
			return Tile(i), nil
		}
	}

	return 0, ErrUnknownTile.Wrap(fmt.Errorf("%q", s))
}

func (t Tile) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tile) UnmarshalText(b []byte) error {
	v, err := ParseTile(string(b))
	if err != nil {
		return err
	}

	*t = v

	return nil
}

// Statement names a language construct a level may exclude.
type Statement int

// Statements.
const (
	MOVE Statement = iota
	ATTACK
	SUPPORT
	IS_NEXT_TO //nolint:revive
	IF
	WHILE
	NOT
)

//nolint:gochecknoglobals
var statementNames = [...]string{
	MOVE:       "MOVE",
	ATTACK:     "ATTACK",
	SUPPORT:    "SUPPORT",
	IS_NEXT_TO: "IS_NEXT_TO",
	IF:         "IF",
	WHILE:      "WHILE",
	NOT:        "NOT",
}

func (s Statement) String() string {
	if s >= 0 && int(s) < len(statementNames) {
		return statementNames[s]
	}

	return fmt.Sprintf("Statement(%d)", int(s))
}

// ParseStatement parses a statement name, ignoring case.
func ParseStatement(s string) (Statement, error) {
	for i, name := range statementNames {
		if strings.EqualFold(s, name) {
			return Statement(i), nil
		}
	}

	return 0, ErrUnknownStatement.Wrap(fmt.Errorf("%q", s))
}

func (s Statement) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Statement) UnmarshalText(b []byte) error {
	v, err := ParseStatement(string(b))
	if err != nil {
		return err
	}

	*s = v

	return nil
}

// Position is a board cell. Row 0 is the northern edge and column 0 the
// western edge.
type Position struct {
	Row    int `json:"row"    yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Column) }
