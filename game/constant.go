package game

import (
	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/level"
)

// Direction is a compass direction passed to native methods.
type Direction int

// Directions.
const (
	NORTH Direction = iota
	EAST
	SOUTH
	WEST
)

func (d Direction) String() string {
	switch d {
	case NORTH:
		return "NORTH"
	case EAST:
		return "EAST"
	case SOUTH:
		return "SOUTH"
	case WEST:
		return "WEST"
	default:
		return "Direction(?)"
	}
}

// Next returns the position one step from p in direction d.
func (d Direction) Next(p level.Position) level.Position {
	switch d {
	case NORTH:
		p.Row--
	case SOUTH:
		p.Row++
	case EAST:
		p.Column++
	case WEST:
		p.Column--
	}

	return p
}

// Interactable is something isNextTo can look for.
type Interactable int

// Interactables.
const (
	DRAGON Interactable = iota
	ROAD
	WALL
	HOLE
)

func (i Interactable) String() string {
	switch i {
	case DRAGON:
		return "dragon"
	case ROAD:
		return "ROAD"
	case WALL:
		return "WALL"
	case HOLE:
		return "HOLE"
	default:
		return "Interactable(?)"
	}
}

// Tile returns the tile matched by i. It is false for DRAGON.
func (i Interactable) Tile() (level.Tile, bool) {
	switch i {
	case ROAD:
		return level.ROAD, true
	case WALL:
		return level.WALL, true
	case HOLE:
		return level.HOLE, true
	default:
		return 0, false
	}
}

// StandardEnv returns a new environment holding the direction and
// interactable constants every script can see.
func StandardEnv() *lang.Environment {
	env := lang.NewEnvironment()

	for _, d := range []Direction{NORTH, SOUTH, EAST, WEST} {
		env.Set(d.String(), &lang.GameObject{Content: d})
	}

	for _, i := range []Interactable{DRAGON, ROAD, WALL, HOLE} {
		env.Set(i.String(), &lang.GameObject{Content: i})
	}

	return env
}
