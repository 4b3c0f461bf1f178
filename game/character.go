package game

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/level"
)

// character is the state shared by the knight and the mage.
type character struct {
	game     *Game
	name     string
	position level.Position
	attack   int
}

func (c *character) snapshot() *Snapshot {
	return &Snapshot{Position: c.position, Attack: c.attack}
}

// Move steps one cell in a direction if the destination is walkable.
func (c *character) Move(args []lang.Object) lang.Object {
	content, errObj := gameObjects(1, args)
	if errObj != nil {
		return errObj
	}

	if d, ok := content[0].(Direction); ok {
		c.game.move(c, d)
	}

	return lang.NULL
}

// IsNextTo reports whether the adjacent cell in a direction holds the
// dragon or a tile of the given kind.
func (c *character) IsNextTo(args []lang.Object) lang.Object {
	content, errObj := gameObjects(2, args)
	if errObj != nil {
		return errObj
	}

	d, ok := content[0].(Direction)
	if !ok {
		return lang.NULL
	}

	what, ok := content[1].(Interactable)
	if !ok {
		return lang.NULL
	}

	return lang.NativeBoolean(c.game.isNextTo(c, d, what))
}

// Knight can move, probe and attack.
type Knight struct{ *character }

// Attack strikes the adjacent cell in a direction, spending all of the
// knight's attack.
func (k Knight) Attack(args []lang.Object) lang.Object {
	content, errObj := gameObjects(1, args)
	if errObj != nil {
		return errObj
	}

	if d, ok := content[0].(Direction); ok {
		k.game.attack(k.character, d)
	}

	return lang.NULL
}

// Mage can move, probe and lend its attack to the knight.
type Mage struct{ *character }

// Support gives the mage's attack to a knight on the adjacent cell in a
// direction.
func (m Mage) Support(args []lang.Object) lang.Object {
	content, errObj := gameObjects(1, args)
	if errObj != nil {
		return errObj
	}

	if d, ok := content[0].(Direction); ok {
		m.game.support(m.character, d)
	}

	return lang.NULL
}

// gameObjects checks that args holds exactly n game constants and returns
// their contents.
func gameObjects(n int, args []lang.Object) ([]any, *lang.ErrorObject) {
	if len(args) != n {
		return nil, lang.NewErrorObject(fmt.Sprintf("Expected %d arg, got %d", n, len(args)))
	}

	content := make([]any, n)

	for i, arg := range args {
		g, ok := arg.(*lang.GameObject)
		if !ok {
			return nil, lang.NewErrorObject(
				fmt.Sprintf("Arg[%d] must be of type %s.", i, lang.GameObjectObj))
		}

		content[i] = g.Content
	}

	return content, nil
}

func (c *character) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", c.name),
		slog.Int("row", c.position.Row),
		slog.Int("column", c.position.Column),
		slog.Int("attack", c.attack))
}
