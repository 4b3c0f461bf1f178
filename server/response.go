package server

import (
	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/level"
)

// LevelSummary is an entry of the level list.
type LevelSummary struct {
	ID      string `json:"id"`
	World   string `json:"world"`
	Actions int    `json:"actions"`
	Mage    bool   `json:"mage"`
}

// PlayResponse is the outcome of a play.
type PlayResponse struct {
	game.Result

	Frames []game.Frame `json:"frames"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func summaries(c *level.Catalog) []LevelSummary {
	out := make([]LevelSummary, 0, c.Len())

	for _, w := range c.Worlds {
		for _, d := range w.Levels {
			out = append(out, LevelSummary{
				ID:      d.ID,
				World:   w.Name,
				Actions: d.Actions,
				Mage:    d.HasMage(),
			})
		}
	}

	return out
}
