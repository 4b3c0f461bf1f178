package repl

import "github.com/ardnew/dragon/lang"

// Sentinel errors.
//
//nolint:gochecknoglobals
var (
	ErrOutOfBounds  = lang.NewError("index out of range")
	ErrEditDeclined = lang.NewError("decline edit")
	ErrEmptyPlan    = lang.NewError("battle plan is empty")
	ErrNothingUndo  = lang.NewError("nothing to undo")
)
