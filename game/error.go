package game

import "github.com/ardnew/dragon/lang"

// Predefined errors (sentinel values).
//
//nolint:gochecknoglobals
var (
	ErrBusy         = lang.NewError("game is already playing")
	ErrNoLevel      = lang.NewError("no level definition")
	ErrUnknownState = lang.NewError("unknown state")

	ErrUnknownFrameKind = lang.NewError("unknown frame kind")
)
