package level

import "github.com/ardnew/dragon/lang"

// Predefined errors (sentinel values).
//
//nolint:gochecknoglobals
var (
	ErrUnknownTile      = lang.NewError("unknown tile")
	ErrUnknownStatement = lang.NewError("unknown statement")
	ErrInvalidLevel     = lang.NewError("invalid level")
	ErrInvalidGoal      = lang.NewError("invalid goal")
	ErrLevelNotFound    = lang.NewError("level not found")
	ErrReadCatalog      = lang.NewError("failed to read catalog")
)
