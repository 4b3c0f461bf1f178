package store

import "github.com/ardnew/dragon/lang"

// Predefined errors (sentinel values).
//
//nolint:gochecknoglobals
var (
	ErrOpen  = lang.NewError("failed to open history")
	ErrQuery = lang.NewError("history query failed")
)
