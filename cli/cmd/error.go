package cmd

import "github.com/ardnew/dragon/lang"

// Predefined errors (sentinel values).
//
//nolint:gochecknoglobals
var (
	ErrReadSource  = lang.NewError("read source")
	ErrWriteSource = lang.NewError("write source")
	ErrCheck       = lang.NewError("syntax errors found")
	ErrDefeated    = lang.NewError("the dragon was not slain")
	ErrNoSolution  = lang.NewError("level has no reference solution")
	ErrYAMLMarshal = lang.NewError("marshal YAML")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")

	ErrUnknownComponent = lang.NewError("unknown log component")
)
