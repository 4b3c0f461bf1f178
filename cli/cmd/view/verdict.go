package view

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ardnew/dragon/game"
)

//nolint:gochecknoglobals
var (
	wonColor  = color.New(color.FgGreen, color.Bold)
	lostColor = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed)
	faint     = color.New(color.Faint)
)

// Verdict writes a one-line summary of res for a level.
func Verdict(w io.Writer, id string, res game.Result, limit int) {
	c := lostColor
	if res.State == game.WON {
		c = wonColor
	}

	fmt.Fprintf(w, "%s %s %s\n",
		c.Sprint(res.State),
		id,
		faint.Sprintf("(%d/%d actions)", res.Actions, limit))
}

// OK writes a success line for name.
func OK(w io.Writer, name string) {
	fmt.Fprintf(w, "%s %s\n", okColor.Sprint("ok"), name)
}

// Fail writes a failure line for name followed by detail.
func Fail(w io.Writer, name, detail string) {
	fmt.Fprintf(w, "%s %s\n%s", errColor.Sprint("FAIL"), name, detail)
}
