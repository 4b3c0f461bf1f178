package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/dragon/cli/cmd/view"
	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/level"
)

//nolint:gochecknoglobals
var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Levels lists the catalog or shows a single level.
type Levels struct {
	ID string `arg:"" help:"Level ID to show" optional:""`
}

// Run executes the levels command.
func (l *Levels) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	catalog, err := catalogFrom(ctx)
	if err != nil {
		return err
	}

	out := streamsFrom(ctx).Out

	if l.ID == "" {
		listLevels(out, catalog)

		return nil
	}

	return showLevel(out, catalog, l.ID)
}

func listLevels(w io.Writer, catalog *level.Catalog) {
	for _, world := range catalog.Worlds {
		title := labelStyle
		if world.Color != "" {
			title = title.Foreground(lipgloss.Color(world.Color))
		}

		fmt.Fprintln(w, title.Render(world.Name))

		for _, def := range world.Levels {
			var extra []string
			if def.HasMage() {
				extra = append(extra, "mage")
			}

			if len(def.Excluded) > 0 {
				extra = append(extra, fmt.Sprintf("%d excluded", len(def.Excluded)))
			}

			line := fmt.Sprintf("  %-5s %2d actions", def.ID, def.Actions)
			if len(extra) > 0 {
				line += faintStyle.Render("  " + strings.Join(extra, ", "))
			}

			fmt.Fprintln(w, line)
		}
	}
}

func showLevel(w io.Writer, catalog *level.Catalog, id string) error {
	def, err := catalog.Lookup(id)
	if err != nil {
		return err
	}

	world, err := catalog.WorldOf(id)
	if err != nil {
		return err
	}

	g, err := game.New(def)
	if err != nil {
		return err
	}

	if frames := g.Frames(); len(frames) > 0 {
		fmt.Fprintln(w, view.Board(frames[0], world.Color))
	}

	field := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(name+":"), value)
	}

	field("level", def.ID+" "+faintStyle.Render(world.Name))
	field("actions", fmt.Sprint(def.Actions))
	field("goal", def.GoalSource())

	if len(def.Dragon.Position) > 1 {
		field("dragon", fmt.Sprintf("one of %d positions", len(def.Dragon.Position)))
	}

	if len(def.Excluded) > 0 {
		names := make([]string, len(def.Excluded))
		for i, s := range def.Excluded {
			names[i] = s.String()
		}

		field("excluded", strings.Join(names, ", "))
	}

	if len(def.Extends) > 0 {
		field("extends", strings.Join(def.Extends, ", "))
	}

	if help := strings.TrimSpace(def.Help); help != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, help)
	}

	return nil
}
