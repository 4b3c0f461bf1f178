package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/dragon/store"
)

// digestWidth is the number of digest characters shown in the history table.
const digestWidth = 12

// History shows or clears recorded plays.
type History struct {
	Limit int    `default:"20" help:"Maximum number of records to show (0 for all)" short:"n"`
	Level string `help:"Only show plays of this level"                              short:"l"`
	Clear bool   `help:"Delete all recorded plays"`
}

// Run executes the history command.
func (h *History) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	st, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	out := streamsFrom(ctx).Out

	if h.Clear {
		n, err := st.Clear(ctx)
		if err != nil {
			return err
		}

		loggerFrom(ctx, ComponentCLI).DebugContext(ctx, "history cleared", slog.Int64("records", n))
		fmt.Fprintf(out, "cleared %d record(s)\n", n)

		return nil
	}

	records, err := st.List(ctx, h.Level, h.Limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "no recorded plays")

		return nil
	}

	fmt.Fprintln(out, historyTable(records))

	return nil
}

func historyTable(records []store.Record) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("TIME", "LEVEL", "STATE", "ACTIONS", "SCRIPT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}

			return cell
		})

	for _, r := range records {
		digest := r.Digest
		if len(digest) > digestWidth {
			digest = digest[:digestWidth]
		}

		t.Row(
			r.CreatedAt.Local().Format(time.DateTime),
			r.Level,
			r.State,
			strconv.Itoa(r.Actions),
			digest,
		)
	}

	return t.String()
}
