package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/summary"
	"github.com/javiermolinar/aula/internal/timetable"
)

func (a *App) summaryCmd() *cobra.Command {
	var (
		days    string
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the weekly teaching load",
		Long: `Show classes and teaching time per day, teacher, classroom and group.

Example:
  aula summary
  aula summary --days mon,tue --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			shown := svc.WorkingDays()
			if days != "" {
				if shown, err = parseDays(days); err != nil {
					return err
				}
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			ws := summary.SummarizeWeek(snap.Slots, shown)
			text := ws.Text()
			out := cmd.OutOrStdout()
			fmt.Fprint(out, text)
			if d, ok := ws.Busiest(); ok {
				fmt.Fprintln(out, formatMuted(fmt.Sprintf("\nBusiest day: %s", timetable.DayName(d.Day))))
			}

			if copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Copied to clipboard"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "Days to include (comma-separated, default configured workdays)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the summary as plain text")
	return cmd
}
