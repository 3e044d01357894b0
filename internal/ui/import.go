package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/export"
	"github.com/javiermolinar/aula/internal/timetable"
)

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import classes from an iCalendar file",
		Long: `Import classes from an iCalendar file.

Events are matched to courses by code or name in the summary, and to
classrooms by the location. Each event goes through the same checks as
"aula slot add"; events that cannot be matched or placed are skipped.

Example:
  aula import exported.ics --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("file does not exist: %s", path)
				}
				return fmt.Errorf("checking file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("path is a directory: %s", path)
			}

			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			refs, err := svc.References(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			inputs, skipped, err := export.ParseICS(f, refs, time.Local)
			_ = f.Close()
			if err != nil {
				return err
			}

			res, err := svc.Import(cmd.Context(), inputs, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Imported"
			if dryRun {
				verb = "Would import"
			}
			fmt.Fprintf(out, "%s %d of %d event(s) from %s\n", verb, res.Added, len(inputs)+len(skipped), path)
			for _, s := range skipped {
				fmt.Fprintln(out, formatWarning("  skipped: "+s))
			}
			for _, r := range res.Rejected {
				fmt.Fprintln(out, formatWarning("  rejected: "+r))
			}
			if n := timetable.ConflictPairs(res.Change.Slots); n > 0 {
				fmt.Fprintln(out, formatConflict(fmt.Sprintf("%d conflicting pair(s) in the resulting timetable", n)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be imported without saving")
	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
