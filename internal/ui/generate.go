package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/generator"
	"github.com/javiermolinar/aula/internal/llm"
)

// newGenerator builds the generator selected by cfg.Generator.Mode.
func newGenerator(cfg *config.Config, logger *zap.Logger) generator.Generator {
	if cfg.Generator.Mode == "llm" {
		return &llmGenerator{cfg: cfg.LLM, maxAttempts: cfg.Generator.MaxAttempts, logger: logger}
	}
	return generator.NewMock(cfg.GenerationDelay(), cfg.Generator.SuccessRate)
}

// llmGenerator connects to the provider when a generation starts, so commands
// that never generate do not need provider credentials.
type llmGenerator struct {
	cfg         config.LLMConfig
	maxAttempts int
	logger      *zap.Logger
}

func (g *llmGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	client, err := llm.NewClient(ctx, g.cfg.Provider, g.cfg.Model, g.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	gen := generator.NewLLM(llm.NewProposer(client), g.maxAttempts,
		generator.WithCompactPrompt(llm.IsLocal(g.cfg.Provider)),
		generator.WithLogger(g.logger),
	)
	return gen.Generate(ctx, req)
}

func (a *App) generateCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new timetable",
		Long: `Replace the stored timetable with a generated one.

The generator is chosen by [generator] mode in the config: "mock" places the
demo timetable after a delay and needs the demo courses, teachers and classrooms
(see "aula seed"), "llm" asks the configured model and retries with conflict
feedback. Courses, teachers, classrooms and students are never changed. On
failure the stored timetable is left unchanged.

Example:
  aula generate
  aula generate --notes "no classes after 16:00 on Friday"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatMuted("Generating timetable..."))

			res, err := svc.Generate(cmd.Context(), notes)
			if err != nil {
				if errors.Is(err, generator.ErrGenerationFailed) {
					return fmt.Errorf("%w (stored timetable unchanged)", err)
				}
				return err
			}
			printGenerateResult(out, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Extra constraints passed to the generator")
	return cmd
}

func printGenerateResult(out io.Writer, res *generator.Result) {
	fmt.Fprintf(out, "Generated %s after %d attempt(s)\n",
		formatStats(fmt.Sprintf("%d classes", len(res.Slots))), res.Attempts)
	if n := res.ConflictCount(); n > 0 {
		fmt.Fprintln(out, formatConflict(fmt.Sprintf("%d conflicting pair(s) remain", n)))
	}
	for _, issue := range res.Issues {
		fmt.Fprintln(out, formatWarning("  ! "+issue.Error()))
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(out, formatWarning("  ! "+w))
	}
}

func (a *App) seedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo university data",
		Long: `Replace all courses, teachers, classrooms, students and slots with the
built-in demo data.

Example:
  aula seed --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if len(snap.Slots) > 0 && !force {
				return fmt.Errorf("timetable has %d classes; use --force to replace them", len(snap.Slots))
			}
			if err := svc.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Demo data loaded")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace existing data")
	return cmd
}
