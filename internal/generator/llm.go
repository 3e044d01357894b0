package generator

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/llm"
	"github.com/javiermolinar/aula/internal/timetable"
)

// Proposer returns timetable proposals for a conversation.
type Proposer interface {
	Propose(ctx context.Context, messages []llm.Message) (*llm.Proposal, error)
}

// LLM generates timetables from model proposals. Each proposal is applied
// slot by slot through the edit protocol; rejected slots and conflicts are
// sent back to the model until a clean timetable arrives or MaxAttempts runs out.
type LLM struct {
	proposer    Proposer
	maxAttempts int
	compact     bool
	logger      *zap.Logger
	idSource    func() string
}

// LLMOption configures an LLM generator.
type LLMOption func(*LLM)

// WithCompactPrompt selects the short prompt used for local models.
func WithCompactPrompt(compact bool) LLMOption {
	return func(g *LLM) { g.compact = compact }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) LLMOption {
	return func(g *LLM) { g.logger = logger }
}

// WithSlotIDs sets the id source used for generated slots.
func WithSlotIDs(fn func() string) LLMOption {
	return func(g *LLM) { g.idSource = fn }
}

// NewLLM creates an LLM generator.
func NewLLM(proposer Proposer, maxAttempts int, opts ...LLMOption) *LLM {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	g := &LLM{proposer: proposer, maxAttempts: maxAttempts, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements Generator. If the last attempt still has problems its
// timetable is returned with the problems as warnings. ErrGenerationFailed is
// returned only when no slot could be placed.
func (g *LLM) Generate(ctx context.Context, req Request) (*Result, error) {
	refs := req.References
	if refs == nil || len(refs.Courses) == 0 {
		return nil, fmt.Errorf("%w: no courses to schedule", ErrGenerationFailed)
	}
	days := req.WorkingDays
	if len(days) == 0 {
		days = timetable.DefaultWorkingDays
	}

	var editorOpts []timetable.EditorOption
	if g.idSource != nil {
		editorOpts = append(editorOpts, timetable.WithIDSource(g.idSource))
	}
	editor := timetable.NewEditor(refs, editorOpts...)

	messages := llm.InitialMessages(llm.ProposalRequest{
		References:  refs,
		WorkingDays: days,
		Notes:       req.Notes,
		Compact:     g.compact,
	})

	var (
		best     *Result
		problems []string
	)
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		proposal, err := g.proposer.Propose(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("LLM generation (attempt %d): %w", attempt, err)
		}

		result, rejected := apply(editor, proposal, days)
		result.Attempts = attempt
		problems = append(rejected, conflictProblems(result.Slots)...)
		for _, issue := range result.Issues {
			problems = append(problems, issue.Error())
		}

		g.logger.Info("timetable proposal evaluated",
			zap.Int("attempt", attempt),
			zap.Int("slots", len(result.Slots)),
			zap.Int("problems", len(problems)),
		)

		best = result
		if len(problems) == 0 {
			return result, nil
		}
		if attempt < g.maxAttempts {
			messages = llm.FeedbackMessages(messages, proposal, problems)
		}
	}

	if len(best.Slots) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, strings.Join(problems, "; "))
	}
	best.Warnings = append(best.Warnings, problems...)
	return best, nil
}

// apply adds every proposed slot through the editor. Slots the editor rejects
// or that fall outside the working days are reported and left out.
func apply(editor *timetable.Editor, proposal *llm.Proposal, days []int) (*Result, []string) {
	var (
		slots    []timetable.Slot
		issues   []timetable.SlotError
		rejected []string
	)
	for i, in := range proposal.Slots {
		if !slices.Contains(days, in.DayOfWeek) {
			rejected = append(rejected, fmt.Sprintf("slot %d: day %d is not a teaching day", i+1, in.DayOfWeek))
			continue
		}
		ch, err := editor.Add(slots, in)
		if err != nil {
			rejected = append(rejected, fmt.Sprintf("slot %d: %v", i+1, err))
			continue
		}
		slots, issues = ch.Slots, ch.Issues
	}
	if shadowed := timetable.BuildGrid(slots).Shadowed(); len(shadowed) > 0 {
		rejected = append(rejected, fmt.Sprintf("%d slots share a day and start time with another slot", len(shadowed)))
	}
	return &Result{Slots: slots, Issues: issues, Warnings: proposal.Warnings}, rejected
}

// conflictProblems lists each conflict once, from the slot that appears first.
func conflictProblems(slots []timetable.Slot) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range slots {
		for _, c := range s.Conflicts {
			key := pairKey(s.ID, c.WithSlotID) + string(c.Type)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, fmt.Sprintf("%s on %s %s-%s: %s",
				s.CourseName, timetable.DayName(s.DayOfWeek), s.StartTime, s.EndTime, c.Message))
		}
	}
	return out
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b + "|"
}
