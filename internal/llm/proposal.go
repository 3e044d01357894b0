package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/javiermolinar/aula/internal/timetable"
)

const systemPrompt = `You are a university timetabling assistant.

Build a weekly timetable that places every course below on the grid.

Teaching days: %s
Allowed start times: %s (each class starts on one of these marks)

Courses (id | name | code | credits | teacher id):
%s

Teachers (id | name):
%s

Classrooms (id | name | type | capacity):
%s

Student groups: %s

%s

Rules:
1. Use only the ids listed above.
2. dayOfWeek is 0 for Monday through 6 for Sunday, and must be a teaching day.
3. startTime and endTime use 24-hour HH:MM; endTime must be after startTime.
4. A teacher never teaches two overlapping classes on the same day.
5. A classroom never hosts two overlapping classes on the same day.
6. A student group never attends two overlapping classes on the same day.
7. No two classes share the same day and start time.
8. Schedule each course roughly once per credit hour per week.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "slots": [
    {
      "courseId": "string",
      "teacherId": "string",
      "classroomId": "string",
      "dayOfWeek": 0,
      "startTime": "HH:MM",
      "endTime": "HH:MM",
      "studentGroups": ["string"]
    }
  ],
  "warnings": ["string"]
}`

const compactPrompt = `Return JSON only. Build a weekly class timetable.

Days: %s
Start times: %s
Courses: %s
Teachers: %s
Classrooms: %s
Groups: %s
%s

No teacher, classroom or group may be double-booked. No two classes share a day and start time.
JSON: {"slots":[{"courseId":"","teacherId":"","classroomId":"","dayOfWeek":0,"startTime":"HH:MM","endTime":"HH:MM","studentGroups":[""]}],"warnings":[""]}`

// ProposalRequest is the context sent to the model.
type ProposalRequest struct {
	References  *timetable.References
	WorkingDays []int
	Notes       string // extra constraints from the administrator
	Compact     bool   // shorter prompt for local models
}

// Proposal is the model's suggested timetable.
type Proposal struct {
	Slots    []timetable.SlotInput `json:"slots"`
	Warnings []string              `json:"warnings"`
}

// Proposer asks an LLM for timetable proposals.
type Proposer struct {
	client Client
}

// NewProposer creates a Proposer using client.
func NewProposer(client Client) *Proposer {
	return &Proposer{client: client}
}

// Propose sends messages and decodes the reply into a Proposal.
func (p *Proposer) Propose(ctx context.Context, messages []Message) (*Proposal, error) {
	var out Proposal
	if err := p.client.ChatJSON(ctx, messages, &out); err != nil {
		return nil, fmt.Errorf("requesting proposal: %w", err)
	}
	return &out, nil
}

// InitialMessages builds the opening conversation for req.
func InitialMessages(req ProposalRequest) []Message {
	refs := req.References
	if refs == nil {
		refs = &timetable.References{}
	}
	notes := ""
	if strings.TrimSpace(req.Notes) != "" {
		notes = "Additional constraints: " + strings.TrimSpace(req.Notes)
	}

	days := make([]string, 0, len(req.WorkingDays))
	for _, d := range req.WorkingDays {
		days = append(days, fmt.Sprintf("%d=%s", d, timetable.DayName(d)))
	}
	marks := strings.Join(timetable.TimeCatalog, ", ")
	groups := strings.Join(studentGroups(refs), ", ")
	if groups == "" {
		groups = "none listed"
	}

	var content string
	if req.Compact {
		content = fmt.Sprintf(compactPrompt,
			strings.Join(days, ", "), marks,
			compactCourses(refs), compactTeachers(refs), compactClassrooms(refs),
			groups, notes,
		)
	} else {
		content = fmt.Sprintf(systemPrompt,
			strings.Join(days, ", "), marks,
			formatCourses(refs), formatTeachers(refs), formatClassrooms(refs),
			groups, notes,
		)
	}

	return []Message{
		{Role: RoleSystem, Content: content},
		{Role: RoleUser, Content: "Generate the timetable."},
	}
}

// FeedbackMessages appends the rejected proposal and the problems found in it,
// so the model can correct itself on the next attempt.
func FeedbackMessages(messages []Message, rejected *Proposal, problems []string) []Message {
	data, _ := json.Marshal(rejected)
	var b strings.Builder
	b.WriteString("The timetable has problems. Fix all of them and return the full corrected JSON:\n")
	for _, p := range problems {
		b.WriteString("- ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return append(messages,
		Message{Role: RoleAssistant, Content: string(data)},
		Message{Role: RoleUser, Content: b.String()},
	)
}

func formatCourses(refs *timetable.References) string {
	var b strings.Builder
	for _, c := range refs.Courses {
		fmt.Fprintf(&b, "- %s | %s | %s | %d | %s\n", c.ID, c.Name, c.Code, c.Credits, c.TeacherID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTeachers(refs *timetable.References) string {
	var b strings.Builder
	for _, t := range refs.Teachers {
		fmt.Fprintf(&b, "- %s | %s\n", t.ID, t.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatClassrooms(refs *timetable.References) string {
	var b strings.Builder
	for _, c := range refs.Classrooms {
		fmt.Fprintf(&b, "- %s | %s | %s | %d\n", c.ID, c.Name, c.Type, c.Capacity)
	}
	return strings.TrimRight(b.String(), "\n")
}

func compactCourses(refs *timetable.References) string {
	parts := make([]string, 0, len(refs.Courses))
	for _, c := range refs.Courses {
		parts = append(parts, fmt.Sprintf("%s(teacher %s, %d credits)", c.ID, c.TeacherID, c.Credits))
	}
	return strings.Join(parts, "; ")
}

func compactTeachers(refs *timetable.References) string {
	parts := make([]string, 0, len(refs.Teachers))
	for _, t := range refs.Teachers {
		parts = append(parts, t.ID)
	}
	return strings.Join(parts, ", ")
}

func compactClassrooms(refs *timetable.References) string {
	parts := make([]string, 0, len(refs.Classrooms))
	for _, c := range refs.Classrooms {
		parts = append(parts, c.ID)
	}
	return strings.Join(parts, ", ")
}

// studentGroups lists the distinct groups of all students in first-seen order.
func studentGroups(refs *timetable.References) []string {
	seen := make(map[string]bool)
	var out []string
	for _, st := range refs.Students {
		for _, g := range st.Groups {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}
