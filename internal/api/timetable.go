package api

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/aula/internal/dateutil"
	"github.com/javiermolinar/aula/internal/export"
	"github.com/javiermolinar/aula/internal/scheduler"
	"github.com/javiermolinar/aula/internal/timetable"
)

type gridRow struct {
	Start string            `json:"start"`
	Cells []*timetable.Slot `json:"cells"`
}

// Grid returns the weekly grid as catalog rows over days.
// GET /api/v1/grid?days=0,1,2,3,4
func (h *Handler) Grid(c *gin.Context) {
	days, ok := parseDays(c.Query("days"), h.svc.WorkingDays())
	if !ok {
		BadRequest(c, "days must be a comma separated list of 0-6")
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	grid := snap.Grid()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = timetable.DayName(d)
	}
	rows := make([]gridRow, 0, len(timetable.TimeCatalog))
	for _, r := range grid.Rows(days) {
		rows = append(rows, gridRow{Start: r.Start, Cells: r.Cells})
	}

	OK(c, gin.H{
		"days":     names,
		"rows":     rows,
		"shadowed": grid.Shadowed(),
	})
}

// Conflicts returns the slots with conflicts and the slots that could not be checked.
// GET /api/v1/conflicts
func (h *Handler) Conflicts(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	slots := snap.Conflicting()
	if slots == nil {
		slots = []timetable.Slot{}
	}
	OK(c, gin.H{
		"list":   slots,
		"pairs":  timetable.ConflictPairs(snap.Slots),
		"issues": issueStrings(snap.Issues),
	})
}

type freeQuery struct {
	Teacher  string `form:"teacher"`
	Room     string `form:"room"`
	Groups   string `form:"groups"`
	Duration int    `form:"duration" binding:"omitempty,min=15,max=600"`
	Next     bool   `form:"next"`
}

// FreeCells lists the cells where a class fits without clashes.
// GET /api/v1/free?teacher=2&room=1&groups=CS-2A,CS-2B&duration=90&next=true
func (h *Handler) FreeCells(c *gin.Context) {
	var q freeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "duration must be between 15 and 600 minutes")
		return
	}
	req := scheduler.Request{TeacherID: q.Teacher, ClassroomID: q.Room, Duration: q.Duration}
	for _, g := range strings.Split(q.Groups, ",") {
		if g = strings.TrimSpace(g); g != "" {
			req.Groups = append(req.Groups, g)
		}
	}

	if q.Next {
		cell, ok, err := h.svc.NextFree(c.Request.Context(), req)
		if err != nil {
			Fail(c, err)
			return
		}
		if !ok {
			Error(c, http.StatusNotFound, codeNotFound, "no free cell", "")
			return
		}
		OK(c, cell)
		return
	}

	cells, err := h.svc.FreeCells(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	if cells == nil {
		cells = []scheduler.Cell{}
	}
	OK(c, gin.H{"list": cells, "total": len(cells)})
}

// Stats returns dashboard figures.
// GET /api/v1/stats
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, st)
}

type generateRequest struct {
	Notes string `json:"notes"`
}

// Generate replaces the timetable with a generated one.
// POST /api/v1/generate
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "invalid request: "+err.Error())
			return
		}
	}

	res, err := h.svc.Generate(c.Request.Context(), req.Notes)
	if err != nil {
		Fail(c, err)
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, gin.H{
		"slots":    res.Slots,
		"stats":    timetable.ComputeStats(snap.Slots, snap.References, h.svc.WorkingDays()),
		"attempts": res.Attempts,
		"warnings": res.Warnings,
		"issues":   issueStrings(res.Issues),
	})
}

// References returns every reference entity.
// GET /api/v1/references
func (h *Handler) References(c *gin.Context) {
	refs, err := h.svc.References(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{
		"courses":    orEmpty(refs.Courses),
		"teachers":   orEmpty(refs.Teachers),
		"classrooms": orEmpty(refs.Classrooms),
		"students":   orEmpty(refs.Students),
	})
}

// ListCourses returns the courses.
// GET /api/v1/courses
func (h *Handler) ListCourses(c *gin.Context) {
	h.listReferences(c, func(r *timetable.References) any { return orEmpty(r.Courses) })
}

// ListTeachers returns the teachers.
// GET /api/v1/teachers
func (h *Handler) ListTeachers(c *gin.Context) {
	h.listReferences(c, func(r *timetable.References) any { return orEmpty(r.Teachers) })
}

// ListClassrooms returns the classrooms.
// GET /api/v1/classrooms
func (h *Handler) ListClassrooms(c *gin.Context) {
	h.listReferences(c, func(r *timetable.References) any { return orEmpty(r.Classrooms) })
}

// ListStudents returns the students.
// GET /api/v1/students
func (h *Handler) ListStudents(c *gin.Context) {
	h.listReferences(c, func(r *timetable.References) any { return orEmpty(r.Students) })
}

func (h *Handler) listReferences(c *gin.Context, pick func(*timetable.References) any) {
	refs, err := h.svc.References(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"list": pick(refs)})
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportXLSX downloads the timetable as a workbook.
// GET /api/v1/export.xlsx?days=0,1,2,3,4
func (h *Handler) ExportXLSX(c *gin.Context) {
	days, ok := parseDays(c.Query("days"), h.svc.WorkingDays())
	if !ok {
		BadRequest(c, "days must be a comma separated list of 0-6")
		return
	}
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, c.Query("title"), snap.Slots, days); err != nil {
		InternalError(c, err)
		return
	}
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="timetable.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportICS downloads the timetable as weekly recurring calendar events.
// GET /api/v1/export.ics?week_of=2026-10-12&weeks=15
func (h *Handler) ExportICS(c *gin.Context) {
	var opts export.ICSOptions
	if raw := c.Query("week_of"); raw != "" {
		t, err := dateutil.ParseWeekOf(raw, time.Now())
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		opts.WeekOf = t
	}
	if raw := c.Query("weeks"); raw != "" {
		var q struct {
			Weeks int `form:"weeks" binding:"min=1,max=60"`
		}
		if err := c.ShouldBindQuery(&q); err != nil {
			BadRequest(c, "weeks must be between 1 and 60")
			return
		}
		opts.Weeks = q.Weeks
	}

	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteICS(&buf, snap.Slots, opts); err != nil {
		InternalError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="timetable.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
