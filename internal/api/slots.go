package api

import (
	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/aula/internal/timetable"
)

type slotRequest struct {
	CourseID      string   `json:"courseId" binding:"required"`
	TeacherID     string   `json:"teacherId" binding:"required"`
	ClassroomID   string   `json:"classroomId" binding:"required"`
	DayOfWeek     *int     `json:"dayOfWeek" binding:"required"`
	StartTime     string   `json:"startTime" binding:"required"`
	EndTime       string   `json:"endTime" binding:"required"`
	Duration      int      `json:"duration" binding:"omitempty,min=1,max=1440"` // kept only when the times do not parse
	StudentGroups []string `json:"studentGroups"`
}

func (r slotRequest) input() timetable.SlotInput {
	return timetable.SlotInput{
		CourseID:      r.CourseID,
		TeacherID:     r.TeacherID,
		ClassroomID:   r.ClassroomID,
		DayOfWeek:     *r.DayOfWeek,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Duration:      r.Duration,
		StudentGroups: r.StudentGroups,
	}
}

type moveRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}

// ListSlots returns the slots visible to a role, optionally filtered.
// GET /api/v1/slots?role=&subject=&teacher=&classroom=&group=
func (h *Handler) ListSlots(c *gin.Context) {
	role := timetable.RoleAdmin
	if raw := c.Query("role"); raw != "" {
		r, err := timetable.ParseRole(raw)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		role = r
	}
	filter := timetable.Filter{
		TeacherID:   c.Query("teacher"),
		ClassroomID: c.Query("classroom"),
		Group:       c.Query("group"),
	}

	slots, err := h.svc.View(c.Request.Context(), role, c.Query("subject"), filter)
	if err != nil {
		Fail(c, err)
		return
	}
	if slots == nil {
		slots = []timetable.Slot{}
	}
	OK(c, gin.H{"list": slots})
}

// Today returns today's slots.
// GET /api/v1/today
func (h *Handler) Today(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	slots := h.svc.Today(snap.Slots)
	if slots == nil {
		slots = []timetable.Slot{}
	}
	OK(c, gin.H{"list": slots})
}

// CreateSlot adds a slot.
// POST /api/v1/slots
func (h *Handler) CreateSlot(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid slot: "+err.Error())
		return
	}

	ch, err := h.svc.AddSlot(c.Request.Context(), req.input())
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, newChangeResponse(ch))
}

// UpdateSlot replaces a slot's editable fields.
// PUT /api/v1/slots/:id
func (h *Handler) UpdateSlot(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid slot: "+err.Error())
		return
	}

	ch, err := h.svc.UpdateSlot(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, newChangeResponse(ch))
}

// DeleteSlot removes a slot.
// DELETE /api/v1/slots/:id
func (h *Handler) DeleteSlot(c *gin.Context) {
	ch, err := h.svc.DeleteSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, newChangeResponse(ch))
}

// MoveSlot places a slot on another grid cell.
// POST /api/v1/slots/:id/move
func (h *Handler) MoveSlot(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid move: "+err.Error())
		return
	}

	ch, err := h.svc.MoveSlot(c.Request.Context(), c.Param("id"), *req.DayOfWeek, req.StartTime)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, newChangeResponse(ch))
}
