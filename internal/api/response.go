package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/aula/internal/generator"
	"github.com/javiermolinar/aula/internal/schedule"
	"github.com/javiermolinar/aula/internal/timetable"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

// Envelope codes. Zero is success; the rest are HTTP status * 100 + n.
const (
	codeOK                  = 0
	codeBadRequest          = 40001
	codeNotFound            = 40401
	codeCellOccupied        = 40901
	codeReferenceInUse      = 40902
	codeUnresolvedReference = 42201
	codeInvalidPlacement    = 42202
	codeInvalidTimeFormat   = 42203
	codeGenerationFailed    = 42204
	codeInternal            = 50000
	codeUnavailable         = 50301
)

// OK writes a 200 success reply.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: codeOK, Message: "success", Data: data})
}

// Created writes a 201 success reply.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: codeOK, Message: "success", Data: data})
}

// Error writes an error reply.
func Error(c *gin.Context, httpStatus, code int, message, details string) {
	c.JSON(httpStatus, Response{Code: code, Message: message, Details: details})
}

// BadRequest writes a 400 reply.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, codeBadRequest, message, "")
}

// InternalError writes a 500 reply without leaking err.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, codeInternal, "internal server error", "")
}

// Fail maps a service error to its HTTP reply.
func Fail(c *gin.Context, err error) {
	kind := timetable.KindOf(err)
	switch kind {
	case timetable.KindNotFound:
		Error(c, http.StatusNotFound, codeNotFound, err.Error(), string(kind))
	case timetable.KindCellOccupied:
		Error(c, http.StatusConflict, codeCellOccupied, err.Error(), string(kind))
	case timetable.KindReferenceInUse:
		Error(c, http.StatusConflict, codeReferenceInUse, err.Error(), string(kind))
	case timetable.KindUnresolvedReference:
		Error(c, http.StatusUnprocessableEntity, codeUnresolvedReference, err.Error(), string(kind))
	case timetable.KindInvalidPlacement:
		Error(c, http.StatusUnprocessableEntity, codeInvalidPlacement, err.Error(), string(kind))
	case timetable.KindInvalidTimeFormat:
		Error(c, http.StatusUnprocessableEntity, codeInvalidTimeFormat, err.Error(), string(kind))
	default:
		switch {
		case errors.Is(err, generator.ErrGenerationFailed):
			Error(c, http.StatusUnprocessableEntity, codeGenerationFailed, err.Error(), "generation_failed")
		case errors.Is(err, schedule.ErrNoGenerator):
			Error(c, http.StatusServiceUnavailable, codeUnavailable, err.Error(), "")
		default:
			InternalError(c, err)
		}
	}
}
