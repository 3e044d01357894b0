// Package timetable defines the weekly slot grid, conflict detection and the
// edit protocol applied to a timetable snapshot.
package timetable

import (
	"errors"
	"fmt"
)

// Protocol errors.
var (
	ErrUnresolvedReference = errors.New("reference does not resolve")
	ErrNotFound            = errors.New("slot not found")
	ErrCellOccupied        = errors.New("target cell is occupied")
	ErrInvalidTimeFormat   = errors.New("time must be in HH:MM format")
	ErrInvalidPlacement    = errors.New("invalid grid placement")
)

// Registry errors.
var (
	ErrReferenceInUse = errors.New("reference is used by a scheduled slot")
	ErrEntityNotFound = errors.New("entity not found")
)

// ErrorKind classifies protocol errors for transport layers.
type ErrorKind string

const (
	KindNone                ErrorKind = ""
	KindUnresolvedReference ErrorKind = "unresolved_reference"
	KindNotFound            ErrorKind = "not_found"
	KindCellOccupied        ErrorKind = "cell_occupied"
	KindInvalidTimeFormat   ErrorKind = "invalid_time_format"
	KindInvalidPlacement    ErrorKind = "invalid_placement"
	KindReferenceInUse      ErrorKind = "reference_in_use"
	KindInternal            ErrorKind = "internal"
)

// KindOf returns the kind of a (possibly wrapped) error.
// Errors outside the protocol are KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnresolvedReference):
		return KindUnresolvedReference
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEntityNotFound):
		return KindNotFound
	case errors.Is(err, ErrCellOccupied):
		return KindCellOccupied
	case errors.Is(err, ErrInvalidTimeFormat):
		return KindInvalidTimeFormat
	case errors.Is(err, ErrInvalidPlacement):
		return KindInvalidPlacement
	case errors.Is(err, ErrReferenceInUse):
		return KindReferenceInUse
	default:
		return KindInternal
	}
}

// SlotError reports a problem with a single slot found while analysing a collection.
type SlotError struct {
	SlotID string
	Err    error
}

func (e SlotError) Error() string {
	return fmt.Sprintf("slot %s: %v", e.SlotID, e.Err)
}

func (e SlotError) Unwrap() error {
	return e.Err
}
