package checkin

import (
	"errors"
	"fmt"

	"church-checkin-go/internal/domain/schedule"
)

var (
	ErrAttendanceNotFound      = errors.New("attendance not found")
	ErrAlreadyCheckedIn        = errors.New("person already checked in for this schedule")
	ErrMalformedPayload        = errors.New("malformed qr payload")
	ErrPayloadExpired          = errors.New("qr payload expired")
	ErrPayloadScheduleMismatch = errors.New("qr payload does not match the schedule")
	ErrCheckInNotAllowed       = errors.New("user is not allowed to record check-ins")
)

// WindowError reports a rejection because the check-in window is not open.
// It carries the computed boundaries so callers can tell the client when to
// try again instead of issuing a bare denial.
type WindowError struct {
	State  schedule.WindowState
	Window schedule.Window
}

func (e *WindowError) Error() string {
	if e.State == schedule.WindowOpenEarly {
		return fmt.Sprintf("check-in is not open yet, it opens at %s", e.Window.OpensAt.UTC().Format("15:04"))
	}
	return fmt.Sprintf("check-in closed at %s", e.Window.ClosesAt.UTC().Format("15:04"))
}
