package schedule

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultWindowOpenBefore = 30 * time.Minute
	DefaultWindowCloseAfter = time.Hour
)

type WindowState string

const (
	WindowOpenEarly WindowState = "open_early"
	WindowValid     WindowState = "valid"
	WindowClosed    WindowState = "closed"
)

// Window is the interval during which a check-in is accepted for a schedule.
type Window struct {
	OpensAt  time.Time
	ClosesAt time.Time
}

// EvaluateWindow computes the check-in window for a service scheduled at
// serviceTime ("HH:MM" or "HH:MM:SS") on the given date, and classifies now
// against it. The evaluation is pure; callers run it independently at QR
// issuance and again at redemption, since the window may close in between.
func EvaluateWindow(serviceTime string, date time.Time, now time.Time, openBefore, closeAfter time.Duration) (Window, WindowState, error) {
	scheduled, err := atTimeOfDay(date, serviceTime)
	if err != nil {
		return Window{}, "", err
	}

	window := Window{
		OpensAt:  scheduled.Add(-openBefore),
		ClosesAt: scheduled.Add(closeAfter),
	}

	switch {
	case now.Before(window.OpensAt):
		return window, WindowOpenEarly, nil
	case now.After(window.ClosesAt):
		return window, WindowClosed, nil
	default:
		return window, WindowValid, nil
	}
}

func atTimeOfDay(date time.Time, serviceTime string) (time.Time, error) {
	value := strings.TrimSpace(serviceTime)

	layout := "15:04:05"
	if len(value) == len("15:04") {
		layout = "15:04"
	}

	parsed, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse service time %q: %w", serviceTime, err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
		time.UTC,
	), nil
}
