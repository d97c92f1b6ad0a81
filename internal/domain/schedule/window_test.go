package schedule

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestEvaluateWindowOpenEarly(t *testing.T) {
	date := mustParse(t, "2024-03-10T00:00:00Z")
	now := mustParse(t, "2024-03-10T08:29:00Z")

	window, state, err := EvaluateWindow("09:00:00", date, now, DefaultWindowOpenBefore, DefaultWindowCloseAfter)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state != WindowOpenEarly {
		t.Fatalf("expected open_early, got %s", state)
	}
	if got := window.OpensAt.Format(time.RFC3339); got != "2024-03-10T08:30:00Z" {
		t.Fatalf("expected opens at 08:30, got %s", got)
	}
}

func TestEvaluateWindowValid(t *testing.T) {
	date := mustParse(t, "2024-03-10T00:00:00Z")
	now := mustParse(t, "2024-03-10T08:35:00Z")

	window, state, err := EvaluateWindow("09:00:00", date, now, DefaultWindowOpenBefore, DefaultWindowCloseAfter)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state != WindowValid {
		t.Fatalf("expected valid, got %s", state)
	}
	if got := window.ClosesAt.Format(time.RFC3339); got != "2024-03-10T10:00:00Z" {
		t.Fatalf("expected closes at 10:00, got %s", got)
	}
}

func TestEvaluateWindowClosed(t *testing.T) {
	date := mustParse(t, "2024-03-10T00:00:00Z")
	now := mustParse(t, "2024-03-10T10:05:00Z")

	_, state, err := EvaluateWindow("09:00:00", date, now, DefaultWindowOpenBefore, DefaultWindowCloseAfter)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state != WindowClosed {
		t.Fatalf("expected closed, got %s", state)
	}
}

func TestEvaluateWindowBoundariesInclusive(t *testing.T) {
	date := mustParse(t, "2024-03-10T00:00:00Z")

	_, state, err := EvaluateWindow("09:00:00", date, mustParse(t, "2024-03-10T08:30:00Z"), DefaultWindowOpenBefore, DefaultWindowCloseAfter)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state != WindowValid {
		t.Fatalf("expected valid at open boundary, got %s", state)
	}

	_, state, err = EvaluateWindow("09:00:00", date, mustParse(t, "2024-03-10T10:00:00Z"), DefaultWindowOpenBefore, DefaultWindowCloseAfter)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state != WindowValid {
		t.Fatalf("expected valid at close boundary, got %s", state)
	}
}

func TestEvaluateWindowShortTimeFormat(t *testing.T) {
	date := mustParse(t, "2024-03-10T00:00:00Z")
	now := mustParse(t, "2024-03-10T18:45:00Z")

	window, state, err := EvaluateWindow("19:00", date, now, DefaultWindowOpenBefore, DefaultWindowCloseAfter)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state != WindowValid {
		t.Fatalf("expected valid, got %s", state)
	}
	if got := window.OpensAt.Format(time.RFC3339); got != "2024-03-10T18:30:00Z" {
		t.Fatalf("expected opens at 18:30, got %s", got)
	}
}

func TestEvaluateWindowBadServiceTime(t *testing.T) {
	date := mustParse(t, "2024-03-10T00:00:00Z")
	_, _, err := EvaluateWindow("not-a-time", date, date, DefaultWindowOpenBefore, DefaultWindowCloseAfter)
	if err == nil {
		t.Fatalf("expected error for malformed service time")
	}
}
