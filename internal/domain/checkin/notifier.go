package checkin

// Notifier receives successful redemptions for real-time fan-out. The
// redeeming caller's own acknowledgment is delivered by the transport that
// handled the request; the notifier covers the person and schedule audiences.
type Notifier interface {
	CheckedIn(attendance Attendance, message string)
}

// NopNotifier is used when no real-time layer is wired, e.g. in tests.
type NopNotifier struct{}

func (NopNotifier) CheckedIn(Attendance, string) {}
