package realtime

import (
	"church-checkin-go/internal/domain/checkin"
)

// CheckInNotifier fans a successful redemption out to the person and schedule
// rooms. Together with the redeeming caller's own acknowledgment this makes
// exactly three emissions per success.
type CheckInNotifier struct {
	hub *Hub
}

func NewCheckInNotifier(hub *Hub) *CheckInNotifier {
	return &CheckInNotifier{hub: hub}
}

type notifyData struct {
	Attendance checkin.Attendance `json:"attendance"`
	Message    string             `json:"message"`
}

type newAttendanceData struct {
	Attendance checkin.Attendance `json:"attendance"`
}

func (n *CheckInNotifier) CheckedIn(attendance checkin.Attendance, message string) {
	if event, err := NewEvent(EventNotify, notifyData{Attendance: attendance, Message: message}); err == nil {
		n.hub.Broadcast(PersonRoom(attendance.PersonID), event)
	}
	if event, err := NewEvent(EventNew, newAttendanceData{Attendance: attendance}); err == nil {
		n.hub.Broadcast(ScheduleRoom(attendance.ScheduleID), event)
	}
}
