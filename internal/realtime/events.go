package realtime

import "github.com/goccy/go-json"

// Client -> server events.
const (
	EventValidateQR    = "checkin:validate-qr"
	EventJoinSchedule  = "checkin:join-schedule"
	EventLeaveSchedule = "checkin:leave-schedule"
)

// Server -> client events.
const (
	EventConnected = "checkin:connected"
	EventSuccess   = "checkin:success"
	EventNotify    = "checkin:notify"
	EventNew       = "checkin:new"
	EventError     = "checkin:error"
)

type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewEvent(name string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Event: name, Data: raw}, nil
}

func UserRoom(userID string) string {
	return "user:" + userID
}

func PersonRoom(personID string) string {
	return "person:" + personID
}

func ScheduleRoom(scheduleID string) string {
	return "schedule:" + scheduleID
}
