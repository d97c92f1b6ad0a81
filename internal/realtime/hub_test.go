package realtime

import (
	"sync"
	"testing"

	"church-checkin-go/internal/domain/checkin"
	"church-checkin-go/pkg/logger"
	"github.com/goccy/go-json"
)

func newTestClient(hub *Hub, userID string, personID *string) *Client {
	client := newClient(hub, nil, userID, personID, logger.NewNop())
	hub.register(client)
	return client
}

func drain(client *Client) []Event {
	events := make([]Event, 0)
	for {
		select {
		case event := <-client.send:
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestHubBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub := NewHub(logger.NewNop())
	inRoom := newTestClient(hub, "user-1", nil)
	outOfRoom := newTestClient(hub, "user-2", nil)
	hub.Join(inRoom, ScheduleRoom("sch-1"))

	event, err := NewEvent(EventNew, map[string]string{"hello": "world"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	hub.Broadcast(ScheduleRoom("sch-1"), event)

	if got := drain(inRoom); len(got) != 1 || got[0].Event != EventNew {
		t.Fatalf("expected one event for the room member, got %+v", got)
	}
	if got := drain(outOfRoom); len(got) != 0 {
		t.Fatalf("expected nothing for the outsider, got %+v", got)
	}
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := NewHub(logger.NewNop())
	client := newTestClient(hub, "user-1", nil)
	hub.Join(client, ScheduleRoom("sch-1"))
	hub.Leave(client, ScheduleRoom("sch-1"))

	event, _ := NewEvent(EventNew, nil)
	hub.Broadcast(ScheduleRoom("sch-1"), event)

	if got := drain(client); len(got) != 0 {
		t.Fatalf("expected no delivery after leave, got %+v", got)
	}
}

func TestHubUnregisterClearsRooms(t *testing.T) {
	hub := NewHub(logger.NewNop())
	client := newTestClient(hub, "user-1", nil)
	hub.Join(client, ScheduleRoom("sch-1"))

	hub.unregister(client)

	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients, got %d", hub.ClientCount())
	}
	if hub.RoomSize(ScheduleRoom("sch-1")) != 0 {
		t.Fatalf("expected empty room after disconnect")
	}
}

func TestHubJoinIgnoresUnknownClient(t *testing.T) {
	hub := NewHub(logger.NewNop())
	client := newClient(hub, nil, "user-1", nil, logger.NewNop())

	hub.Join(client, ScheduleRoom("sch-1"))

	if hub.RoomSize(ScheduleRoom("sch-1")) != 0 {
		t.Fatalf("expected join rejected for unregistered client")
	}
}

func TestHubBroadcastDuringDisconnect(t *testing.T) {
	hub := NewHub(logger.NewNop())
	room := ScheduleRoom("sch-1")

	event, err := NewEvent(EventNew, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				hub.Broadcast(room, event)
			}
		}
	}()

	for i := 0; i < 500; i++ {
		clients := make([]*Client, 0, 8)
		for j := 0; j < 8; j++ {
			client := newTestClient(hub, "user-1", nil)
			hub.Join(client, room)
			clients = append(clients, client)
		}
		for _, client := range clients {
			client.Send(event)
			hub.unregister(client)
			client.Send(event)
		}
	}

	close(done)
	wg.Wait()

	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients left, got %d", hub.ClientCount())
	}
	if hub.RoomSize(room) != 0 {
		t.Fatalf("expected empty room, got %d members", hub.RoomSize(room))
	}
}

func TestCheckInNotifierEmitsToPersonAndScheduleRooms(t *testing.T) {
	hub := NewHub(logger.NewNop())
	personID := "p-1"
	volunteer := newTestClient(hub, "user-1", &personID)
	dashboard := newTestClient(hub, "user-2", nil)
	bystander := newTestClient(hub, "user-3", nil)

	hub.Join(volunteer, PersonRoom(personID))
	hub.Join(dashboard, ScheduleRoom("sch-1"))

	notifier := NewCheckInNotifier(hub)
	attendance := checkin.Attendance{ID: "att-1", ScheduleID: "sch-1", PersonID: personID}
	notifier.CheckedIn(attendance, "Ana checked in to Sunday Morning")

	volunteerEvents := drain(volunteer)
	if len(volunteerEvents) != 1 || volunteerEvents[0].Event != EventNotify {
		t.Fatalf("expected checkin:notify for the person room, got %+v", volunteerEvents)
	}
	var notify notifyData
	if err := json.Unmarshal(volunteerEvents[0].Data, &notify); err != nil {
		t.Fatalf("unmarshal notify data: %v", err)
	}
	if notify.Message != "Ana checked in to Sunday Morning" || notify.Attendance.ID != "att-1" {
		t.Fatalf("unexpected notify data %+v", notify)
	}

	dashboardEvents := drain(dashboard)
	if len(dashboardEvents) != 1 || dashboardEvents[0].Event != EventNew {
		t.Fatalf("expected checkin:new for the schedule room, got %+v", dashboardEvents)
	}

	if got := drain(bystander); len(got) != 0 {
		t.Fatalf("expected nothing for the bystander, got %+v", got)
	}
}
