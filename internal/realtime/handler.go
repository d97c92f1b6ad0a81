package realtime

import (
	"context"
	"errors"
	"net/http"

	"church-checkin-go/internal/auth"
	"church-checkin-go/internal/domain/checkin"
	"church-checkin-go/internal/domain/member"
	"church-checkin-go/internal/domain/schedule"
	"church-checkin-go/internal/domain/user"
	"church-checkin-go/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	tokens   *auth.Manager
	users    *user.Service
	checkins *checkin.Service
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(hub *Hub, tokens *auth.Manager, users *user.Service, checkins *checkin.Service, allowedOrigins []string, log logger.Logger) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Handler{
		hub:      hub,
		tokens:   tokens,
		users:    users,
		checkins: checkins,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		log: log,
	}
}

type connectedData struct {
	UserID   string  `json:"userId"`
	PersonID *string `json:"personId"`
}

type validateQRData struct {
	QRCodeData string `json:"qrCodeData"`
}

type scheduleRoomData struct {
	ScheduleID string `json:"scheduleId"`
}

type successData struct {
	Attendance checkin.Attendance `json:"attendance"`
}

type errorData struct {
	Message string `json:"message"`
}

// ServeHTTP authenticates and upgrades a real-time connection. A connection
// that presents no plausible token, or one that fails verification, is
// rejected before the upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, ok := extractToken(r)
	if !ok {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	account, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		h.log.InternalError("realtime: load user failed", err, "user_id", userID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.BusinessError("realtime: upgrade failed", err)
		return
	}

	client := newClient(h.hub, conn, account.ID, account.PersonID, h.log)
	h.hub.register(client)
	h.hub.Join(client, UserRoom(account.ID))
	if account.PersonID != nil {
		h.hub.Join(client, PersonRoom(*account.PersonID))
	}

	if event, err := NewEvent(EventConnected, connectedData{UserID: account.ID, PersonID: account.PersonID}); err == nil {
		client.Send(event)
	}

	client.start(h.onEvent)
}

func (h *Handler) onEvent(client *Client, event Event) {
	switch event.Event {
	case EventValidateQR:
		h.handleValidateQR(client, event.Data)
	case EventJoinSchedule:
		var data scheduleRoomData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ScheduleID == "" {
			h.sendError(client, "scheduleId is required")
			return
		}
		h.hub.Join(client, ScheduleRoom(data.ScheduleID))
	case EventLeaveSchedule:
		var data scheduleRoomData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ScheduleID == "" {
			h.sendError(client, "scheduleId is required")
			return
		}
		h.hub.Leave(client, ScheduleRoom(data.ScheduleID))
	default:
		h.sendError(client, "unknown event "+event.Event)
	}
}

func (h *Handler) handleValidateQR(client *Client, raw json.RawMessage) {
	var data validateQRData
	if err := json.Unmarshal(raw, &data); err != nil || data.QRCodeData == "" {
		h.sendError(client, "qrCodeData is required")
		return
	}

	// The connection outlives any single request; each redemption gets its
	// own context. The user row is re-read so a capability revoked after
	// connect is honored.
	ctx := context.Background()
	account, err := h.users.GetByID(ctx, client.userID)
	if err != nil {
		h.log.InternalError("realtime: load user failed", err, "user_id", client.userID)
		h.sendError(client, "internal error")
		return
	}

	actor := checkin.Actor{UserID: account.ID, CanRecord: account.AllowedToCheckIn()}
	attendance, err := h.checkins.ValidateQR(ctx, actor, data.QRCodeData)
	if err != nil {
		h.sendError(client, redemptionMessage(err))
		h.log.BusinessError("realtime: qr redemption rejected", err, "user_id", client.userID)
		return
	}

	// Ack only; the person and schedule rooms were reached through the
	// check-in service's notifier.
	if event, err := NewEvent(EventSuccess, successData{Attendance: *attendance}); err == nil {
		client.Send(event)
	}
}

func (h *Handler) sendError(client *Client, message string) {
	if event, err := NewEvent(EventError, errorData{Message: message}); err == nil {
		client.Send(event)
	}
}

// redemptionMessage maps a redemption failure to the human-readable message
// the error event carries. Unknown errors stay generic.
func redemptionMessage(err error) string {
	var windowErr *checkin.WindowError
	switch {
	case errors.As(err, &windowErr):
		return windowErr.Error()
	case errors.Is(err, checkin.ErrMalformedPayload),
		errors.Is(err, checkin.ErrPayloadExpired),
		errors.Is(err, checkin.ErrPayloadScheduleMismatch),
		errors.Is(err, checkin.ErrAlreadyCheckedIn),
		errors.Is(err, checkin.ErrCheckInNotAllowed),
		errors.Is(err, member.ErrPersonNotFound),
		errors.Is(err, member.ErrNoTeamMembership),
		errors.Is(err, member.ErrNoActiveTeamMembership),
		errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, schedule.ErrNoScheduleFound):
		return err.Error()
	default:
		return "internal error"
	}
}
