package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	checkindomain "church-checkin-go/internal/domain/checkin"
	memberdomain "church-checkin-go/internal/domain/member"
	scheduledomain "church-checkin-go/internal/domain/schedule"
	"church-checkin-go/internal/transport/httpserver/middleware"
	"github.com/skip2/go-qrcode"
)

type generateQRRequest struct {
	Date string `json:"date"`
}

type validateQRRequest struct {
	QRCodeData string `json:"qrCodeData"`
}

type generateQRResponse struct {
	QRCode    string           `json:"qrCode"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Schedule  scheduleResponse `json:"schedule"`
}

func (h *Handlers) GenerateQR(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req generateQRRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	result, err := h.Checkins.GenerateQR(r.Context(), user.ID, date)
	if err != nil {
		h.writeCheckinError(w, "checkin.generate_qr", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, generateQRResponse{
		QRCode:    result.QRCode,
		ExpiresAt: result.ExpiresAt,
		Schedule:  toScheduleResponse(result.Schedule),
	})
}

func (h *Handlers) ValidateQR(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req validateQRRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.QRCodeData = strings.TrimSpace(req.QRCodeData)
	if req.QRCodeData == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "qrCodeData is required")
		return
	}

	actor := checkindomain.Actor{UserID: user.ID, CanRecord: user.CanRecordCheckIns()}
	attendance, err := h.Checkins.ValidateQR(r.Context(), actor, req.QRCodeData)
	if err != nil {
		h.writeCheckinError(w, "checkin.validate_qr", err, user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, attendance)
}

func (h *Handlers) CheckinHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	limit, err := parseIntParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer")
		return
	}

	attendances, err := h.Checkins.History(r.Context(), user.ID, limit)
	if err != nil {
		h.writeCheckinError(w, "checkin.history", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"attendances": attendances})
}

const (
	defaultQRImageSize = 256
	maxQRImageSize     = 1024
)

// QRImage renders the caller's current QR token as a PNG so native clients
// can show it without a local QR library.
func (h *Handlers) QRImage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}
	size, err := parseIntParam(r.URL.Query().Get("size"), defaultQRImageSize)
	if err != nil || size == 0 || size > maxQRImageSize {
		writeError(w, http.StatusBadRequest, "invalid_request", "size must be between 1 and 1024")
		return
	}

	result, err := h.Checkins.GenerateQR(r.Context(), user.ID, date)
	if err != nil {
		h.writeCheckinError(w, "checkin.qr_image", err, user.ID)
		return
	}

	png, err := qrcode.Encode(result.QRCode, qrcode.Medium, size)
	if err != nil {
		h.log.InternalError("checkin.qr_image: encode png failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handlers) writeCheckinError(w http.ResponseWriter, op string, err error, userID string) {
	var windowErr *checkindomain.WindowError
	switch {
	case errors.Is(err, memberdomain.ErrPersonNotFound):
		h.log.BusinessError(op+": no person linked to user", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "person_not_found", "no person linked to this account")
	case errors.Is(err, scheduledomain.ErrScheduleNotFound):
		h.log.BusinessError(op+": schedule not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "schedule_not_found", "schedule not found")
	case errors.Is(err, memberdomain.ErrNoTeamMembership):
		h.log.BusinessError(op+": no team membership", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "no_team_membership", "person does not belong to any team")
	case errors.Is(err, memberdomain.ErrNoActiveTeamMembership):
		h.log.BusinessError(op+": no active team membership", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "no_active_team_membership", "person has no active team")
	case errors.Is(err, scheduledomain.ErrNoScheduleFound):
		h.log.BusinessError(op+": no schedule for date", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "no_schedule_found", "no schedule for this date")
	case errors.Is(err, checkindomain.ErrMalformedPayload):
		h.log.BusinessError(op+": malformed payload", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "malformed_payload", "qr payload is malformed")
	case errors.Is(err, checkindomain.ErrPayloadExpired):
		h.log.BusinessError(op+": payload expired", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "payload_expired", "qr code expired, generate a new one")
	case errors.Is(err, checkindomain.ErrPayloadScheduleMismatch):
		h.log.BusinessError(op+": payload schedule mismatch", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "schedule_mismatch", "qr payload does not match the schedule")
	case errors.Is(err, checkindomain.ErrAlreadyCheckedIn):
		h.log.BusinessError(op+": already checked in", err, "user_id", userID)
		writeError(w, http.StatusConflict, "already_checked_in", "person already checked in for this schedule")
	case errors.Is(err, checkindomain.ErrCheckInNotAllowed):
		h.log.BusinessError(op+": not allowed", err, "user_id", userID)
		writeError(w, http.StatusForbidden, "check_in_not_allowed", "not allowed to record check-ins")
	case errors.As(err, &windowErr):
		h.log.BusinessError(op+": outside window", err, "user_id", userID, "state", string(windowErr.State))
		code := "window_closed"
		if windowErr.State == scheduledomain.WindowOpenEarly {
			code = "window_not_open"
		}
		writeError(w, http.StatusForbidden, code, windowErr.Error())
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
