package handler

import (
	"errors"
	"net/http"
	"time"

	memberdomain "church-checkin-go/internal/domain/member"
	scheduledomain "church-checkin-go/internal/domain/schedule"
	"church-checkin-go/internal/transport/httpserver/middleware"
)

type scheduleResponse struct {
	ID      string                `json:"id"`
	Date    string                `json:"date"`
	Service churchServiceResponse `json:"service"`
}

type churchServiceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}

func toScheduleResponse(s scheduledomain.ScheduleWithService) scheduleResponse {
	return scheduleResponse{
		ID:   s.Schedule.ID,
		Date: s.Schedule.DateString(),
		Service: churchServiceResponse{
			ID:   s.Service.ID,
			Name: s.Service.Name,
			Time: s.Service.Time,
		},
	}
}

// SchedulesToday lists the caller's schedules for a date (today when the
// date query param is absent). Callers without a linked person or without
// any matching schedule get an empty list, not an error.
func (h *Handlers) SchedulesToday(w http.ResponseWriter, r *http.Request) {
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
	target := time.Now().UTC()
	if date != nil {
		target = *date
	}

	schedules, err := h.findSchedulesForUser(r, user.ID, target)
	if err != nil {
		h.log.InternalError("schedules.today: lookup failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]scheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		items = append(items, toScheduleResponse(s))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"schedules": items})
}

func (h *Handlers) findSchedulesForUser(r *http.Request, userID string, date time.Time) ([]scheduledomain.ScheduleWithService, error) {
	person, err := h.Members.GetPersonByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, memberdomain.ErrPersonNotFound) {
			return nil, nil
		}
		return nil, err
	}

	teamIDs, err := h.Members.ResolveActiveTeams(r.Context(), person)
	if err != nil {
		if errors.Is(err, memberdomain.ErrNoTeamMembership) || errors.Is(err, memberdomain.ErrNoActiveTeamMembership) {
			return nil, nil
		}
		return nil, err
	}

	schedules, err := h.Schedules.FindSchedulesForDate(r.Context(), teamIDs, date)
	if err != nil {
		if errors.Is(err, scheduledomain.ErrNoScheduleFound) {
			return nil, nil
		}
		return nil, err
	}
	return schedules, nil
}
