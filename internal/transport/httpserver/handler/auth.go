package handler

import (
	"net/http"

	"church-checkin-go/internal/transport/httpserver/middleware"
)

type meResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	CanCheckIn bool    `json:"canCheckIn"`
	PersonID   *string `json:"personId"`
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		CanCheckIn: user.CanRecordCheckIns(),
		PersonID:   user.PersonID,
	})
}
