package handler

import (
	"net/http"

	checkindomain "church-checkin-go/internal/domain/checkin"
	memberdomain "church-checkin-go/internal/domain/member"
	scheduledomain "church-checkin-go/internal/domain/schedule"
	"church-checkin-go/pkg/logger"
)

type Handlers struct {
	Members   *memberdomain.Service
	Schedules *scheduledomain.Service
	Checkins  *checkindomain.Service
	log       logger.Logger
}

func New(members *memberdomain.Service, schedules *scheduledomain.Service, checkins *checkindomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Members:   members,
		Schedules: schedules,
		Checkins:  checkins,
		log:       log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
