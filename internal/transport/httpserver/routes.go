package httpserver

import (
	"net/http"
	"time"

	"church-checkin-go/internal/config"
	"church-checkin-go/internal/transport/httpserver/handler"
	authmw "church-checkin-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.JWTAuth, ws http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/schedules/today", handlers.SchedulesToday)

			r.Post("/checkin/generate-qr", handlers.GenerateQR)
			r.Post("/checkin/validate-qr", handlers.ValidateQR)
			r.Get("/checkin/history", handlers.CheckinHistory)
			r.Get("/checkin/qr-image", handlers.QRImage)
		})
	})

	// The websocket endpoint authenticates inside the upgrade handshake, so
	// it sits outside the bearer middleware.
	r.Get("/ws/checkin", ws.ServeHTTP)

	return r
}
