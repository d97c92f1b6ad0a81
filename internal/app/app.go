package app

import (
	"net/http"

	"church-checkin-go/internal/auth"
	"church-checkin-go/internal/config"
	"church-checkin-go/internal/db"
	checkindomain "church-checkin-go/internal/domain/checkin"
	memberdomain "church-checkin-go/internal/domain/member"
	scheduledomain "church-checkin-go/internal/domain/schedule"
	userdomain "church-checkin-go/internal/domain/user"
	"church-checkin-go/internal/realtime"
	checkinrepo "church-checkin-go/internal/repository/postgres/checkin"
	memberrepo "church-checkin-go/internal/repository/postgres/member"
	schedulerepo "church-checkin-go/internal/repository/postgres/schedule"
	userrepo "church-checkin-go/internal/repository/postgres/user"
	"church-checkin-go/internal/transport/httpserver"
	"church-checkin-go/internal/transport/httpserver/handler"
	authmw "church-checkin-go/internal/transport/httpserver/middleware"
	"church-checkin-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	schedules := scheduledomain.NewService(schedulerepo.NewPostgres(dbConn))
	users := userdomain.NewService(userrepo.NewPostgres(dbConn))

	tokens, err := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub(log)
	notifier := realtime.NewCheckInNotifier(hub)

	checkins := checkindomain.NewService(members, schedules, checkinrepo.NewPostgres(dbConn), notifier, checkindomain.Config{
		WindowOpenBefore: cfg.Checkin.WindowOpenBefore,
		WindowCloseAfter: cfg.Checkin.WindowCloseAfter,
		QRCodeTTL:        cfg.Checkin.QRCodeTTL,
	})

	ws := realtime.NewHandler(hub, tokens, users, checkins, cfg.CORSAllowedOrigins, log)

	log.Info("app: initializing router")
	handlers := handler.New(members, schedules, checkins, log)
	jwtAuth := authmw.NewJWTAuth(tokens, users, log)
	router := httpserver.NewRouter(cfg, handlers, jwtAuth, ws)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
