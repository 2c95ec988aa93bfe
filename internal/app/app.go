package app

import (
	"net/http"

	"club-app-go/internal/config"
	"club-app-go/internal/db"
	authdomain "club-app-go/internal/domain/auth"
	chatdomain "club-app-go/internal/domain/chat"
	meetingdomain "club-app-go/internal/domain/meeting"
	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/internal/domain/notify"
	"club-app-go/internal/domain/reminder"
	"club-app-go/internal/push"
	"club-app-go/internal/repository/inmemory"
	chatrepo "club-app-go/internal/repository/postgres/chat"
	meetingrepo "club-app-go/internal/repository/postgres/meeting"
	memberrepo "club-app-go/internal/repository/postgres/member"
	"club-app-go/internal/sms"
	"club-app-go/internal/transport/httpserver"
	"club-app-go/internal/transport/httpserver/handler"
	"club-app-go/internal/transport/ws"
	"club-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg := config.Load()

	log.Info("app: connecting to database")
	dbConn, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	memberService := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	meetingRepo := meetingrepo.NewPostgres(dbConn)
	chatService := chatdomain.NewService(chatrepo.NewPostgres(dbConn))

	smsClient := sms.NewClient(sms.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
		APIBase:    cfg.Twilio.APIBase,
	})
	pushClient := push.NewClient(push.Config{
		URL:     cfg.Expo.URL,
		Enabled: cfg.Expo.Enabled,
	})
	if !smsClient.Enabled() {
		log.Warn("app: sms channel not configured, otp and announcements fall back")
	}

	authService := authdomain.NewService(memberService, inmemory.NewOTPStore(), smsClient, authdomain.Config{
		AdminPIN:     cfg.AdminPIN,
		CodeTTL:      cfg.OTP.TTL,
		EchoFallback: cfg.OTP.EchoFallback,
	}, log)

	notifyService := notify.NewService(memberService, smsClient, pushClient, log)
	meetingService := meetingdomain.NewService(meetingRepo, notifyService)
	reminderService := reminder.NewService(meetingRepo, notifyService, reminder.Config{
		Lead:      cfg.Reminder.Lead,
		Tolerance: cfg.Reminder.Tolerance,
	}, log)

	handlers := handler.New(memberService, authService, meetingService, reminderService, chatService, log)
	hub := ws.NewHub(chatService, authService, log)

	router := httpserver.NewRouter(cfg, handlers, authService, hub)
	srv := httpserver.New(cfg, router)

	return &App{cfg: cfg, httpServer: srv, db: dbConn}, nil
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
