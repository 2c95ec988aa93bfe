package httpserver

import (
	"net/http"
	"time"

	"club-app-go/internal/config"
	"club-app-go/internal/metrics"
	"club-app-go/internal/transport/httpserver/handler"
	authmw "club-app-go/internal/transport/httpserver/middleware"
	"club-app-go/internal/transport/ws"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, sessions authmw.SessionResolver, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	auth := authmw.NewAuth(sessions, cfg.AdminPIN, cfg.SweepSecret)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/members", handlers.Register)
		r.Post("/auth/request-code", handlers.RequestCode)
		r.Post("/auth/verify-code", handlers.VerifyCode)
		r.Post("/auth/admin-login", handlers.AdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Session)

			r.Get("/auth/me", handlers.Me)
			r.Post("/auth/logout", handlers.Logout)
			r.Get("/chat/messages", handlers.ListMessages)
			r.Post("/chat/messages", handlers.PostMessage)
		})

		// The websocket handshake carries the token as a query param.
		r.Get("/chat/ws", hub.Handle)

		r.Group(func(r chi.Router) {
			r.Use(auth.SessionOrPIN)

			r.Get("/meetings", handlers.ListMeetings)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminPIN)

			r.Post("/meetings", handlers.CreateMeeting)
			r.Get("/admin/members", handlers.ListMembers)
			r.Post("/admin/members/{id}/approve", handlers.ApproveMember)
			r.Post("/admin/members/{id}/reject", handlers.RejectMember)
			r.Post("/admin/members/{id}/promote", handlers.PromoteMember)
			r.Post("/admin/members/{id}/demote", handlers.DemoteMember)
			r.Delete("/admin/members/{id}", handlers.DeleteMember)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.SweepSecret)

			r.Post("/sweep", handlers.Sweep)
		})
	})

	return r
}
