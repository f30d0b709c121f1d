package api

import (
	"net/http"

	"ptp_tracker/internal/api/handler"
	mw "ptp_tracker/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Customer *handler.Customer
	PTP      *handler.PTP
	Auth     *handler.Auth
	Reminder *handler.Reminder
}

type Server struct {
	router   chi.Router
	logger   *zap.Logger
	handlers Handlers
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		handlers: handlers,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	h := s.handlers
	s.router.Get("/healthz", handleHealthz)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)

		r.Group(func(r chi.Router) {
			r.Use(mw.Owner)

			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/subscribe", h.Auth.Subscribe)
			r.Post("/auth/unsubscribe", h.Auth.Unsubscribe)

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.Customer.List)
				r.Post("/", h.Customer.Create)
				r.Post("/bulk", h.Customer.Bulk)
				r.Post("/import/sheet", h.Customer.ImportSheet)
				r.Get("/stats", h.Customer.Stats)
				r.Get("/pincodes", h.Customer.Pincodes)
				r.Get("/export/{format}", h.Customer.Export)
				r.Put("/{id}", h.Customer.Update)
				r.Post("/{id}/visit", h.Customer.ToggleVisit)
				r.Delete("/{id}", h.Customer.Archive)
			})

			r.Route("/ptps", func(r chi.Router) {
				r.Get("/", h.PTP.List)
				r.Post("/", h.PTP.Create)
				r.Post("/test-notification", h.PTP.TestNotification)
				r.Put("/{id}", h.PTP.UpdateStatus)
				r.Delete("/{id}", h.PTP.Delete)
			})

			r.Post("/reminders/run", h.Reminder.Run)
		})
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

// MetricsHandler отдельный листенер для /metrics
func MetricsHandler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handleHealthz)
	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
