package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rgoodwin/housetab/internal/handler"
	"github.com/rgoodwin/housetab/internal/middleware"
	"github.com/rgoodwin/housetab/internal/reminder"
	"github.com/rgoodwin/housetab/internal/store"
	ws "github.com/rgoodwin/housetab/internal/websocket"
)

type Server struct {
	hub         *ws.Hub
	billH       *handler.BillHandler
	memberH     *handler.MemberHandler
	settingsH   *handler.SettingsHandler
	reportH     *handler.ReportHandler
	snapshotH   *handler.SnapshotHandler
	smsH        *handler.SMSHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(st *store.Store, dispatcher *reminder.Dispatcher, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	return &Server{
		hub:         hub,
		billH:       handler.NewBillHandler(st, hub, logger.With("component", "bill")),
		memberH:     handler.NewMemberHandler(st, hub, logger.With("component", "member")),
		settingsH:   handler.NewSettingsHandler(st, hub),
		reportH:     handler.NewReportHandler(st),
		snapshotH:   handler.NewSnapshotHandler(st, hub, logger.With("component", "snapshot")),
		smsH:        handler.NewSMSHandler(st, dispatcher, logger.With("component", "sms")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Bill API routes
	mux.HandleFunc("GET /api/bills", s.billH.List)
	mux.HandleFunc("GET /api/bills/new", s.billH.Defaults)
	mux.HandleFunc("POST /api/bills", s.billH.Save)
	mux.HandleFunc("POST /api/bills/{id}/paid", s.billH.TogglePaid)
	mux.HandleFunc("DELETE /api/bills/{id}", s.billH.Delete)

	// Member API routes
	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("POST /api/members", s.memberH.Create)
	mux.HandleFunc("PUT /api/members/{id}", s.memberH.Update)
	mux.HandleFunc("DELETE /api/members/{id}", s.memberH.Delete)

	// Settings API routes
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Update)
	mux.HandleFunc("GET /api/categories", s.settingsH.GetCategories)
	mux.HandleFunc("PUT /api/categories", s.settingsH.UpdateCategories)

	// Report API routes
	mux.HandleFunc("GET /api/reports/summary", s.reportH.Summary)
	mux.HandleFunc("GET /api/reports/categories", s.reportH.Categories)
	mux.HandleFunc("GET /api/reports/schedule", s.reportH.Schedule)
	mux.HandleFunc("GET /api/calendar", s.reportH.Calendar)

	// Snapshot export/import
	mux.HandleFunc("GET /api/export", s.snapshotH.Export)
	mux.HandleFunc("POST /api/import", s.snapshotH.Import)

	// SMS routes, rate limited to cap provider spend on a misbehaving client
	mux.HandleFunc("POST /api/sms", s.rateLimitedHandler(s.smsH.Send))
	mux.HandleFunc("POST /api/bills/{id}/remind", s.rateLimitedHandler(s.smsH.RemindBill))

	mux.HandleFunc("GET /health", s.healthHandler)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
