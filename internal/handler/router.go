package handler

import (
	"net/http"

	"github.com/membresiasgt/panel-go/internal/infra/health"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps bundles everything the router needs.
type Deps struct {
	Memberships   *service.MembershipService
	Recharges     *service.RechargeService
	Reports       *service.ReportService
	Notifications *service.NotificationService
	Monitor       *health.Monitor
	Flashes       *FlashStore
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// NewRouter builds the chi router with all panel routes.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Heartbeat("/ping"))

	// Operational endpoints.
	r.Get("/healthz", healthz(d.Monitor, d.Metrics))
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	// The membership tab is the landing view.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/memberships", http.StatusFound)
	})

	r.Route("/memberships", func(r chi.Router) {
		r.Get("/", MembershipsPage(d.Memberships, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Post("/", MembershipSave(d.Memberships, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Get("/{id}", MembershipDetailPage(d.Memberships, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Get("/{id}/edit", MembershipEditPage(d.Memberships, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Get("/{id}/delete", MembershipDeleteConfirm(d.Memberships, d.Monitor, d.Flashes, d.Logger))
		r.Post("/{id}/delete", MembershipDelete(d.Memberships, d.Flashes, d.Logger))
	})

	r.Route("/recharges", func(r chi.Router) {
		r.Get("/", RechargesPage(d.Recharges, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Post("/", RechargeCreate(d.Recharges, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Get("/{id}/delete", RechargeDeleteConfirm(d.Monitor, d.Logger))
		r.Post("/{id}/delete", RechargeDelete(d.Recharges, d.Flashes, d.Logger))
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/", ReportsPage(d.Reports, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Get("/export", ReportExport(d.Reports, d.Flashes, d.Logger))
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", NotificationsPage(d.Notifications, d.Monitor, d.Flashes, d.Metrics, d.Logger))
		r.Post("/{id}/send", NotificationSend(d.Notifications, d.Flashes, d.Logger))
	})

	r.Get("/api/expiration", ExpirationPreview(d.Memberships))

	return r
}

// healthz reports the monitor's latest snapshot plus the operational
// counters. The process answers 200 even when the upstream is down: the
// payload, not the status code, carries the connectivity verdict.
func healthz(mon *health.Monitor, metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"connection": mon.Status(),
			"stats":      metrics.GetPanelSnapshot(),
		})
	}
}
