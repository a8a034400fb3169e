// Package integration exercises the full stack — router, services, and the
// real API client — against a mock upstream speaking the
// {success, data, message} envelope.
package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/handler"
	"github.com/membresiasgt/panel-go/internal/infra/apiclient"
	"github.com/membresiasgt/panel-go/internal/infra/cache"
	"github.com/membresiasgt/panel-go/internal/infra/health"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/infra/resilience"
	"github.com/membresiasgt/panel-go/internal/service"

	"go.uber.org/zap"
)

func newUpstream(t *testing.T) (*httptest.Server, *[]map[string]any) {
	t.Helper()

	var created []map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/memberships", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"id": 1, "client_id": "c1", "client_name": "Ana",
				"service_name": "Netflix", "duration": 1,
				"purchase_date": "2024-01-15", "expiration_date": "2024-02-15",
				"purchase_price": 40.0, "sale_price": 55.0, "profit": 15.0,
				"whatsapp_number": "50211112222", "status": "active",
			}},
		})
	})
	mux.HandleFunc("POST /api/memberships", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		created = append(created, body)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	mux.HandleFunc("GET /api/reports/detailed", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startDate") == "" || r.URL.Query().Get("endDate") == "" {
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "rango incompleto"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"details": []map[string]any{{
				"client_name": "Ana", "service_name": "Netflix",
				"purchase_date": "2024-01-15", "purchase_price": 40.0,
				"sale_price": 55.0, "profit": 15.0, "margin_percentage": 27.27,
			}},
			"summary": map[string]any{
				"totalCosts": 40.0, "totalRevenue": 55.0,
				"netProfit": 15.0, "overallMargin": 27.27,
			},
		})
	})
	mux.HandleFunc("GET /api/reports/summary", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{"overall": map[string]any{
				"totalRevenue": 55.0, "totalCosts": 40.0, "netProfit": 15.0,
			}},
		})
	})
	mux.HandleFunc("GET /api/memberships/stats/summary", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"active": 1, "expiring": 0, "expired": 0},
		})
	})
	mux.HandleFunc("GET /api/notifications/pending", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"id": 1, "client_name": "Ana", "service_name": "Netflix",
				"expiration_date": "2024-02-15", "days_until_expiry": 2,
				"whatsapp_number": "50211112222",
			}},
		})
	})
	mux.HandleFunc("POST /api/notifications/send", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"whatsappUrl": "https://wa.me/50211112222?text=hola"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &created
}

func newPanel(t *testing.T, upstreamURL string) (http.Handler, *health.Monitor) {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: time.Millisecond, MaxConcurrency: 4}

	client := apiclient.NewClient(
		&http.Client{Timeout: 5 * time.Second},
		upstreamURL+"/api",
		upstreamURL+"/",
		resilience.NewCircuitBreaker("membership-api-test"),
		cfg,
		logger,
	)

	monitor := health.NewMonitor(client, 2*time.Second, time.Minute, metrics, logger)

	router := handler.NewRouter(handler.Deps{
		Memberships:   service.NewMembershipService(client, metrics, logger),
		Recharges:     service.NewRechargeService(client, metrics, logger),
		Reports:       service.NewReportService(client, client, cache.New[*domain.HeadlineStats](time.Minute), metrics, logger),
		Notifications: service.NewNotificationService(client, metrics, logger),
		Monitor:       monitor,
		Flashes:       handler.NewFlashStore(cache.New[domain.Flash](time.Minute)),
		Metrics:       metrics,
		Logger:        logger,
	})
	return router, monitor
}

func TestMembershipListRendersUpstreamData(t *testing.T) {
	server, _ := newUpstream(t)
	router, _ := newPanel(t, server.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memberships", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Ana", "Netflix", "Q 55.00", "Activo", "15/01/2024"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestMembershipCreateReachesUpstream(t *testing.T) {
	server, created := newUpstream(t)
	router, _ := newPanel(t, server.URL)

	form := url.Values{
		"client_id":      {"c9"},
		"client_name":    {"Luis"},
		"service_name":   {"Disney+"},
		"duration":       {"3"},
		"purchase_date":  {"2024-03-01"},
		"purchase_price": {"30"},
		"sale_price":     {"45"},
	}
	req := httptest.NewRequest(http.MethodPost, "/memberships", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(*created) != 1 {
		t.Fatalf("upstream received %d create calls", len(*created))
	}
	got := (*created)[0]
	if got["client_name"] != "Luis" {
		t.Errorf("client_name = %v", got["client_name"])
	}
	// Auto-filled expiration travels with the payload.
	if got["expiration_date"] != "2024-06-01" {
		t.Errorf("expiration_date = %v", got["expiration_date"])
	}
}

func TestReportFlow(t *testing.T) {
	server, _ := newUpstream(t)
	router, _ := newPanel(t, server.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/reports?generate=1&start_date=2024-01-01&end_date=2024-01-31", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Q 15.00", "27.27%", "Membresías Activas"} {
		if !strings.Contains(body, want) {
			t.Errorf("report page missing %q", want)
		}
	}
}

func TestNotificationSendRedirectsToPreparedLink(t *testing.T) {
	server, _ := newUpstream(t)
	router, _ := newPanel(t, server.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notifications/1/send", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "https://wa.me/50211112222?text=hola" {
		t.Errorf("Location = %q", got)
	}
}

func TestHealthzReflectsMonitorProbe(t *testing.T) {
	server, _ := newUpstream(t)
	router, monitor := newPanel(t, server.URL)

	monitor.Check(context.Background())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	raw, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(raw), `"state":"connected"`) {
		t.Errorf("healthz = %s", raw)
	}
}

func TestUpstreamDownRendersLoadFailedState(t *testing.T) {
	server, _ := newUpstream(t)
	router, _ := newPanel(t, server.URL)
	server.Close()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memberships", nil))

	// The page still renders; the table shows the load failure.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error al cargar membresías") {
		t.Error("load-failed state missing")
	}
}
