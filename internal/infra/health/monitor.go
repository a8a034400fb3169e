// Package health implements the connectivity monitor: a background probe
// against the upstream API host that drives the tri-state indicator shown
// on every page.
package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/port"

	"go.uber.org/zap"
)

// User-facing status copy. The timeout message is deliberately distinct
// from a generic disconnect: the backend hibernates on its free-tier host
// and a cold start can take close to a minute.
const (
	msgConnecting = "Conectando..."
	msgConnected  = "Conectado"
	msgTimeout    = "Tiempo agotado (Backend dormido)"
	msgError      = "Desconectado"

	coldStartWarning = "El backend puede estar dormido. Espera 30 segundos y vuelve a intentar."
)

// Monitor polls the upstream host and keeps the latest connection status.
// It shares no state with the data loaders beyond this snapshot.
type Monitor struct {
	pinger   port.HealthPinger
	timeout  time.Duration
	interval time.Duration
	metrics  *observability.Metrics
	logger   *zap.Logger

	mu     sync.RWMutex
	status domain.ConnectionStatus
}

// NewMonitor creates a monitor. timeout bounds each probe (60s in
// production, covering cold starts); interval is the repeat period (30s).
func NewMonitor(pinger port.HealthPinger, timeout, interval time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Monitor {
	return &Monitor{
		pinger:   pinger,
		timeout:  timeout,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
		status: domain.ConnectionStatus{
			State:   domain.StateConnecting,
			Message: msgConnecting,
		},
	}
}

// Check runs a single probe and updates the stored status.
func (m *Monitor) Check(ctx context.Context) domain.ConnectionStatus {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	err := m.pinger.Ping(ctx)
	latency := time.Since(start)

	status := domain.ConnectionStatus{
		LatencyMs:   latency.Milliseconds(),
		LastChecked: time.Now().Format(time.RFC3339),
	}

	switch {
	case err == nil:
		status.State = domain.StateConnected
		status.Message = msgConnected
	case errors.Is(err, context.DeadlineExceeded):
		status.State = domain.StateDisconnectedTimeout
		status.Message = msgTimeout
		status.Warning = coldStartWarning
		m.logger.Warn("health probe timed out", zap.Duration("after", latency))
	default:
		status.State = domain.StateDisconnectedError
		status.Message = msgError
		m.logger.Warn("health probe failed", zap.Error(err))
	}

	m.metrics.IncrHealthCheck(status.State)

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()

	return status
}

// Run probes once immediately, then on every interval tick until ctx is
// cancelled. Meant to run in its own goroutine for the process lifetime.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Status returns the latest snapshot without probing.
func (m *Monitor) Status() domain.ConnectionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
