package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/health"
	"github.com/membresiasgt/panel-go/internal/infra/observability"

	"go.uber.org/zap"
)

type fakePinger struct {
	err   error
	block bool // hold until the probe context expires
}

func (f *fakePinger) Ping(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func newMonitor(p *fakePinger, timeout time.Duration) *health.Monitor {
	return health.NewMonitor(p, timeout, time.Minute, observability.NewMetrics(), zap.NewNop())
}

func TestMonitor_InitialStateIsConnecting(t *testing.T) {
	m := newMonitor(&fakePinger{}, time.Second)
	if got := m.Status().State; got != domain.StateConnecting {
		t.Errorf("initial state = %s, want connecting", got)
	}
}

func TestMonitor_Connected(t *testing.T) {
	m := newMonitor(&fakePinger{}, time.Second)
	status := m.Check(context.Background())

	if status.State != domain.StateConnected {
		t.Fatalf("state = %s, want connected", status.State)
	}
	if status.Message != "Conectado" {
		t.Errorf("message = %q", status.Message)
	}
	if status.Warning != "" {
		t.Errorf("unexpected warning %q", status.Warning)
	}
	if m.Status().State != domain.StateConnected {
		t.Error("snapshot not updated")
	}
}

func TestMonitor_Timeout(t *testing.T) {
	m := newMonitor(&fakePinger{block: true}, 30*time.Millisecond)
	status := m.Check(context.Background())

	if status.State != domain.StateDisconnectedTimeout {
		t.Fatalf("state = %s, want disconnected_timeout", status.State)
	}
	// Timeout carries a message distinct from a generic disconnect, plus
	// the cold-start warning.
	if status.Message != "Tiempo agotado (Backend dormido)" {
		t.Errorf("message = %q", status.Message)
	}
	if status.Warning == "" {
		t.Error("expected cold-start warning")
	}
}

func TestMonitor_Error(t *testing.T) {
	m := newMonitor(&fakePinger{err: errors.New("connection refused")}, time.Second)
	status := m.Check(context.Background())

	if status.State != domain.StateDisconnectedError {
		t.Fatalf("state = %s, want disconnected_error", status.State)
	}
	if status.Message != "Desconectado" {
		t.Errorf("message = %q", status.Message)
	}
	if status.Warning != "" {
		t.Errorf("generic disconnect should not carry the cold-start warning, got %q", status.Warning)
	}
}
