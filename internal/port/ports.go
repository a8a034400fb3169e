// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the concrete upstream API adapter.
package port

import (
	"context"

	"github.com/membresiasgt/panel-go/internal/domain"
)

// MembershipStore covers all membership operations on the upstream API.
type MembershipStore interface {
	ListMemberships(ctx context.Context, filter domain.MembershipFilter) ([]domain.Membership, error)
	GetMembership(ctx context.Context, id int64) (*domain.Membership, error)
	CreateMembership(ctx context.Context, input *domain.MembershipInput) error
	UpdateMembership(ctx context.Context, id int64, input *domain.MembershipInput) error
	DeleteMembership(ctx context.Context, id int64) error
	GetMembershipStats(ctx context.Context) (*domain.MembershipStats, error)
}

// RechargeStore covers recharge operations.
type RechargeStore interface {
	ListRecharges(ctx context.Context) ([]domain.Recharge, error)
	CreateRecharge(ctx context.Context, input *domain.RechargeInput) error
	DeleteRecharge(ctx context.Context, id int64) error
}

// ReportStore covers report queries. ExportReport returns the upstream
// file stream untouched; the panel forwards it to the browser.
type ReportStore interface {
	GetOverallSummary(ctx context.Context) (*domain.OverallSummary, error)
	GetDetailedReport(ctx context.Context, rng domain.DateRange) (*domain.DetailedReport, error)
	ExportReport(ctx context.Context, rng domain.DateRange) (*domain.ExportFile, error)
}

// NotificationStore covers expiry notifications.
type NotificationStore interface {
	ListPendingNotifications(ctx context.Context) ([]domain.NotificationCandidate, error)
	PrepareNotification(ctx context.Context, membershipID int64) (*domain.PreparedNotification, error)
}

// HealthPinger probes the upstream host root.
type HealthPinger interface {
	Ping(ctx context.Context) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
