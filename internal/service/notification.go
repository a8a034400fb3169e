package service

import (
	"context"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// NotificationService lists expiring memberships and asks the upstream to
// prepare WhatsApp deep links. Message delivery is entirely manual: the
// operator's browser gets sent to the link the server built.
type NotificationService struct {
	store   port.NotificationStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewNotificationService creates the notification service.
func NewNotificationService(store port.NotificationStore, metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{store: store, metrics: metrics, logger: logger}
}

// ListPending fetches memberships inside the expiry-warning window.
func (s *NotificationService) ListPending(ctx context.Context) ([]domain.NotificationCandidate, error) {
	ctx, span := tracer.Start(ctx, "NotificationService.ListPending")
	defer span.End()

	start := time.Now()
	candidates, err := s.store.ListPendingNotifications(ctx)
	s.metrics.RecordUpstreamDuration("pending_notifications", time.Since(start))
	if err != nil {
		s.metrics.IncrUpstreamError("pending_notifications")
		return nil, err
	}
	s.metrics.IncrUpstreamSuccess()
	return candidates, nil
}

// Send asks the upstream for the prepared deep link of one membership.
// Each send gets a correlation id so manual dispatches can be traced in
// the logs.
func (s *NotificationService) Send(ctx context.Context, membershipID int64) (*domain.PreparedNotification, error) {
	ctx, span := tracer.Start(ctx, "NotificationService.Send")
	defer span.End()
	span.SetAttributes(attribute.Int64("membership.id", membershipID))

	correlationID := uuid.New().String()

	prepared, err := s.store.PrepareNotification(ctx, membershipID)
	if err != nil {
		s.metrics.IncrUpstreamError("send_notification")
		s.logger.Warn("notification preparation failed",
			zap.String("correlation_id", correlationID),
			zap.Int64("membership_id", membershipID),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrUpstreamSuccess()
	s.logger.Info("whatsapp notification prepared",
		zap.String("correlation_id", correlationID),
		zap.Int64("membership_id", membershipID),
	)
	return prepared, nil
}
