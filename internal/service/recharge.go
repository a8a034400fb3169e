package service

import (
	"context"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// RechargeService owns list/create/delete for prepaid recharges.
type RechargeService struct {
	store   port.RechargeStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewRechargeService creates the recharge service.
func NewRechargeService(store port.RechargeStore, metrics *observability.Metrics, logger *zap.Logger) *RechargeService {
	return &RechargeService{store: store, metrics: metrics, logger: logger}
}

// List fetches all recharges.
func (s *RechargeService) List(ctx context.Context) ([]domain.Recharge, error) {
	ctx, span := tracer.Start(ctx, "RechargeService.List")
	defer span.End()

	start := time.Now()
	recharges, err := s.store.ListRecharges(ctx)
	s.metrics.RecordUpstreamDuration("list_recharges", time.Since(start))
	if err != nil {
		s.metrics.IncrUpstreamError("list_recharges")
		return nil, err
	}
	s.metrics.IncrUpstreamSuccess()
	return recharges, nil
}

// Create registers a top-up. The recharge date defaults to today when the
// form leaves it empty.
func (s *RechargeService) Create(ctx context.Context, input *domain.RechargeInput) error {
	ctx, span := tracer.Start(ctx, "RechargeService.Create")
	defer span.End()

	if input.ClientID == "" {
		return &domain.ErrValidation{Field: "client_id", Message: "el ID de cliente es obligatorio"}
	}
	if input.Amount <= 0 {
		return &domain.ErrValidation{Field: "amount", Message: "el monto debe ser mayor que cero"}
	}
	if input.RechargeDate == "" {
		input.RechargeDate = domain.Today()
	}

	if err := s.store.CreateRecharge(ctx, input); err != nil {
		s.metrics.IncrUpstreamError("create_recharge")
		return err
	}
	s.metrics.IncrUpstreamSuccess()
	s.logger.Info("recharge created",
		zap.String("client_id", input.ClientID),
		zap.Float64("amount", input.Amount),
	)
	return nil
}

// Delete removes a recharge after the handler's confirmation step.
func (s *RechargeService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "RechargeService.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("recharge.id", id))

	if err := s.store.DeleteRecharge(ctx, id); err != nil {
		s.metrics.IncrUpstreamError("delete_recharge")
		return err
	}
	s.metrics.IncrUpstreamSuccess()
	s.logger.Info("recharge deleted", zap.Int64("id", id))
	return nil
}
