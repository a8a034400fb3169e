// Package service implements the panel's use cases on top of the store
// ports. Services validate input, fill convenience defaults, and record
// metrics; all business rules proper live upstream.
package service

import (
	"context"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service")

// MembershipService owns list/search/create/update/delete/view for
// membership records, including the dual-mode save.
type MembershipService struct {
	store   port.MembershipStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewMembershipService creates the membership service.
func NewMembershipService(store port.MembershipStore, metrics *observability.Metrics, logger *zap.Logger) *MembershipService {
	return &MembershipService{store: store, metrics: metrics, logger: logger}
}

// List fetches memberships, optionally narrowed by status and free text.
func (s *MembershipService) List(ctx context.Context, filter domain.MembershipFilter) ([]domain.Membership, error) {
	ctx, span := tracer.Start(ctx, "MembershipService.List")
	defer span.End()

	start := time.Now()
	memberships, err := s.store.ListMemberships(ctx, filter)
	s.metrics.RecordUpstreamDuration("list_memberships", time.Since(start))
	if err != nil {
		s.metrics.IncrUpstreamError("list_memberships")
		return nil, err
	}
	s.metrics.IncrUpstreamSuccess()
	return memberships, nil
}

// Get fetches one membership for the edit form or the detail view.
func (s *MembershipService) Get(ctx context.Context, id int64) (*domain.Membership, error) {
	ctx, span := tracer.Start(ctx, "MembershipService.Get")
	defer span.End()
	span.SetAttributes(attribute.Int64("membership.id", id))

	m, err := s.store.GetMembership(ctx, id)
	if err != nil {
		s.metrics.IncrUpstreamError("get_membership")
		return nil, err
	}
	s.metrics.IncrUpstreamSuccess()
	return m, nil
}

// Save creates or updates a membership depending on whether an edit id is
// staged. When the form left expiration empty, it is auto-filled from
// purchase date + duration. Returns true when a new record was created.
func (s *MembershipService) Save(ctx context.Context, editID *int64, input *domain.MembershipInput) (bool, error) {
	ctx, span := tracer.Start(ctx, "MembershipService.Save")
	defer span.End()

	if input.Duration < 1 {
		return false, &domain.ErrValidation{Field: "duration", Message: "la duración debe ser al menos 1 mes"}
	}
	if input.ExpirationDate == "" && input.PurchaseDate != "" {
		exp, err := domain.AddMonthsClamp(input.PurchaseDate, input.Duration)
		if err != nil {
			return false, err
		}
		input.ExpirationDate = exp
	}

	start := time.Now()
	var err error
	if editID != nil {
		span.SetAttributes(attribute.Int64("membership.id", *editID))
		err = s.store.UpdateMembership(ctx, *editID, input)
		s.metrics.RecordUpstreamDuration("update_membership", time.Since(start))
	} else {
		err = s.store.CreateMembership(ctx, input)
		s.metrics.RecordUpstreamDuration("create_membership", time.Since(start))
	}
	if err != nil {
		op := "create_membership"
		if editID != nil {
			op = "update_membership"
		}
		s.metrics.IncrUpstreamError(op)
		return false, err
	}

	s.metrics.IncrUpstreamSuccess()
	s.logger.Info("membership saved",
		zap.Bool("created", editID == nil),
		zap.String("client_id", input.ClientID),
		zap.String("service", input.ServiceName),
	)
	return editID == nil, nil
}

// Delete removes a membership. The confirmation step happens at the
// handler boundary before this is ever called.
func (s *MembershipService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "MembershipService.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("membership.id", id))

	if err := s.store.DeleteMembership(ctx, id); err != nil {
		s.metrics.IncrUpstreamError("delete_membership")
		return err
	}
	s.metrics.IncrUpstreamSuccess()
	s.logger.Info("membership deleted", zap.Int64("id", id))
	return nil
}

// ExpirationFor computes the expiration auto-fill preview: purchase date
// advanced by duration calendar months, clamped to month end.
func (s *MembershipService) ExpirationFor(purchaseDate string, duration int) (string, error) {
	if duration < 1 {
		return "", &domain.ErrValidation{Field: "duration", Message: "la duración debe ser al menos 1 mes"}
	}
	return domain.AddMonthsClamp(purchaseDate, duration)
}
