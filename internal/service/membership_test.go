package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/service"

	"go.uber.org/zap"
)

type fakeMembershipStore struct {
	memberships []domain.Membership
	stats       domain.MembershipStats
	err         error

	createdInput *domain.MembershipInput
	updatedID    int64
	updatedInput *domain.MembershipInput
	deletedID    int64
	lastFilter   domain.MembershipFilter
}

func (f *fakeMembershipStore) ListMemberships(_ context.Context, filter domain.MembershipFilter) ([]domain.Membership, error) {
	f.lastFilter = filter
	return f.memberships, f.err
}

func (f *fakeMembershipStore) GetMembership(_ context.Context, id int64) (*domain.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.memberships {
		if f.memberships[i].ID == id {
			return &f.memberships[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "membership", ID: "?"}
}

func (f *fakeMembershipStore) CreateMembership(_ context.Context, input *domain.MembershipInput) error {
	f.createdInput = input
	return f.err
}

func (f *fakeMembershipStore) UpdateMembership(_ context.Context, id int64, input *domain.MembershipInput) error {
	f.updatedID = id
	f.updatedInput = input
	return f.err
}

func (f *fakeMembershipStore) DeleteMembership(_ context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func (f *fakeMembershipStore) GetMembershipStats(_ context.Context) (*domain.MembershipStats, error) {
	return &f.stats, f.err
}

func newMembershipService(store *fakeMembershipStore) *service.MembershipService {
	return service.NewMembershipService(store, observability.NewMetrics(), zap.NewNop())
}

func TestMembershipSave_CreateWhenNoEditID(t *testing.T) {
	store := &fakeMembershipStore{}
	svc := newMembershipService(store)

	created, err := svc.Save(context.Background(), nil, &domain.MembershipInput{
		ClientID:       "c1",
		Duration:       3,
		PurchaseDate:   "2024-01-15",
		ExpirationDate: "2024-04-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if store.createdInput == nil || store.updatedInput != nil {
		t.Error("expected create call, not update")
	}
}

func TestMembershipSave_UpdateWhenEditIDStaged(t *testing.T) {
	store := &fakeMembershipStore{}
	svc := newMembershipService(store)

	id := int64(42)
	created, err := svc.Save(context.Background(), &id, &domain.MembershipInput{
		Duration:       1,
		PurchaseDate:   "2024-01-15",
		ExpirationDate: "2024-02-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for update")
	}
	if store.updatedID != 42 || store.createdInput != nil {
		t.Errorf("expected update of id 42, got update=%d create=%v", store.updatedID, store.createdInput)
	}
}

func TestMembershipSave_AutoFillsExpiration(t *testing.T) {
	store := &fakeMembershipStore{}
	svc := newMembershipService(store)

	_, err := svc.Save(context.Background(), nil, &domain.MembershipInput{
		Duration:     1,
		PurchaseDate: "2024-01-31",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Month-end overflow clamps instead of rolling over.
	if got := store.createdInput.ExpirationDate; got != "2024-02-29" {
		t.Errorf("expiration = %s, want 2024-02-29", got)
	}
}

func TestMembershipSave_KeepsExplicitExpiration(t *testing.T) {
	store := &fakeMembershipStore{}
	svc := newMembershipService(store)

	_, err := svc.Save(context.Background(), nil, &domain.MembershipInput{
		Duration:       2,
		PurchaseDate:   "2024-01-15",
		ExpirationDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.createdInput.ExpirationDate; got != "2024-06-01" {
		t.Errorf("expiration = %s, auto-fill must not override the form", got)
	}
}

func TestMembershipSave_RejectsBadDuration(t *testing.T) {
	svc := newMembershipService(&fakeMembershipStore{})

	_, err := svc.Save(context.Background(), nil, &domain.MembershipInput{Duration: 0})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMembershipSave_PropagatesUpstreamError(t *testing.T) {
	store := &fakeMembershipStore{err: &domain.ErrUpstream{Operation: "create_membership", Message: "cliente duplicado"}}
	svc := newMembershipService(store)

	_, err := svc.Save(context.Background(), nil, &domain.MembershipInput{
		Duration:       1,
		PurchaseDate:   "2024-01-15",
		ExpirationDate: "2024-02-15",
	})
	var upstream *domain.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestMembershipList_PassesFilter(t *testing.T) {
	store := &fakeMembershipStore{}
	svc := newMembershipService(store)

	filter := domain.MembershipFilter{Status: domain.StatusExpiring, Search: "netflix"}
	if _, err := svc.List(context.Background(), filter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFilter != filter {
		t.Errorf("filter = %+v", store.lastFilter)
	}
}

func TestExpirationFor(t *testing.T) {
	svc := newMembershipService(&fakeMembershipStore{})

	got, err := svc.ExpirationFor("2023-01-31", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2023-02-28" {
		t.Errorf("got %s", got)
	}

	if _, err := svc.ExpirationFor("2023-01-31", 0); err == nil {
		t.Error("expected validation error for zero duration")
	}
}
