package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/membresiasgt/panel-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// --- Memberships (implements port.MembershipStore) ---

// ListMemberships fetches memberships. An empty filter hits the plain list
// endpoint; any filter value switches to the search endpoint.
func (c *Client) ListMemberships(ctx context.Context, filter domain.MembershipFilter) ([]domain.Membership, error) {
	ctx, span := tracer.Start(ctx, "API.ListMemberships")
	defer span.End()

	path := "/memberships"
	if !filter.IsZero() {
		q := url.Values{}
		if filter.Status != "" {
			q.Set("status", filter.Status)
		}
		if filter.Search != "" {
			q.Set("search", filter.Search)
		}
		path = "/memberships/search/filter?" + q.Encode()
		span.SetAttributes(
			attribute.String("filter.status", filter.Status),
			attribute.String("filter.search", filter.Search),
		)
	}

	env, err := c.get(ctx, "list_memberships", path)
	if err != nil {
		return nil, err
	}

	memberships := []domain.Membership{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &memberships); err != nil {
			return nil, fmt.Errorf("failed to decode memberships: %w", err)
		}
	}
	return memberships, nil
}

// GetMembership fetches a single membership by id.
func (c *Client) GetMembership(ctx context.Context, id int64) (*domain.Membership, error) {
	ctx, span := tracer.Start(ctx, "API.GetMembership")
	defer span.End()
	span.SetAttributes(attribute.Int64("membership.id", id))

	env, err := c.get(ctx, "get_membership", "/memberships/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, &domain.ErrNotFound{Resource: "membership", ID: strconv.FormatInt(id, 10)}
	}

	var m domain.Membership
	if err := json.Unmarshal(env.Data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode membership: %w", err)
	}
	return &m, nil
}

// CreateMembership registers a new membership.
func (c *Client) CreateMembership(ctx context.Context, input *domain.MembershipInput) error {
	ctx, span := tracer.Start(ctx, "API.CreateMembership")
	defer span.End()

	return c.send(ctx, "create_membership", http.MethodPost, "/memberships", input)
}

// UpdateMembership replaces an existing membership.
func (c *Client) UpdateMembership(ctx context.Context, id int64, input *domain.MembershipInput) error {
	ctx, span := tracer.Start(ctx, "API.UpdateMembership")
	defer span.End()
	span.SetAttributes(attribute.Int64("membership.id", id))

	return c.send(ctx, "update_membership", http.MethodPut, "/memberships/"+strconv.FormatInt(id, 10), input)
}

// DeleteMembership removes a membership.
func (c *Client) DeleteMembership(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "API.DeleteMembership")
	defer span.End()
	span.SetAttributes(attribute.Int64("membership.id", id))

	return c.send(ctx, "delete_membership", http.MethodDelete, "/memberships/"+strconv.FormatInt(id, 10), nil)
}

// GetMembershipStats fetches the per-status headcount.
func (c *Client) GetMembershipStats(ctx context.Context) (*domain.MembershipStats, error) {
	ctx, span := tracer.Start(ctx, "API.GetMembershipStats")
	defer span.End()

	env, err := c.get(ctx, "membership_stats", "/memberships/stats/summary")
	if err != nil {
		return nil, err
	}

	var stats domain.MembershipStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode membership stats: %w", err)
	}
	return &stats, nil
}
