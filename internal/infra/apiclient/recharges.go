package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/membresiasgt/panel-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// --- Recharges (implements port.RechargeStore) ---

// ListRecharges fetches all recharges.
func (c *Client) ListRecharges(ctx context.Context) ([]domain.Recharge, error) {
	ctx, span := tracer.Start(ctx, "API.ListRecharges")
	defer span.End()

	env, err := c.get(ctx, "list_recharges", "/recharges")
	if err != nil {
		return nil, err
	}

	recharges := []domain.Recharge{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &recharges); err != nil {
			return nil, fmt.Errorf("failed to decode recharges: %w", err)
		}
	}
	return recharges, nil
}

// CreateRecharge registers a prepaid top-up.
func (c *Client) CreateRecharge(ctx context.Context, input *domain.RechargeInput) error {
	ctx, span := tracer.Start(ctx, "API.CreateRecharge")
	defer span.End()

	return c.send(ctx, "create_recharge", http.MethodPost, "/recharges", input)
}

// DeleteRecharge removes a recharge.
func (c *Client) DeleteRecharge(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "API.DeleteRecharge")
	defer span.End()
	span.SetAttributes(attribute.Int64("recharge.id", id))

	return c.send(ctx, "delete_recharge", http.MethodDelete, "/recharges/"+strconv.FormatInt(id, 10), nil)
}
