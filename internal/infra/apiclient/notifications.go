package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/membresiasgt/panel-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// --- Notifications (implements port.NotificationStore) ---

// ListPendingNotifications fetches memberships inside the upstream
// expiry-warning window.
func (c *Client) ListPendingNotifications(ctx context.Context) ([]domain.NotificationCandidate, error) {
	ctx, span := tracer.Start(ctx, "API.ListPendingNotifications")
	defer span.End()

	env, err := c.get(ctx, "pending_notifications", "/notifications/pending")
	if err != nil {
		return nil, err
	}

	candidates := []domain.NotificationCandidate{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &candidates); err != nil {
			return nil, fmt.Errorf("failed to decode pending notifications: %w", err)
		}
	}
	return candidates, nil
}

// PrepareNotification asks the upstream to build the WhatsApp deep link
// for a membership. The message text is composed entirely upstream.
func (c *Client) PrepareNotification(ctx context.Context, membershipID int64) (*domain.PreparedNotification, error) {
	ctx, span := tracer.Start(ctx, "API.PrepareNotification")
	defer span.End()
	span.SetAttributes(attribute.Int64("membership.id", membershipID))

	payload := struct {
		MembershipID int64 `json:"membershipId"`
	}{MembershipID: membershipID}

	var env *envelope
	_, err := c.cb.Execute(func() (any, error) {
		var reqErr error
		env, reqErr = c.doRequest(ctx, http.MethodPost, "/notifications/send", payload)
		return nil, reqErr
	})
	if err != nil {
		return nil, c.wrapTransport("send_notification", err)
	}
	if !env.Success {
		return nil, &domain.ErrUpstream{Operation: "send_notification", Message: env.Message}
	}

	var prepared domain.PreparedNotification
	if err := json.Unmarshal(env.Data, &prepared); err != nil {
		return nil, fmt.Errorf("failed to decode notification link: %w", err)
	}
	if prepared.WhatsappURL == "" {
		return nil, &domain.ErrUpstream{Operation: "send_notification", Message: "respuesta sin enlace de WhatsApp"}
	}
	return &prepared, nil
}
