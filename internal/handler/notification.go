package handler

import (
	"net/http"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/health"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/service"

	"go.uber.org/zap"
)

type notificationsView struct {
	Candidates []domain.NotificationCandidate
	LoadFailed bool
}

// NotificationsPage renders the expiry-warning queue.
func NotificationsPage(svc *service.NotificationService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var view notificationsView

		candidates, err := svc.ListPending(r.Context())
		if err != nil {
			logger.Warn("pending notifications fetch failed", zap.Error(err))
			view.LoadFailed = true
		}
		view.Candidates = candidates

		metrics.IncrPageRendered("notifications")
		renderPage(w, http.StatusOK, "notifications.html", pageData{
			Title:     "Notificaciones",
			ActiveTab: "notifications",
			Conn:      mon.Status(),
			Flash:     flashes.Pop(w, r),
			Data:      view,
		}, logger)
	}
}

// NotificationSend asks the upstream for the WhatsApp deep link and sends
// the operator's browser straight to it. Delivery stays manual: the link
// opens a pre-filled chat, nothing is sent on the operator's behalf.
func NotificationSend(svc *service.NotificationService, flashes *FlashStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		prepared, err := svc.Send(r.Context(), id)
		if err != nil {
			failAndRedirect(w, r, flashes, logger, err, "/notifications")
			return
		}

		// Shown when the operator comes back from the WhatsApp tab.
		flashes.Put(w, flashSuccess, "Notificación preparada, revisa la pestaña de WhatsApp")
		http.Redirect(w, r, prepared.WhatsappURL, http.StatusSeeOther)
	}
}
