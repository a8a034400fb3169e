package handler

import (
	"net/http"
	"strconv"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/health"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/service"

	"go.uber.org/zap"
)

type rechargesView struct {
	Recharges  []domain.Recharge
	LoadFailed bool
	Form       *domain.RechargeInput
}

// RechargesPage renders the recharge table and the registration form.
func RechargesPage(svc *service.RechargeService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := rechargesView{
			Form: &domain.RechargeInput{RechargeDate: domain.Today()},
		}

		recharges, err := svc.List(r.Context())
		if err != nil {
			logger.Warn("recharge list failed", zap.Error(err))
			view.LoadFailed = true
		}
		view.Recharges = recharges

		metrics.IncrPageRendered("recharges")
		renderPage(w, http.StatusOK, "recharges.html", pageData{
			Title:     "Recargas",
			ActiveTab: "recharges",
			Conn:      mon.Status(),
			Flash:     flashes.Pop(w, r),
			Data:      view,
		}, logger)
	}
}

// RechargeCreate registers a top-up and redirects back to the list. A
// failed submit re-renders the page with the typed values intact instead
// of redirecting.
func RechargeCreate(svc *service.RechargeService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		input := &domain.RechargeInput{
			ClientID:     r.PostFormValue("client_id"),
			RechargeDate: r.PostFormValue("recharge_date"),
			Note:         r.PostFormValue("note"),
		}

		amount, err := domain.ParseAmount(r.PostFormValue("amount"))
		if err == nil {
			input.Amount = amount
			err = svc.Create(r.Context(), input)
		}
		if err != nil {
			logger.Warn("recharge create failed", zap.Error(err))
			flash := flashForError(err)

			view := rechargesView{Form: input}
			recharges, listErr := svc.List(r.Context())
			if listErr != nil {
				view.LoadFailed = true
			}
			view.Recharges = recharges

			metrics.IncrPageRendered("recharges")
			renderPage(w, http.StatusOK, "recharges.html", pageData{
				Title:     "Recargas",
				ActiveTab: "recharges",
				Conn:      mon.Status(),
				Flash:     &flash,
				Data:      view,
			}, logger)
			return
		}

		flashes.Put(w, flashSuccess, "Recarga registrada exitosamente")
		http.Redirect(w, r, "/recharges", http.StatusSeeOther)
	}
}

// RechargeDeleteConfirm renders the confirmation page for one recharge.
func RechargeDeleteConfirm(mon *health.Monitor, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		renderPage(w, http.StatusOK, "confirm.html", pageData{
			Title:     "Confirmar Eliminación",
			ActiveTab: "recharges",
			Conn:      mon.Status(),
			Data: confirmView{
				Prompt:    "¿Estás seguro de eliminar esta recarga?",
				ActionURL: "/recharges/" + strconv.FormatInt(id, 10) + "/delete",
				CancelURL: "/recharges",
			},
		}, logger)
	}
}

// RechargeDelete performs the confirmed deletion.
func RechargeDelete(svc *service.RechargeService, flashes *FlashStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			failAndRedirect(w, r, flashes, logger, err, "/recharges")
			return
		}

		flashes.Put(w, flashSuccess, "Recarga eliminada")
		http.Redirect(w, r, "/recharges", http.StatusSeeOther)
	}
}
