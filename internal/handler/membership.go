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

// membershipsView backs the memberships page: the table, the filter bar,
// and the dual-mode form. EditID is non-empty while an edit is staged.
type membershipsView struct {
	Memberships []domain.Membership
	LoadFailed  bool
	Filter      domain.MembershipFilter
	Form        *domain.MembershipInput
	EditID      string
}

type membershipDetailView struct {
	Membership *domain.Membership
}

// confirmView backs the generic confirmation page shown before any
// destructive action.
type confirmView struct {
	Prompt    string
	ActionURL string
	CancelURL string
}

// MembershipsPage renders the membership list with the create-mode form.
// Status and search narrow the table via query parameters.
func MembershipsPage(svc *service.MembershipService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.MembershipFilter{
			Status: r.URL.Query().Get("status"),
			Search: r.URL.Query().Get("search"),
		}

		view := membershipsView{
			Filter: filter,
			Form:   &domain.MembershipInput{Duration: 1, PurchaseDate: domain.Today()},
		}

		memberships, err := svc.List(r.Context(), filter)
		if err != nil {
			logger.Warn("membership list failed", zap.Error(err))
			view.LoadFailed = true
		}
		view.Memberships = memberships

		metrics.IncrPageRendered("memberships")
		renderPage(w, http.StatusOK, "memberships.html", pageData{
			Title:     "Membresías",
			ActiveTab: "memberships",
			Conn:      mon.Status(),
			Flash:     flashes.Pop(w, r),
			Data:      view,
		}, logger)
	}
}

// MembershipEditPage renders the same page with the form pre-filled and
// the edit id staged in a hidden field.
func MembershipEditPage(svc *service.MembershipService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		m, err := svc.Get(r.Context(), id)
		if err != nil {
			failAndRedirect(w, r, flashes, logger, err, "/memberships")
			return
		}

		view := membershipsView{
			EditID: strconv.FormatInt(m.ID, 10),
			Form: &domain.MembershipInput{
				ClientID:       m.ClientID,
				ClientName:     m.ClientName,
				ServiceName:    m.ServiceName,
				Provider:       m.Provider,
				Duration:       m.Duration,
				PurchaseDate:   m.PurchaseDate,
				ExpirationDate: m.ExpirationDate,
				PurchasePrice:  m.PurchasePrice,
				SalePrice:      m.SalePrice,
				AccessEmail:    m.AccessEmail,
				AccessPassword: m.AccessPassword,
				SecurityPIN:    m.SecurityPIN,
				ProfileName:    m.ProfileName,
				WhatsappNumber: m.WhatsappNumber,
			},
		}

		memberships, listErr := svc.List(r.Context(), domain.MembershipFilter{})
		if listErr != nil {
			view.LoadFailed = true
		}
		view.Memberships = memberships

		metrics.IncrPageRendered("memberships")
		renderPage(w, http.StatusOK, "memberships.html", pageData{
			Title:     "Editar Membresía",
			ActiveTab: "memberships",
			Conn:      mon.Status(),
			Flash:     flashes.Pop(w, r),
			Data:      view,
		}, logger)
	}
}

// MembershipDetailPage renders the read-only credential view of one record.
func MembershipDetailPage(svc *service.MembershipService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		m, err := svc.Get(r.Context(), id)
		if err != nil {
			failAndRedirect(w, r, flashes, logger, err, "/memberships")
			return
		}

		metrics.IncrPageRendered("membership_detail")
		renderPage(w, http.StatusOK, "membership_detail.html", pageData{
			Title:     "Detalle de Membresía",
			ActiveTab: "memberships",
			Conn:      mon.Status(),
			Flash:     flashes.Pop(w, r),
			Data:      membershipDetailView{Membership: m},
		}, logger)
	}
}

// MembershipSave handles the dual-mode form post: a staged edit_id turns
// the submit into an update, otherwise a new record is created. A failed
// submit re-renders the page in place with the typed values intact; only
// successes go through the redirect.
func MembershipSave(svc *service.MembershipService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		input, err := membershipInputFromForm(r)
		editRaw := r.PostFormValue("edit_id")

		var editID *int64
		if editRaw != "" {
			id, parseErr := strconv.ParseInt(editRaw, 10, 64)
			if parseErr != nil {
				http.Error(w, "bad edit id", http.StatusBadRequest)
				return
			}
			editID = &id
		}

		var created bool
		if err == nil {
			created, err = svc.Save(r.Context(), editID, input)
		}
		if err != nil {
			logger.Warn("membership save failed", zap.Error(err))
			flash := flashForError(err)

			view := membershipsView{Form: input, EditID: editRaw}
			memberships, listErr := svc.List(r.Context(), domain.MembershipFilter{})
			if listErr != nil {
				view.LoadFailed = true
			}
			view.Memberships = memberships

			metrics.IncrPageRendered("memberships")
			renderPage(w, http.StatusOK, "memberships.html", pageData{
				Title:     "Membresías",
				ActiveTab: "memberships",
				Conn:      mon.Status(),
				Flash:     &flash,
				Data:      view,
			}, logger)
			return
		}

		if created {
			flashes.Put(w, flashSuccess, "Membresía creada exitosamente")
		} else {
			flashes.Put(w, flashSuccess, "Membresía actualizada exitosamente")
		}
		http.Redirect(w, r, "/memberships", http.StatusSeeOther)
	}
}

// MembershipDeleteConfirm renders the confirmation page that replaces a
// client-side confirm dialog.
func MembershipDeleteConfirm(svc *service.MembershipService, mon *health.Monitor, flashes *FlashStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		m, err := svc.Get(r.Context(), id)
		if err != nil {
			failAndRedirect(w, r, flashes, logger, err, "/memberships")
			return
		}

		renderPage(w, http.StatusOK, "confirm.html", pageData{
			Title:     "Confirmar Eliminación",
			ActiveTab: "memberships",
			Conn:      mon.Status(),
			Data: confirmView{
				Prompt:    "¿Estás seguro de eliminar la membresía de " + m.ClientName + " (" + m.ServiceName + ")?",
				ActionURL: "/memberships/" + strconv.FormatInt(id, 10) + "/delete",
				CancelURL: "/memberships",
			},
		}, logger)
	}
}

// MembershipDelete performs the confirmed deletion.
func MembershipDelete(svc *service.MembershipService, flashes *FlashStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			failAndRedirect(w, r, flashes, logger, err, "/memberships")
			return
		}

		flashes.Put(w, flashSuccess, "Membresía eliminada")
		http.Redirect(w, r, "/memberships", http.StatusSeeOther)
	}
}

// ExpirationPreview computes the expiration auto-fill for the form script:
// GET /api/expiration?purchase_date=2024-01-31&duration=1.
func ExpirationPreview(svc *service.MembershipService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "duración inválida"})
			return
		}

		expiration, err := svc.ExpirationFor(r.URL.Query().Get("purchase_date"), duration)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"expiration_date": expiration})
	}
}

// membershipInputFromForm always returns a populated input, even when a
// numeric field fails to parse, so a failed submit can re-render the form
// with everything the operator typed.
func membershipInputFromForm(r *http.Request) (*domain.MembershipInput, error) {
	input := &domain.MembershipInput{
		ClientID:       r.PostFormValue("client_id"),
		ClientName:     r.PostFormValue("client_name"),
		ServiceName:    r.PostFormValue("service_name"),
		Provider:       r.PostFormValue("provider"),
		PurchaseDate:   r.PostFormValue("purchase_date"),
		ExpirationDate: r.PostFormValue("expiration_date"),
		AccessEmail:    r.PostFormValue("access_email"),
		AccessPassword: r.PostFormValue("access_password"),
		SecurityPIN:    r.PostFormValue("security_pin"),
		ProfileName:    r.PostFormValue("profile_name"),
		WhatsappNumber: r.PostFormValue("whatsapp_number"),
	}

	var firstErr error
	duration, err := strconv.Atoi(r.PostFormValue("duration"))
	if err != nil {
		firstErr = &domain.ErrValidation{Field: "duration", Message: "la duración debe ser un número de meses"}
	}
	input.Duration = duration

	if input.PurchasePrice, err = domain.ParseAmount(r.PostFormValue("purchase_price")); err != nil && firstErr == nil {
		firstErr = err
	}
	if input.SalePrice, err = domain.ParseAmount(r.PostFormValue("sale_price")); err != nil && firstErr == nil {
		firstErr = err
	}
	return input, firstErr
}
