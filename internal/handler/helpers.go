// Package handler wires the HTTP surface: chi routes, server-rendered
// pages, and the small JSON endpoints the form scripts call. Mutations
// follow POST-redirect-GET; errors become flash banners on the page the
// operator is sent back to.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/membresiasgt/panel-go/internal/domain"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashWarning = "warning"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// flashForError translates a failure into the banner the operator sees.
// Validation problems are warnings; everything else is a danger banner
// with copy matching the failure mode.
func flashForError(err error) domain.Flash {
	var (
		validation  *domain.ErrValidation
		upstream    *domain.ErrUpstream
		notFound    *domain.ErrNotFound
		circuitOpen *domain.ErrCircuitOpen
		timeout     *domain.ErrTimeout
	)

	switch {
	case errors.As(err, &validation):
		return domain.Flash{Level: flashWarning, Message: validation.Message}
	case errors.As(err, &upstream):
		return domain.Flash{Level: flashDanger, Message: upstream.Error()}
	case errors.As(err, &notFound):
		return domain.Flash{Level: flashDanger, Message: "El registro solicitado no existe"}
	case errors.As(err, &circuitOpen):
		return domain.Flash{Level: flashDanger, Message: "El servidor no está disponible en este momento. Intenta de nuevo en unos segundos."}
	case errors.As(err, &timeout):
		return domain.Flash{Level: flashDanger, Message: "Tiempo de espera agotado. El backend puede estar dormido."}
	default:
		return domain.Flash{Level: flashDanger, Message: "Error de conexión con el servidor"}
	}
}

// failAndRedirect stages the error flash and sends the operator back.
func failAndRedirect(w http.ResponseWriter, r *http.Request, flashes *FlashStore, logger *zap.Logger, err error, backURL string) {
	logger.Warn("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	flash := flashForError(err)
	flashes.Put(w, flash.Level, flash.Message)
	http.Redirect(w, r, backURL, http.StatusSeeOther)
}
