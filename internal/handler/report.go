package handler

import (
	"io"
	"net/http"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/health"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/service"

	"go.uber.org/zap"
)

type reportsView struct {
	Headline       *domain.HeadlineStats
	HeadlineFailed bool
	Range          domain.DateRange
	Report         *domain.DetailedReport
	LoadFailed     bool
}

// ReportsPage renders the headline cards and, when a complete date range
// is present in the query, the detailed report below them. A half-open
// range renders the page with a warning instead of hitting the upstream.
func ReportsPage(svc *service.ReportService, mon *health.Monitor, flashes *FlashStore, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng := domain.DateRange{
			StartDate: r.URL.Query().Get("start_date"),
			EndDate:   r.URL.Query().Get("end_date"),
		}
		if rng.StartDate == "" && rng.EndDate == "" {
			rng = domain.DateRange{StartDate: domain.DaysAgo(30), EndDate: domain.Today()}
		}

		view := reportsView{Range: rng}

		headline, err := svc.Headline(r.Context())
		if err != nil {
			logger.Warn("headline fetch failed", zap.Error(err))
			view.HeadlineFailed = true
		}
		view.Headline = headline

		flash := flashes.Pop(w, r)
		if r.URL.Query().Has("generate") {
			report, err := svc.Generate(r.Context(), rng)
			switch {
			case err == nil:
				view.Report = report
			default:
				f := flashForError(err)
				flash = &f
				view.LoadFailed = true
			}
		}

		metrics.IncrPageRendered("reports")
		renderPage(w, http.StatusOK, "reports.html", pageData{
			Title:     "Reportes",
			ActiveTab: "reports",
			Conn:      mon.Status(),
			Flash:     flash,
			Data:      view,
		}, logger)
	}
}

// ReportExport streams the upstream export file through to the browser,
// preserving the upstream content type and disposition. The filename
// fallback only applies when the upstream sent no disposition at all.
func ReportExport(svc *service.ReportService, flashes *FlashStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng := domain.DateRange{
			StartDate: r.URL.Query().Get("start_date"),
			EndDate:   r.URL.Query().Get("end_date"),
		}

		export, err := svc.Export(r.Context(), rng)
		if err != nil {
			failAndRedirect(w, r, flashes, logger, err, "/reports")
			return
		}
		defer export.Body.Close()

		disposition := export.Disposition
		if disposition == "" {
			disposition = `attachment; filename="reporte_financiero.csv"`
		}
		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", disposition)
		if _, err := io.Copy(w, export.Body); err != nil {
			logger.Warn("export stream interrupted", zap.Error(err))
		}
	}
}
