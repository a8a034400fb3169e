package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/membresiasgt/panel-go/internal/domain"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is the envelope every page template receives. Data carries the
// page-specific view model.
type pageData struct {
	Title     string
	ActiveTab string
	Conn      domain.ConnectionStatus
	Flash     *domain.Flash
	Data      any
}

// pages lists the content templates; each is parsed together with the
// shared layout so {{template "content"}} resolves per page.
var pages = []string{
	"memberships.html",
	"membership_detail.html",
	"confirm.html",
	"recharges.html",
	"reports.html",
	"notifications.html",
}

var pageTemplates = mustParsePages()

func mustParsePages() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed[page] = template.Must(
			template.New("layout.html").Funcs(viewFuncs).ParseFS(templateFS,
				"templates/layout.html",
				"templates/"+page,
			),
		)
	}
	return parsed
}

// renderPage executes a page into a buffer first so a template error never
// leaves a half-written response.
func renderPage(w http.ResponseWriter, status int, page string, data pageData, logger *zap.Logger) {
	tpl, ok := pageTemplates[page]
	if !ok {
		logger.Error("unknown page template", zap.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		logger.Error("template execution failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
