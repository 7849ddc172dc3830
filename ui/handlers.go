package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"logscope/domain/logs"
	"logscope/internal/errors"
)

// DatasetLink is one entry of the index page's navigation
type DatasetLink struct {
	Kind     logs.Kind
	Index    int
	Title    string
	RowCount int
	Err      string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	links := make([]DatasetLink, 0, 5)
	for _, kind := range logs.AllKinds() {
		link := DatasetLink{Kind: kind, Index: kind.Index(), Title: kind.Title()}

		// A failing dataset is shown as unavailable; the rest of the
		// dashboard stays usable.
		summary, err := a.analysis.Summarize(r.Context(), kind)
		if err != nil {
			log.Printf("[handleIndex] %s unavailable: %v", kind, err)
			link.Err = err.Error()
		} else {
			link.RowCount = summary.RowCount
		}
		links = append(links, link)
	}

	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Title":    "Server Log Analysis Dashboard",
		"Datasets": links,
	})
}

func (a *App) handleDataset(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.parseKind(w, r)
	if !ok {
		return
	}

	view, err := a.analysis.Analyze(r.Context(), kind)
	if err != nil {
		a.renderError(w, kind, err)
		return
	}

	chartsJSON, err := json.Marshal(view.Charts)
	if err != nil {
		http.Error(w, "failed to encode charts", http.StatusInternalServerError)
		return
	}

	a.renderTemplate(w, "dataset.html", map[string]interface{}{
		"Title":      kind.Title(),
		"Kind":       kind,
		"Summary":    view.Summary,
		"Charts":     view.Charts,
		"ChartsJSON": template.JS(chartsJSON),
		"Samples":    view.Table.SampleRows(10),
		"Columns":    view.Table.Columns(),
	})
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.parseKind(w, r)
	if !ok {
		return
	}

	if err := a.reportSem.Acquire(r.Context(), 1); err != nil {
		http.Error(w, "report generation cancelled", http.StatusServiceUnavailable)
		return
	}
	defer a.reportSem.Release(1)

	doc, err := a.reports.Generate(r.Context(), kind)
	if err != nil {
		a.renderError(w, kind, err)
		return
	}

	log.Printf("[handleReport] %s report %s generated (%d bytes)", kind, doc.ID, len(doc.HTML))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(doc.HTML)
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.parseKind(w, r)
	if !ok {
		return
	}

	summary, err := a.analysis.Summarize(r.Context(), kind)
	if err != nil {
		a.renderError(w, kind, err)
		return
	}

	buf, err := a.exporter.WriteSummary(summary)
	if err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%d_%s_metrics.xlsx", kind.Index(), kind))
	w.Write(buf.Bytes())
}

func (a *App) handleMetricsJSON(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.parseKind(w, r)
	if !ok {
		return
	}

	summary, err := a.analysis.Summarize(r.Context(), kind)
	if err != nil {
		a.writeErrorJSON(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func (a *App) handleChartsJSON(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.parseKind(w, r)
	if !ok {
		return
	}

	view, err := a.analysis.Analyze(r.Context(), kind)
	if err != nil {
		a.writeErrorJSON(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view.Charts)
}

func (a *App) parseKind(w http.ResponseWriter, r *http.Request) (logs.Kind, bool) {
	kind, err := logs.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return kind, true
}

// renderError maps the error taxonomy onto HTTP responses; the offending
// dataset stays identified in the message
func (a *App) renderError(w http.ResponseWriter, kind logs.Kind, err error) {
	log.Printf("[ui] %s: %v", kind, err)
	switch errors.GetCode(err) {
	case errors.CodeLoadError:
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.CodeSchemaError:
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (a *App) writeErrorJSON(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeLoadError:
		status = http.StatusNotFound
	case errors.CodeSchemaError:
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
