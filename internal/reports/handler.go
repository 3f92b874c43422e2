package reports

import (
	"net/http"

	"github.com/fintrack/ledger/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the reports module.
type Handler struct {
	service *Service
}

// NewHandler creates a new reports handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers report routes. Mounted under the ADMIN group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/", h.BuildReport)
		r.Get("/export", h.ExportCSV)
	})
}

// BuildReport handles GET /reports.
func (h *Handler) BuildReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.BuildReport(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"movements":     report.Movements,
		"balance":       report.Balance,
		"totalIncome":   report.TotalIncome,
		"totalExpenses": report.TotalExpenses,
		"byMonth":       report.ByMonth,
	})
}

// ExportCSV handles GET /reports/export.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportCSV(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="reporte-movimientos.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
