package handlers

import (
	"log"
	"net/http"

	"github.com/lcalzada-xor/towermap/internal/adapters/reporting"
	"github.com/lcalzada-xor/towermap/internal/core/ports"
	"github.com/lcalzada-xor/towermap/internal/core/services/export"
)

// ExportHandler handles data export
type ExportHandler struct {
	Service     ports.SessionService
	PDFExporter *reporting.PDFExporter
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(service ports.SessionService, pdf *reporting.PDFExporter) *ExportHandler {
	return &ExportHandler{
		Service:     service,
		PDFExporter: pdf,
	}
}

// HandleExport exports the cached towers as JSON or CSV.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=towermap_towers.csv")
		if err := export.ExportCSV(w, st.Towers); err != nil {
			log.Printf("CSV export error: %v", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=towermap_towers.json")
		if err := export.ExportJSON(w, st.Towers); err != nil {
			log.Printf("JSON export error: %v", err)
		}
	}
}

// HandleGeoJSON exports the overlays currently drawn.
func (h *ExportHandler) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	overlays, err := h.Service.Overlays(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := export.ExportGeoJSON(w, overlays); err != nil {
		log.Printf("GeoJSON export error: %v", err)
	}
}

// HandleSummaryPDF renders the summary list as a PDF.
func (h *ExportHandler) HandleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.PDFExporter.ExportSummary(reporting.NewSummaryReport(st))
	if err != nil {
		log.Printf("PDF export error: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=towermap_summary.pdf")
	w.Write(data)
}
