package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/services/summary"
)

// SummaryReport is the printable form of the tower summary list.
type SummaryReport struct {
	ID          string
	Title       string
	GeneratedAt time.Time
	GeneratedBy string
	Selection   *domain.Coordinate
	Filter      domain.TowerFilter
	LastSearch  *domain.SearchRecord
	Rows        []domain.SummaryRow
	// Bands holds the signal band of each row, parallel to Rows.
	Bands []domain.SignalBand
}

// NewSummaryReport builds a report from a session snapshot.
func NewSummaryReport(st domain.SessionState) *SummaryReport {
	selected := summary.Select(st.Towers, st.Filter)
	bands := make([]domain.SignalBand, len(selected))
	for i, t := range selected {
		bands[i] = domain.BandFor(t.SignalQuality)
	}
	return &SummaryReport{
		ID:          uuid.NewString(),
		Title:       "Cell Tower Summary",
		GeneratedAt: time.Now(),
		GeneratedBy: "towermap",
		Selection:   st.Selection,
		Filter:      st.Filter,
		LastSearch:  st.LastSearch,
		Rows:        st.Summary,
		Bands:       bands,
	}
}

// PDFExporter exports the tower summary to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSummary renders the report as a PDF document.
func (e *PDFExporter) ExportSummary(report *SummaryReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addOverview(pdf, report)
	e.addTowerTable(pdf, report)
	e.addFooter(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *SummaryReport) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 15, report.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

// addOverview prints the search context in two columns.
func (e *PDFExporter) addOverview(pdf *gofpdf.Fpdf, report *SummaryReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Search Overview", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	selection := "none"
	if report.Selection != nil {
		selection = report.Selection.String()
	}
	filter := report.Filter.Type
	if report.Filter.IsAll() {
		filter = "All types"
	}
	kind, carrier, outcome, elapsed := "-", "-", "-", "-"
	if s := report.LastSearch; s != nil {
		kind = string(s.Kind)
		if s.Carrier != "" {
			carrier = s.Carrier
		}
		outcome = string(s.Outcome)
		elapsed = fmt.Sprintf("%.2f s", s.Elapsed.Seconds())
	}

	stats := []struct {
		label string
		value string
	}{
		{"Selection", selection},
		{"Filter", filter},
		{"Search", kind},
		{"Carrier", carrier},
		{"Outcome", outcome},
		{"Time taken", elapsed},
	}

	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(30, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(0, 102, 204)
		pdf.CellFormat(colWidth-30, 7, stat.value, "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}
	pdf.Ln(10)
}

func (e *PDFExporter) addTowerTable(pdf *gofpdf.Fpdf, report *SummaryReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Towers by Signal Quality", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(report.Rows) == 0 || report.Rows[0].Placeholder {
		msg := domain.NoTowersMessage
		if len(report.Rows) > 0 {
			msg = report.Rows[0].Message
		}
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, msg, "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	header := func() {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(15, 8, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 8, "Type", "1", 0, "L", true, 0, "")
		pdf.CellFormat(45, 8, "Range", "1", 0, "R", true, 0, "")
		pdf.CellFormat(40, 8, "Signal Quality", "1", 0, "R", true, 0, "")
		pdf.CellFormat(45, 8, "Distance", "1", 1, "R", true, 0, "")
	}
	header()

	pdf.SetFont("Arial", "", 9)
	for i, row := range report.Rows {
		if pdf.GetY() > 265 {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 9)
		}

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, row.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, row.Range, "1", 0, "R", false, 0, "")

		band := domain.BandLow
		if i < len(report.Bands) {
			band = report.Bands[i]
		}
		r, g, b := e.getBandColor(band)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(40, 7, row.SignalQuality, "1", 0, "R", false, 0, "")

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(45, 7, row.Distance, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)
}

// getBandColor returns RGB color based on signal band
func (e *PDFExporter) getBandColor(band domain.SignalBand) (r, g, b int) {
	switch band {
	case domain.BandGreat:
		return 52, 199, 89 // Green
	case domain.BandGood:
		return 0, 102, 204 // Blue
	case domain.BandMid:
		return 255, 149, 0 // Orange
	default:
		return 220, 53, 69 // Red
	}
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report *SummaryReport) {
	pdf.SetY(-20)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	id := report.ID
	if len(id) > 8 {
		id = id[:8]
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated by %s | Report ID: %s", report.GeneratedBy, id), "", 1, "C", false, 0, "")
}
