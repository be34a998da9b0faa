package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/format"

	"github.com/go-pdf/fpdf"
)

const (
	reportTitle    = "Collection Management System"
	reportSubtitle = "Admin Report"
	marginX        = 14.0
	rowHeight      = 8.0
)

var (
	columns      = []string{"ID", "Type", "Date", "User", "Amount"}
	columnWidths = []float64{20, 32, 40, 58, 32}
)

// FilterLine describes the active filters, with "All" and "-" for blanks
func FilterLine(f domain.ReportFilter) string {
	return fmt.Sprintf("Type: %s | Start: %s | End: %s",
		orDefault(f.Type, "All"), orDefault(f.StartDate, "-"), orDefault(f.EndDate, "-"))
}

// WritePDF renders rows as a titled grid table with a page footer
func WritePDF(w io.Writer, rows []domain.ReportRow, f domain.ReportFilter, generated time.Time) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 20, marginX)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("{nb}")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()

	// Later pages repeat the table head
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			tableHead(pdf)
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 18)
	pdf.SetXY(0, 12)
	pdf.CellFormat(pageWidth, 10, reportTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetX(0)
	pdf.CellFormat(pageWidth, 8, reportSubtitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginX, 34)
	pdf.CellFormat(0, 6, tr(FilterLine(f)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+format.Timestamp(generated), "", 1, "L", false, 0, "")
	pdf.SetY(50)

	tableHead(pdf)
	pdf.SetFont("Helvetica", "", 10)
	for i, r := range rows {
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(245, 245, 245)
		}
		cells := []string{
			strconv.FormatInt(r.ID, 10),
			string(r.Type),
			r.Date,
			tr(r.User),
			r.Amount.String(),
		}
		for j, cell := range cells {
			pdf.CellFormat(columnWidths[j], rowHeight, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func tableHead(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range columns {
		pdf.CellFormat(columnWidths[i], rowHeight, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
