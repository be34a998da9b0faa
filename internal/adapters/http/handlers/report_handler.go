package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/url"
	"time"

	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/export"
	"susu-dashboard/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

var reportTypes = []domain.ReportType{domain.ReportDeposit, domain.ReportWithdrawal, domain.ReportCommission}

// ReportHandler handles the administrator report and its exports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Index shows the filtered report. A failed fetch shows an empty report.
func (h *ReportHandler) Index(c *fiber.Ctx) error {
	user := identity(c)
	filter := reportFilter(c)

	var fetchErr string
	rows, err := h.reportService.Rows(c.UserContext(), filter)
	if err != nil {
		if err := passUnauthorized(err); err != nil {
			return err
		}
		fetchErr = errorMessage(err)
		rows = nil
	}
	page := pagination.FromSlice(rows, pagination.GetParams(c))

	bind := fiber.Map{
		"rows":    page.Items,
		"total":   len(rows),
		"pager":   pagination.NewControl(page, "/reports", currentQuery(c)),
		"filter":  filter,
		"types":   reportTypes,
		"export":  access.Can(user.Role, access.ExportReports) && len(rows) > 0,
		"csvURL":  exportURL(c, "/reports/export.csv"),
		"pdfURL":  exportURL(c, "/reports/export.pdf"),
	}
	if fetchErr != "" {
		bind["error"] = fetchErr
	}
	return render(c, "reports/index", "Reports", bind)
}

// ExportCSV downloads the filtered report as CSV
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	rows, err := h.reportService.Rows(c.UserContext(), reportFilter(c))
	if err != nil {
		return redirectError(c, h.back(c), err)
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, export.ReportRecords(rows)); err != nil {
		return h.exportFailed(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Attachment("report.csv")
	return c.Send(buf.Bytes())
}

// ExportPDF downloads the filtered report as PDF
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	rows, err := h.reportService.Rows(c.UserContext(), reportFilter(c))
	if err != nil {
		return redirectError(c, h.back(c), err)
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, rows, reportFilter(c), time.Now()); err != nil {
		return h.exportFailed(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment("report.pdf")
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) exportFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, export.ErrNoData) {
		return c.Redirect(withParam(h.back(c), "error", "There is no data to export."))
	}
	return err
}

func (h *ReportHandler) back(c *fiber.Ctx) string {
	if q := string(c.Request().URI().QueryString()); q != "" {
		return "/reports?" + q
	}
	return "/reports"
}

// exportURL carries the current filters over to an export link
func exportURL(c *fiber.Ctx, path string) template.URL {
	q := url.Values{}
	for _, key := range []string{"type", "startDate", "endDate"} {
		if v := c.Query(key); v != "" {
			q.Set(key, v)
		}
	}
	if len(q) == 0 {
		return template.URL(path)
	}
	return template.URL(path + "?" + q.Encode())
}

func reportFilter(c *fiber.Ctx) domain.ReportFilter {
	return domain.ReportFilter{
		Type:      c.Query("type"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}
