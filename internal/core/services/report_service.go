package services

import (
	"bytes"
	"context"
	"net/url"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

// ReportService produces the administrator report
type ReportService struct {
	api Doer
}

// NewReportService creates a new report service
func NewReportService(api Doer) *ReportService {
	return &ReportService{api: api}
}

func reportQuery(f domain.ReportFilter) url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	return q
}

// Rows fetches the report and applies the filter again locally in case the
// backend ignored part of it.
func (s *ReportService) Rows(ctx context.Context, f domain.ReportFilter) ([]domain.ReportRow, error) {
	rows, err := fetchAll[domain.ReportRow](ctx, s.api, get("/reports", reportQuery(f)))
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.ReportRow, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Page windows the filtered report rows
func (s *ReportService) Page(ctx context.Context, f domain.ReportFilter, p pagination.Params) (pagination.Page[domain.ReportRow], error) {
	rows, err := s.Rows(ctx, f)
	if err != nil {
		return pagination.Page[domain.ReportRow]{}, err
	}
	return pagination.FromSlice(rows, p), nil
}

// TodayRegistrationFees accepts either a bare amount or an aggregate object
func (s *ReportService) TodayRegistrationFees(ctx context.Context) (domain.Amount, error) {
	resp, err := s.api.Do(ctx, get("/reports/registration-fees/today", nil))
	if err != nil {
		return domain.Amount{}, err
	}
	if body := bytes.TrimSpace(resp.Body); len(body) > 0 && body[0] == '{' {
		var fees domain.RegistrationFees
		if err := resp.Decode(&fees); err != nil {
			return domain.Amount{}, err
		}
		return fees.TotalAmount, nil
	}
	var total domain.Amount
	if err := resp.Decode(&total); err != nil {
		return domain.Amount{}, err
	}
	return total, nil
}
