package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/membresiasgt/panel-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// --- Reports (implements port.ReportStore) ---

// GetOverallSummary fetches the all-time revenue/costs/net-profit figures.
func (c *Client) GetOverallSummary(ctx context.Context) (*domain.OverallSummary, error) {
	ctx, span := tracer.Start(ctx, "API.GetOverallSummary")
	defer span.End()

	env, err := c.get(ctx, "report_summary", "/reports/summary")
	if err != nil {
		return nil, err
	}

	// The summary nests the figures under an "overall" key.
	var data struct {
		Overall domain.OverallSummary `json:"overall"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode report summary: %w", err)
	}
	return &data.Overall, nil
}

// GetDetailedReport fetches per-membership rows plus the precomputed
// summary for a date range.
func (c *Client) GetDetailedReport(ctx context.Context, rng domain.DateRange) (*domain.DetailedReport, error) {
	ctx, span := tracer.Start(ctx, "API.GetDetailedReport")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.start", rng.StartDate),
		attribute.String("report.end", rng.EndDate),
	)

	env, err := c.get(ctx, "report_detailed", "/reports/detailed?"+rangeQuery(rng))
	if err != nil {
		return nil, err
	}

	report := &domain.DetailedReport{Details: []domain.ReportRow{}}
	if len(env.Details) > 0 {
		if err := json.Unmarshal(env.Details, &report.Details); err != nil {
			return nil, fmt.Errorf("failed to decode report details: %w", err)
		}
	}
	if len(env.Summary) > 0 {
		if err := json.Unmarshal(env.Summary, &report.Summary); err != nil {
			return nil, fmt.Errorf("failed to decode report totals: %w", err)
		}
	}
	return report, nil
}

// ExportReport opens the upstream export stream. The caller owns the
// returned body and must close it; the panel forwards the file and its
// presentation headers to the browser without generating or parsing it.
func (c *Client) ExportReport(ctx context.Context, rng domain.DateRange) (*domain.ExportFile, error) {
	ctx, span := tracer.Start(ctx, "API.ExportReport")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reports/export?"+rangeQuery(rng), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.wrapTransport("report_export", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &domain.ErrExternalService{
			Service: "membership-api/report_export",
			Err:     fmt.Errorf("export returned status %d", resp.StatusCode),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &domain.ExportFile{
		Body:        resp.Body,
		ContentType: contentType,
		Disposition: resp.Header.Get("Content-Disposition"),
	}, nil
}

func rangeQuery(rng domain.DateRange) string {
	q := url.Values{}
	q.Set("startDate", rng.StartDate)
	q.Set("endDate", rng.EndDate)
	return q.Encode()
}
