package domain

import "io"

// ReportRow is one line of the detailed financial report.
type ReportRow struct {
	ClientName       string  `json:"client_name"`
	ServiceName      string  `json:"service_name"`
	PurchaseDate     string  `json:"purchase_date"`
	PurchasePrice    float64 `json:"purchase_price"`
	SalePrice        float64 `json:"sale_price"`
	Profit           float64 `json:"profit"`
	MarginPercentage float64 `json:"margin_percentage"`
}

// ReportSummary aggregates a detailed report. Field names follow the
// upstream camelCase wire format.
type ReportSummary struct {
	TotalCosts    float64 `json:"totalCosts"`
	TotalRevenue  float64 `json:"totalRevenue"`
	NetProfit     float64 `json:"netProfit"`
	OverallMargin float64 `json:"overallMargin"`
}

// OverallSummary is the all-time headline figure set shown above the
// report tab, independent of any date range.
type OverallSummary struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalCosts   float64 `json:"totalCosts"`
	NetProfit    float64 `json:"netProfit"`
}

// HeadlineStats combines the overall summary with the active-membership
// count for the statistic cards above the report tab.
type HeadlineStats struct {
	TotalRevenue      float64
	TotalCosts        float64
	NetProfit         float64
	ActiveMemberships int
}

// DetailedReport is the upstream response for a date-ranged report.
type DetailedReport struct {
	Details []ReportRow
	Summary ReportSummary
}

// ExportFile is the upstream export stream together with the presentation
// headers it was served with. The caller owns Body and must close it.
type ExportFile struct {
	Body        io.ReadCloser
	ContentType string
	Disposition string
}

// DateRange bounds a report query. Both ends are ISO dates (YYYY-MM-DD).
type DateRange struct {
	StartDate string
	EndDate   string
}

// Validate enforces that both bounds are present. The panel refuses to
// issue report or export requests for a half-open range.
func (r DateRange) Validate() error {
	if r.StartDate == "" || r.EndDate == "" {
		return &ErrValidation{Field: "date_range", Message: "Por favor seleccione ambas fechas"}
	}
	return nil
}
