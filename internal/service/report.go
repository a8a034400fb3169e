package service

import (
	"context"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const headlineCacheKey = "headline"

// ReportService fetches financial summaries and date-ranged detail. The
// figures themselves are computed upstream; the panel only renders them.
type ReportService struct {
	store       port.ReportStore
	memberships port.MembershipStore
	cache       port.Cache[*domain.HeadlineStats]
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewReportService creates the report service.
func NewReportService(
	store port.ReportStore,
	memberships port.MembershipStore,
	cache port.Cache[*domain.HeadlineStats],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		store:       store,
		memberships: memberships,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// Headline fetches the all-time summary and the active-membership count
// concurrently. Independent of any date-range selection, so it caches
// briefly to keep tab switches cheap.
func (s *ReportService) Headline(ctx context.Context) (*domain.HeadlineStats, error) {
	ctx, span := tracer.Start(ctx, "ReportService.Headline")
	defer span.End()

	if cached, ok := s.cache.Get(headlineCacheKey); ok {
		s.metrics.IncrCacheHit("stats")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("stats")

	var (
		overall *domain.OverallSummary
		stats   *domain.MembershipStats
	)

	start := time.Now()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		overall, err = s.store.GetOverallSummary(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.memberships.GetMembershipStats(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.metrics.IncrUpstreamError("headline")
		return nil, err
	}
	s.metrics.RecordUpstreamDuration("headline", time.Since(start))
	s.metrics.IncrUpstreamSuccess()

	headline := &domain.HeadlineStats{
		TotalRevenue:      overall.TotalRevenue,
		TotalCosts:        overall.TotalCosts,
		NetProfit:         overall.NetProfit,
		ActiveMemberships: stats.Active,
	}
	s.cache.Set(headlineCacheKey, headline)
	return headline, nil
}

// Generate fetches the detailed report for a range. Both bounds are
// required; no upstream request is issued for a half-open range.
func (s *ReportService) Generate(ctx context.Context, rng domain.DateRange) (*domain.DetailedReport, error) {
	ctx, span := tracer.Start(ctx, "ReportService.Generate")
	defer span.End()

	if err := rng.Validate(); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("report.start", rng.StartDate),
		attribute.String("report.end", rng.EndDate),
	)

	start := time.Now()
	report, err := s.store.GetDetailedReport(ctx, rng)
	s.metrics.RecordUpstreamDuration("report_detailed", time.Since(start))
	if err != nil {
		s.metrics.IncrUpstreamError("report_detailed")
		return nil, err
	}
	s.metrics.IncrUpstreamSuccess()
	return report, nil
}

// Export opens the upstream export stream, subject to the same date-range
// precondition as Generate. The server builds the file; the panel streams
// it through.
func (s *ReportService) Export(ctx context.Context, rng domain.DateRange) (*domain.ExportFile, error) {
	ctx, span := tracer.Start(ctx, "ReportService.Export")
	defer span.End()

	if err := rng.Validate(); err != nil {
		return nil, err
	}

	export, err := s.store.ExportReport(ctx, rng)
	if err != nil {
		s.metrics.IncrUpstreamError("report_export")
		return nil, err
	}
	s.metrics.IncrUpstreamSuccess()
	s.logger.Info("report export streamed",
		zap.String("start", rng.StartDate),
		zap.String("end", rng.EndDate),
		zap.String("content_type", export.ContentType),
	)
	return export, nil
}
