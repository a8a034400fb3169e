package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/cache"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/service"

	"go.uber.org/zap"
)

type fakeReportStore struct {
	summaryCalls int
	detailCalls  int
	exportCalls  int
	report       domain.DetailedReport
}

func (f *fakeReportStore) GetOverallSummary(_ context.Context) (*domain.OverallSummary, error) {
	f.summaryCalls++
	return &domain.OverallSummary{TotalRevenue: 900, TotalCosts: 600, NetProfit: 300}, nil
}

func (f *fakeReportStore) GetDetailedReport(_ context.Context, _ domain.DateRange) (*domain.DetailedReport, error) {
	f.detailCalls++
	return &f.report, nil
}

func (f *fakeReportStore) ExportReport(_ context.Context, _ domain.DateRange) (*domain.ExportFile, error) {
	f.exportCalls++
	return &domain.ExportFile{
		Body:        io.NopCloser(strings.NewReader("csv")),
		ContentType: "text/csv",
		Disposition: `attachment; filename="reporte.csv"`,
	}, nil
}

func newReportService(store *fakeReportStore, memberships *fakeMembershipStore) *service.ReportService {
	return service.NewReportService(
		store,
		memberships,
		cache.New[*domain.HeadlineStats](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

func TestHeadline_CombinesSummaryAndStats(t *testing.T) {
	store := &fakeReportStore{}
	svc := newReportService(store, &fakeMembershipStore{stats: domain.MembershipStats{Active: 12}})

	headline, err := svc.Headline(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headline.NetProfit != 300 || headline.ActiveMemberships != 12 {
		t.Errorf("unexpected headline: %+v", headline)
	}
}

func TestHeadline_CachesResult(t *testing.T) {
	store := &fakeReportStore{}
	svc := newReportService(store, &fakeMembershipStore{})

	if _, err := svc.Headline(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Headline(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.summaryCalls != 1 {
		t.Errorf("expected 1 upstream summary call, got %d", store.summaryCalls)
	}
}

func TestGenerate_RequiresBothBounds(t *testing.T) {
	store := &fakeReportStore{}
	svc := newReportService(store, &fakeMembershipStore{})

	for _, rng := range []domain.DateRange{
		{},
		{StartDate: "2024-01-01"},
		{EndDate: "2024-01-31"},
	} {
		_, err := svc.Generate(context.Background(), rng)
		var validation *domain.ErrValidation
		if !errors.As(err, &validation) {
			t.Fatalf("range %+v: expected ErrValidation, got %v", rng, err)
		}
		if validation.Message != "Por favor seleccione ambas fechas" {
			t.Errorf("message = %q", validation.Message)
		}
	}
	if store.detailCalls != 0 {
		t.Errorf("no upstream request may be issued for a half-open range, got %d", store.detailCalls)
	}
}

func TestExport_SameDatePrecondition(t *testing.T) {
	store := &fakeReportStore{}
	svc := newReportService(store, &fakeMembershipStore{})

	_, err := svc.Export(context.Background(), domain.DateRange{StartDate: "2024-01-01"})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	// Generate and export surface the identical warning.
	if validation.Message != "Por favor seleccione ambas fechas" {
		t.Errorf("message = %q", validation.Message)
	}
	if store.exportCalls != 0 {
		t.Error("no upstream export may be issued for a half-open range")
	}
}

func TestExport_StreamsThrough(t *testing.T) {
	store := &fakeReportStore{}
	svc := newReportService(store, &fakeMembershipStore{})

	export, err := svc.Export(context.Background(), domain.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer export.Body.Close()
	if export.ContentType != "text/csv" {
		t.Errorf("contentType = %q", export.ContentType)
	}
	if export.Disposition != `attachment; filename="reporte.csv"` {
		t.Errorf("disposition = %q", export.Disposition)
	}
}
