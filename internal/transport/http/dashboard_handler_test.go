package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/analytics"
	"shoppulse/internal/dataset"
	apierrors "shoppulse/internal/errors"
	"shoppulse/internal/services"
)

// mockDashboardService implements DashboardServiceInterface for handler tests
type mockDashboardService struct {
	summary *analytics.ExecutiveSummary
	quality *dataset.QualityReport
	err     error
}

func (m *mockDashboardService) GetSummary(ctx context.Context, start, end time.Time) (*analytics.ExecutiveSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockDashboardService) GetDataQuality(ctx context.Context) (*dataset.QualityReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.quality, nil
}

func (m *mockDashboardService) DateRange(ctx context.Context) (time.Time, time.Time, error) {
	if m.err != nil {
		return time.Time{}, time.Time{}, m.err
	}
	return time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC), nil
}

func newTestHandler(svc DashboardServiceInterface) *DashboardHandler {
	logger := slog.Default()
	return NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
}

func TestGetSummary(t *testing.T) {
	svc := &mockDashboardService{
		summary: &analytics.ExecutiveSummary{
			Revenue: analytics.RevenueMetrics{
				TotalRevenue: 165,
				TotalOrders:  2,
			},
			HasComparison: true,
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/summary?start=2017-02-01&end=2017-02-28", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Revenue struct {
			TotalRevenue float64 `json:"total_revenue"`
			TotalOrders  int     `json:"total_orders"`
		} `json:"revenue"`
		HasComparison bool `json:"has_comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 165.0, body.Revenue.TotalRevenue)
	assert.Equal(t, 2, body.Revenue.TotalOrders)
	assert.True(t, body.HasComparison)
}

func TestGetSummaryValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing both", query: ""},
		{name: "missing end", query: "?start=2017-02-01"},
		{name: "malformed start", query: "?start=Feb-1&end=2017-02-28"},
		{name: "malformed end", query: "?start=2017-02-01&end=28/02/2017"},
	}

	handler := newTestHandler(&mockDashboardService{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/summary"+tt.query, nil)
			rec := httptest.NewRecorder()

			handler.Routes().ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, apierrors.TypeValidation, problem["type"])
		})
	}
}

func TestGetSummaryServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "data not loaded",
			err:        services.ErrDataNotLoaded,
			wantStatus: http.StatusServiceUnavailable,
			wantType:   apierrors.TypeDataNotLoaded,
		},
		{
			name:       "invalid date range",
			err:        services.ErrInvalidDateRange,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&mockDashboardService{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/summary?start=2017-02-01&end=2017-02-28", nil)
			rec := httptest.NewRecorder()

			handler.Routes().ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
		})
	}
}

func TestGetDataQuality(t *testing.T) {
	svc := &mockDashboardService{
		quality: &dataset.QualityReport{
			MasterRows:       4,
			OrphanedItems:    1,
			DuplicateReviews: 2,
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/quality", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report dataset.QualityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 4, report.MasterRows)
	assert.Equal(t, 1, report.OrphanedItems)
	assert.Equal(t, 2, report.DuplicateReviews)
}

func TestGetHealth(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		handler := newTestHandler(&mockDashboardService{})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "2017-01-01", body["data_from"])
		assert.Equal(t, "2017-12-31", body["data_to"])
	})

	t.Run("not loaded", func(t *testing.T) {
		handler := newTestHandler(&mockDashboardService{err: services.ErrDataNotLoaded})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "loading", body["status"])
	})
}
