package service

import (
	"context"
	"testing"
	"time"

	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/repository"
)

func seedRequestLogs(t *testing.T, repo *repository.RequestLogRepository, logs []models.RequestLog) {
	t.Helper()

	if err := repo.CreateBatch(context.Background(), logs); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
}

func TestAnalytics_CleanupKeepsRecentLogs(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRequestLogRepository(db)
	svc := NewAnalyticsService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	seedRequestLogs(t, repo, []models.RequestLog{
		{Timestamp: now.AddDate(0, 0, -40), Method: "GET", Path: "/api/v1/programs/old", StatusCode: 200, ResponseTimeMs: 12},
		{Timestamp: now.Add(-time.Hour), Method: "GET", Path: "/api/v1/programs/recent", StatusCode: 200, ResponseTimeMs: 8},
	})

	deleted, err := svc.CleanupOldLogs(ctx, 30)
	if err != nil {
		t.Fatalf("CleanupOldLogs failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 log deleted, got %d", deleted)
	}

	remaining, err := repo.CountByTimeRange(ctx, now.AddDate(0, 0, -60), now)
	if err != nil {
		t.Fatalf("CountByTimeRange failed: %v", err)
	}
	if remaining != 1 {
		t.Errorf("expected 1 log to survive cleanup, got %d", remaining)
	}
}

func TestAnalytics_SummaryRates(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRequestLogRepository(db)
	svc := NewAnalyticsService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	seedRequestLogs(t, repo, []models.RequestLog{
		{Timestamp: now.Add(-3 * time.Hour), Method: "GET", Path: "/api/v1/programs/a", StatusCode: 200, ResponseTimeMs: 10},
		{Timestamp: now.Add(-2 * time.Hour), Method: "GET", Path: "/api/v1/programs/a", StatusCode: 200, ResponseTimeMs: 20},
		{Timestamp: now.Add(-time.Hour), Method: "POST", Path: "/api/v1/auth/login", StatusCode: 401, ResponseTimeMs: 30},
		{Timestamp: now.Add(-time.Minute), Method: "GET", Path: "/api/v1/programs/b", StatusCode: 500, ResponseTimeMs: 40},
	})

	summary, err := svc.GetSummary(ctx, now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.TotalRequests != 4 {
		t.Errorf("expected 4 requests, got %d", summary.TotalRequests)
	}
	if summary.AvgResponseTime != 25 {
		t.Errorf("expected avg response time 25, got %v", summary.AvgResponseTime)
	}
	if summary.ErrorRate != 50 {
		t.Errorf("expected error rate 50, got %v", summary.ErrorRate)
	}
	if summary.ClientErrorRate != 25 {
		t.Errorf("expected client error rate 25, got %v", summary.ClientErrorRate)
	}
	if summary.ServerErrorRate != 25 {
		t.Errorf("expected server error rate 25, got %v", summary.ServerErrorRate)
	}
	if len(summary.TopEndpoints) == 0 {
		t.Fatal("expected top endpoints")
	}
	if summary.TopEndpoints[0]["path"] != "/api/v1/programs/a" {
		t.Errorf("expected /api/v1/programs/a as top endpoint, got %v", summary.TopEndpoints[0]["path"])
	}
}

func TestAnalytics_EmptyRangeSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(repository.NewRequestLogRepository(db))

	summary, err := svc.GetSummary(context.Background(), time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalRequests != 0 {
		t.Errorf("expected 0 requests, got %d", summary.TotalRequests)
	}
	if summary.ErrorRate != 0 {
		t.Errorf("expected 0 error rate on empty range, got %v", summary.ErrorRate)
	}
}
