package cache

import (
	"context"
	"testing"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

func TestNoopReportCache_BasicOps(t *testing.T) {
	log := logger.New("error")
	cch := NewNoopReportCache(log)
	ctx := context.Background()

	if err := cch.Set(ctx, "k1", "v1", time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, err := cch.Get(ctx, "k1")
	if err != nil || string(b) != "v1" {
		t.Fatalf("get: %v %q", err, string(b))
	}
	if err := cch.Delete(ctx, "k1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := cch.Get(ctx, "k1"); err == nil {
		t.Fatalf("expected miss after delete")
	}

	// report helpers
	report := &models.ShortageReport{
		PeriodDays: 30,
		SlotHours:  0.5,
		Organization: models.OrganizationSummary{
			TotalNeedDaily: 25.0,
			Status:         models.StatusShortage,
		},
	}
	if err := cch.CacheReport(ctx, "compA|user1|sess1", report, time.Minute); err != nil {
		t.Fatalf("cache report: %v", err)
	}
	got, err := cch.GetCachedReport(ctx, "compA|user1|sess1")
	if err != nil || got.PeriodDays != 30 {
		t.Fatalf("get report: %v %+v", err, got)
	}
	if _, err := cch.GetCachedReport(ctx, "compB|user2|sess2"); err == nil {
		t.Fatalf("expected miss for other partition")
	}

	// health check on noop returns error indicating noop
	if err := cch.HealthCheck(ctx); err == nil {
		t.Fatalf("expected health error for noop cache")
	}
}

func TestNoopReportCache_SetGetBytes(t *testing.T) {
	log := logger.New("error")
	c := NewNoopReportCache(log)
	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(b) != "v" {
		t.Fatalf("unexpected value: %s", string(b))
	}
}
