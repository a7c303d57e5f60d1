package shortage

import (
	"context"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/internal/session"
	"github.com/makimaki1006/shift-suite-sub009/pkg/cache"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// reportDataKey is the key a session's shortage report is cached under
// inside its partition.
const reportDataKey = "shortage_report"

// Identity carries the tenant/user/session triple of the requesting caller.
type Identity struct {
	SessionID string
	CompanyID string
	UserID    string
}

// Service runs shortage computations for a session and caches the result so
// concurrent tenants never observe each other's reports. The session manager
// is the per-process cache; the shared report cache distributes reports
// across replicas, best effort.
type Service struct {
	manager   *session.Manager
	calc      *Calculator
	loader    *Loader
	reports   cache.ReportCache
	reportTTL time.Duration
	logger    logger.Logger
}

func NewService(manager *session.Manager, calc *Calculator, loader *Loader, reports cache.ReportCache, reportTTL time.Duration, log logger.Logger) *Service {
	return &Service{
		manager:   manager,
		calc:      calc,
		loader:    loader,
		reports:   reports,
		reportTTL: reportTTL,
		logger:    log,
	}
}

// Compute loads the scenario data, runs the calculator and caches the report
// under the caller's session partition. Configuration errors (bad period, no
// data at all) propagate; they are never dressed up as an all-zero report.
func (s *Service) Compute(ctx context.Context, id Identity, scenario string, periodDays int) (*models.ShortageReport, error) {
	rows, needByRole, unparseable, err := s.loader.LoadScenario(scenario)
	if err != nil {
		return nil, err
	}

	report, err := s.calc.Compute(rows, needByRole, periodDays)
	if err != nil {
		return nil, err
	}
	// SkippedRows covers both loader-level unparseable records and
	// calculator-level malformed rows.
	report.SkippedRows += unparseable

	s.manager.SetData(reportDataKey, report, id.SessionID, id.CompanyID, id.UserID)

	if s.reports != nil {
		partition := session.NewContext(id.SessionID, id.CompanyID, id.UserID).PartitionKey()
		if err := s.reports.CacheReport(ctx, partition, report, s.reportTTL); err != nil {
			// Shared cache is best effort; the session partition already
			// holds the report.
			s.logger.Warn("failed to publish report to shared cache", "partition", partition, "error", err)
		}
	}

	s.logger.Info("shortage report computed",
		"scenario", scenario,
		"period_days", periodDays,
		"roles", len(report.RoleShortages),
		"skipped_rows", report.SkippedRows,
		"org_status", report.Organization.Status)
	return report, nil
}

// CachedReport returns the report cached for the caller's session, checking
// the local partition first and falling back to the shared cache.
func (s *Service) CachedReport(ctx context.Context, id Identity) (*models.ShortageReport, bool) {
	if value, ok := s.manager.GetData(reportDataKey, id.SessionID, id.CompanyID, id.UserID); ok {
		if report, ok := value.(*models.ShortageReport); ok {
			return report, true
		}
	}

	if s.reports != nil && id.SessionID != "" {
		partition := session.NewContext(id.SessionID, id.CompanyID, id.UserID).PartitionKey()
		if report, err := s.reports.GetCachedReport(ctx, partition); err == nil {
			// Re-warm the local partition for subsequent reads.
			s.manager.SetData(reportDataKey, report, id.SessionID, id.CompanyID, id.UserID)
			return report, true
		}
	}
	return nil, false
}
