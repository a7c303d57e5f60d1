package shortage

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/metrics"
	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// SlotHours converts 30-minute scheduling slots into hours.
const SlotHours = 0.5

// DefaultNonOperatingRole tags rows that represent scheduled absence rather
// than work; they are excluded before aggregation.
const DefaultNonOperatingRole = "非稼働"

var (
	// ErrInvalidPeriod rejects reporting periods that would produce
	// division by zero or negative daily rates.
	ErrInvalidPeriod = errors.New("period days must be a positive integer")

	// ErrNoData distinguishes "nothing to analyze" from a legitimately
	// balanced organization, so callers can never mistake missing data for
	// an all-zero answer.
	ErrNoData = errors.New("no allocation rows and no need data for scenario")
)

// Calculator computes per-role and organization-wide need-vs-actual shortage
// for a reporting period. It holds no mutable state and is safe for
// concurrent use as long as its inputs are not mutated during a call.
type Calculator struct {
	slotHours    float64
	nonOperating map[string]bool
	logger       logger.Logger
}

// NewCalculator builds a calculator using the fixed 30-minute slot length.
// nonOperatingRoles lists sentinel role names to exclude; empty falls back to
// the default sentinel.
func NewCalculator(nonOperatingRoles []string, log logger.Logger) *Calculator {
	excluded := make(map[string]bool)
	for _, role := range nonOperatingRoles {
		excluded[role] = true
	}
	if len(excluded) == 0 {
		excluded[DefaultNonOperatingRole] = true
	}
	return &Calculator{
		slotHours:    SlotHours,
		nonOperating: excluded,
		logger:       log,
	}
}

// Compute aggregates actual allocation per role from rows, compares against
// needByRole, and derives the signed daily shortage per role and for the
// whole organization.
//
// Enumeration is driven by needByRole: a role with need but no allocation
// appears with actual = 0, while a role with allocation but no listed need is
// absent from the shortage table yet stays visible through the report's
// allocation map. Malformed rows are skipped and counted, never fatal.
func (c *Calculator) Compute(rows []models.OperatingRow, needByRole map[string]float64, periodDays int) (*models.ShortageReport, error) {
	start := time.Now()
	if periodDays <= 0 {
		metrics.ShortageComputationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, periodDays)
	}
	if len(rows) == 0 && len(needByRole) == 0 {
		metrics.ShortageComputationsTotal.WithLabelValues("error").Inc()
		return nil, ErrNoData
	}

	days := float64(periodDays)
	allocations, skipped := c.aggregateAllocations(rows, days)

	needs := make(map[string]models.RoleNeed, len(needByRole))
	roleShortages := make([]models.RoleShortage, 0, len(needByRole))
	var totalNeedDaily, totalActualDaily float64

	for _, role := range sortedRoles(needByRole) {
		needValue := needByRole[role]
		needHours := needValue * c.slotHours
		needPerDay := needHours / days
		needs[role] = models.RoleNeed{
			Role:            role,
			NeedValue:       needValue,
			NeedHours:       needHours,
			NeedHoursPerDay: needPerDay,
		}

		actualPerDay := 0.0
		staffCount := 0
		if alloc, ok := allocations[role]; ok {
			actualPerDay = alloc.HoursPerDay
			staffCount = alloc.StaffCount
		}

		shortageDaily := needPerDay - actualPerDay
		roleShortages = append(roleShortages, models.RoleShortage{
			Role:          role,
			NeedPerDay:    needPerDay,
			ActualPerDay:  actualPerDay,
			ShortageDaily: shortageDaily,
			StaffCount:    staffCount,
			Status:        classify(shortageDaily),
		})

		totalNeedDaily += needPerDay
		totalActualDaily += actualPerDay
	}

	// Ranked view: worst shortage first, stable on the role-name base order.
	sort.SliceStable(roleShortages, func(i, j int) bool {
		return roleShortages[i].ShortageDaily > roleShortages[j].ShortageDaily
	})

	orgShortage := totalNeedDaily - totalActualDaily
	report := &models.ShortageReport{
		PeriodDays:    periodDays,
		SlotHours:     c.slotHours,
		RoleShortages: roleShortages,
		Allocations:   allocations,
		Needs:         needs,
		Organization: models.OrganizationSummary{
			TotalNeedDaily:   totalNeedDaily,
			TotalActualDaily: totalActualDaily,
			ShortageDaily:    orgShortage,
			Status:           classify(orgShortage),
		},
		SkippedRows: skipped,
		GeneratedAt: time.Now(),
	}

	if skipped > 0 {
		c.logger.Warn("malformed allocation rows skipped", "count", skipped)
	}
	metrics.ShortageComputationsTotal.WithLabelValues("success").Inc()
	metrics.ShortageComputeDuration.Observe(time.Since(start).Seconds())
	return report, nil
}

// aggregateAllocations groups operating rows by role. Returns the per-role
// allocation map and the count of malformed rows skipped.
func (c *Calculator) aggregateAllocations(rows []models.OperatingRow, days float64) (map[string]models.RoleAllocation, int) {
	slotCounts := make(map[string]int)
	staffSets := make(map[string]map[string]bool)
	skipped := 0

	for _, row := range rows {
		if row.Role == "" || row.StaffID == "" || row.Timestamp.IsZero() {
			skipped++
			continue
		}
		if c.nonOperating[row.Role] {
			continue
		}
		slotCounts[row.Role]++
		if staffSets[row.Role] == nil {
			staffSets[row.Role] = make(map[string]bool)
		}
		staffSets[row.Role][row.StaffID] = true
	}

	allocations := make(map[string]models.RoleAllocation, len(slotCounts))
	for role, count := range slotCounts {
		hours := float64(count) * c.slotHours
		allocations[role] = models.RoleAllocation{
			Role:        role,
			SlotCount:   count,
			Hours:       hours,
			HoursPerDay: hours / days,
			StaffCount:  len(staffSets[role]),
		}
	}
	return allocations, skipped
}

func classify(shortageDaily float64) models.ShortageStatus {
	switch {
	case shortageDaily > 0:
		return models.StatusShortage
	case shortageDaily < 0:
		return models.StatusSurplus
	default:
		return models.StatusBalanced
	}
}

// sortedRoles gives a deterministic enumeration order for a need map.
func sortedRoles(needByRole map[string]float64) []string {
	roles := make([]string, 0, len(needByRole))
	for role := range needByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
