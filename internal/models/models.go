package models

import "time"

// ShortageStatus classifies the sign of need minus actual per day.
type ShortageStatus string

const (
	StatusShortage ShortageStatus = "shortage"
	StatusSurplus  ShortageStatus = "surplus"
	StatusBalanced ShortageStatus = "balanced"
)

// OperatingRow is one scheduled slot from the shift allocation source.
// Rows carrying the non-operating sentinel role are excluded before aggregation.
type OperatingRow struct {
	Timestamp      time.Time `json:"timestamp"`
	StaffID        string    `json:"staff_id"`
	Role           string    `json:"role"`
	EmploymentType string    `json:"employment_type"`
}

// RoleAllocation aggregates actual scheduled hours for one role.
type RoleAllocation struct {
	Role        string  `json:"role"`
	SlotCount   int     `json:"slot_count"`
	Hours       float64 `json:"hours"`
	HoursPerDay float64 `json:"hours_per_day"`
	StaffCount  int     `json:"staff_count"`
}

// RoleNeed aggregates required staffing hours for one role.
type RoleNeed struct {
	Role            string  `json:"role"`
	NeedValue       float64 `json:"need_value"`
	NeedHours       float64 `json:"need_hours"`
	NeedHoursPerDay float64 `json:"need_hours_per_day"`
}

// RoleShortage compares daily need against daily actual for one role.
// ShortageDaily is signed: positive means shortage, negative surplus.
type RoleShortage struct {
	Role          string         `json:"role"`
	NeedPerDay    float64        `json:"need_per_day"`
	ActualPerDay  float64        `json:"actual_per_day"`
	ShortageDaily float64        `json:"shortage_daily"`
	StaffCount    int            `json:"staff_count"`
	Status        ShortageStatus `json:"status"`
}

// OrganizationSummary holds organization-wide daily totals across all roles
// in the need domain, with the same signed-shortage derivation as per role.
type OrganizationSummary struct {
	TotalNeedDaily   float64        `json:"total_need_daily"`
	TotalActualDaily float64        `json:"total_actual_daily"`
	ShortageDaily    float64        `json:"shortage_daily"`
	Status           ShortageStatus `json:"status"`
}

// ShortageReport is the analytical payload cached per tenant session.
type ShortageReport struct {
	PeriodDays    int                       `json:"period_days"`
	SlotHours     float64                   `json:"slot_hours"`
	RoleShortages []RoleShortage            `json:"role_shortages"`
	Allocations   map[string]RoleAllocation `json:"allocations"`
	Needs         map[string]RoleNeed       `json:"needs"`
	Organization  OrganizationSummary       `json:"organization"`
	SkippedRows   int                       `json:"skipped_rows"`
	GeneratedAt   time.Time                 `json:"generated_at"`
}

// SessionStats reports cache usage counters. Hits/Misses/Creates/Evictions/
// Expirations accumulate monotonically since process start; ActiveSessions and
// TotalKeys are gauges over the current store contents.
type SessionStats struct {
	ActiveSessions int   `json:"active_sessions"`
	TotalKeys      int   `json:"total_keys"`
	LegacyKeys     int   `json:"legacy_keys"`
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
	Creates        int64 `json:"creates"`
	Evictions      int64 `json:"evictions"`
	Expirations    int64 `json:"expirations"`
}
