// Package renewal contains the vehicle tax renewal domain: urgency
// classification, daily snapshot selection and the notification ledger.
package renewal

import "time"

// Policy holds the business thresholds used to classify and rank records.
type Policy struct {
	// SnapshotCap is the maximum number of plates in a daily snapshot.
	SnapshotCap int
	// EligibilityWindowDays bounds daysUntilExpiry for snapshot candidates.
	EligibilityWindowDays int
	// UpcomingLeadDays is the last day count still classified UpcomingDue.
	UpcomingLeadDays int
	// RenewalCycleDays is added to lastTaxDate when no explicit expiry is stored.
	RenewalCycleDays int
	// Location is the business timezone. Dates are compared in this zone.
	Location *time.Location
}

// Default policy values
const (
	DefaultSnapshotCap           = 50
	DefaultEligibilityWindowDays = 90
	DefaultUpcomingLeadDays      = 90
	DefaultRenewalCycleDays      = 365
	DefaultTimezone              = "Asia/Bangkok"
)

// DefaultPolicy returns the policy with the standard thresholds.
// The location falls back to UTC+7 when the tz database is unavailable.
func DefaultPolicy() Policy {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.FixedZone("ICT", 7*60*60)
	}
	return Policy{
		SnapshotCap:           DefaultSnapshotCap,
		EligibilityWindowDays: DefaultEligibilityWindowDays,
		UpcomingLeadDays:      DefaultUpcomingLeadDays,
		RenewalCycleDays:      DefaultRenewalCycleDays,
		Location:              loc,
	}
}

// Zone returns the business timezone, UTC when unset
func (p Policy) Zone() *time.Location {
	return p.location()
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Today truncates now to local midnight in the business timezone.
func (p Policy) Today(now time.Time) time.Time {
	return StartOfDay(now, p.location())
}

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
