package renewal

import (
	"strings"
	"time"
)

// Status is the renewal urgency of a record on a given day
type Status string

// Urgency statuses
const (
	StatusPending     Status = "pending"
	StatusUpcomingDue Status = "upcoming_due"
	StatusDueToday    Status = "due_today"
	StatusOverdue     Status = "overdue"
	StatusRenewed     Status = "renewed"
)

// AllStatuses lists every status in display order
var AllStatuses = []Status{StatusOverdue, StatusDueToday, StatusUpcomingDue, StatusRenewed, StatusPending}

// ParseStatus parses a status filter value, case-insensitively
func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// DerivedUrgency is the classification of a record relative to today
type DerivedUrgency struct {
	LicensePlate string
	// ExpiryDate is nil when the record has no usable date
	ExpiryDate *time.Time
	// DaysUntilExpiry is negative when overdue; zero when ExpiryDate is nil
	DaysUntilExpiry int
	Status          Status
}

// HasExpiry reports whether an expiry date could be computed
func (u DerivedUrgency) HasExpiry() bool {
	return u.ExpiryDate != nil
}

// ComputeExpiryDate uses the explicit expiry date when parseable, otherwise
// lastTaxDate plus the renewal cycle as plain day addition.
func (p Policy) ComputeExpiryDate(r CustomerTaxRecord) (time.Time, error) {
	loc := p.location()
	if strings.TrimSpace(r.ExpiryDate) != "" {
		if t, err := ParseFlexibleDate(r.ExpiryDate, loc); err == nil {
			return t, nil
		}
	}

	last, err := ParseFlexibleDate(r.LastTaxDate, loc)
	if err != nil {
		return time.Time{}, err
	}
	return last.AddDate(0, 0, p.RenewalCycleDays), nil
}

// DaysUntilExpiry is the whole calendar-day difference between expiry and
// today, both taken as civil dates in the business timezone.
func (p Policy) DaysUntilExpiry(expiry, today time.Time) int {
	loc := p.location()
	ey, em, ed := expiry.In(loc).Date()
	ty, tm, td := today.In(loc).Date()
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}

// StatusForDays maps a day count to a status
func (p Policy) StatusForDays(days int) Status {
	switch {
	case days < 0:
		return StatusOverdue
	case days == 0:
		return StatusDueToday
	case days <= p.UpcomingLeadDays:
		return StatusUpcomingDue
	default:
		return StatusRenewed
	}
}

// ClassifyStatus classifies r on today. Records without a usable date are Pending.
func (p Policy) ClassifyStatus(r CustomerTaxRecord, today time.Time) Status {
	return p.Derive(r, today).Status
}

// Derive returns the full urgency of r on today
func (p Policy) Derive(r CustomerTaxRecord, today time.Time) DerivedUrgency {
	u := DerivedUrgency{
		LicensePlate: NormalizePlate(r.LicensePlate),
		Status:       StatusPending,
	}

	expiry, err := p.ComputeExpiryDate(r)
	if err != nil {
		return u
	}

	u.ExpiryDate = &expiry
	u.DaysUntilExpiry = p.DaysUntilExpiry(expiry, today)
	u.Status = p.StatusForDays(u.DaysUntilExpiry)
	return u
}
