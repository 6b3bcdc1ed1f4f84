package renewal

import "time"

// NotificationStatus is the ledger entry recording that a human sent a
// reminder for a plate.
type NotificationStatus struct {
	LicensePlate string
	Sent         bool
	SentAt       time.Time
}

// SentFilter restricts ListSent by sent time. From is inclusive, Until exclusive.
type SentFilter struct {
	From  *time.Time
	Until *time.Time
}

// Matches reports whether s falls inside the filter
func (f SentFilter) Matches(s NotificationStatus) bool {
	if !s.Sent {
		return false
	}
	if f.From != nil && s.SentAt.Before(*f.From) {
		return false
	}
	if f.Until != nil && !s.SentAt.Before(*f.Until) {
		return false
	}
	return true
}

// SentPlates returns the set of plates with a sent entry
func SentPlates(entries []NotificationStatus) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Sent {
			out[NormalizePlate(e.LicensePlate)] = true
		}
	}
	return out
}
