package renewal

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ActiveSnapshotKey is the storage key of the single daily snapshot
const ActiveSnapshotKey = "active"

// DailySnapshot is the bounded outreach queue for one business day
type DailySnapshot struct {
	Key           string
	GenerationID  uuid.UUID
	LicensePlates []string
	CreatedAt     time.Time
}

// NewDailySnapshot normalises and de-duplicates plates, truncates them to
// limit and stamps a fresh generation id.
func NewDailySnapshot(plates []string, limit int, now time.Time) *DailySnapshot {
	normalized := NormalizePlates(plates)
	if limit >= 0 && len(normalized) > limit {
		normalized = normalized[:limit]
	}
	return &DailySnapshot{
		Key:           ActiveSnapshotKey,
		GenerationID:  uuid.New(),
		LicensePlates: normalized,
		CreatedAt:     now,
	}
}

// Contains reports whether plate is in the snapshot
func (s *DailySnapshot) Contains(plate string) bool {
	plate = NormalizePlate(plate)
	for _, p := range s.LicensePlates {
		if p == plate {
			return true
		}
	}
	return false
}

// IsActiveOn reports whether the snapshot was created on the same business day as now
func (s *DailySnapshot) IsActiveOn(now time.Time, loc *time.Location) bool {
	return SameDay(s.CreatedAt, now, loc)
}

// Candidate is a record eligible for today's snapshot
type Candidate struct {
	Record  CustomerTaxRecord
	Urgency DerivedUrgency
}

// SelectCandidates filters records to those with a valid phone, a computable
// expiry within the eligibility window and no sent ledger entry, sorts them
// by daysUntilExpiry (plate breaks ties) and keeps the first SnapshotCap.
// Duplicate plates resolve to the same row as IndexByPlate before filtering.
func (p Policy) SelectCandidates(records []CustomerTaxRecord, sent map[string]bool, phones PhoneValidator, today time.Time) []Candidate {
	records = UniqueByPlate(records)
	candidates := make([]Candidate, 0, len(records))

	for _, r := range records {
		u := p.Derive(r, today)
		if !u.HasExpiry() {
			continue
		}
		if u.DaysUntilExpiry > p.EligibilityWindowDays {
			continue
		}
		if sent[u.LicensePlate] {
			continue
		}
		if phones != nil && !phones.IsValid(r.Phone) {
			continue
		}
		candidates = append(candidates, Candidate{Record: r, Urgency: u})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Urgency, candidates[j].Urgency
		if a.DaysUntilExpiry != b.DaysUntilExpiry {
			return a.DaysUntilExpiry < b.DaysUntilExpiry
		}
		return a.LicensePlate < b.LicensePlate
	})

	if p.SnapshotCap >= 0 && len(candidates) > p.SnapshotCap {
		candidates = candidates[:p.SnapshotCap]
	}
	return candidates
}

// Plates returns the plates of the candidates in order
func Plates(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Urgency.LicensePlate
	}
	return out
}
