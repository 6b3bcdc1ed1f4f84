package renewal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taxrenew/backend/internal/domain/shared"
)

// Years at or above this value are Thai Buddhist-era years.
const buddhistEraThreshold = 2400

const buddhistEraOffset = 543

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleDate parses the date encodings found in the customer registry:
// DD/MM/YYYY (or D/M/YYYY, Buddhist-era years allowed), YYYY-MM-DD, and
// ISO-8601 with a time part and an optional offset (+07:00 or +0700).
// The result is midnight of the calendar date in loc.
func ParseFlexibleDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, shared.ErrInvalidDateFormat
	}

	if strings.Contains(s, "/") {
		return parseSlashDate(s, loc)
	}

	for _, layout := range isoLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		return StartOfDay(t, loc), nil
	}

	return time.Time{}, invalidDate(s)
}

func parseSlashDate(s string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, invalidDate(s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return time.Time{}, invalidDate(s)
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if year < 1000 {
		return time.Time{}, invalidDate(s)
	}
	if year >= buddhistEraThreshold {
		year -= buddhistEraOffset
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalises 31/02 into March; reject instead
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, invalidDate(s)
	}
	return t, nil
}

func invalidDate(s string) error {
	return &shared.DomainError{
		Code:    shared.ErrInvalidDateFormat.Code,
		Message: fmt.Sprintf("unrecognised date %q", s),
	}
}
