package renewal

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordDueIn(today time.Time, plate string, days int, phone string) CustomerTaxRecord {
	return CustomerTaxRecord{
		LicensePlate: plate,
		Phone:        phone,
		ExpiryDate:   today.AddDate(0, 0, days).Format("2006-01-02"),
		Tags:         []string{"tax"},
	}
}

func TestPolicy_SelectCandidates(t *testing.T) {
	p := testPolicy()
	today := day(2024, time.November, 1)
	phones, err := NewPhoneValidator("TH")
	require.NoError(t, err)

	var records []CustomerTaxRecord
	for i := 59; i >= 0; i-- {
		records = append(records, recordDueIn(today, fmt.Sprintf("กข%04d", i), i, "0812345678"))
	}
	records = append(records,
		recordDueIn(today, "bad-phone", -5, "12345"),
		recordDueIn(today, "far", 120, "0812345678"),
		CustomerTaxRecord{LicensePlate: "no-date", Phone: "0812345678"},
		recordDueIn(today, "กข 0003", -1, "0812345678"),
	)

	sent := map[string]bool{"กข0000": true}

	got := p.SelectCandidates(records, sent, phones, today)

	require.Len(t, got, DefaultSnapshotCap)
	assert.Equal(t, "กข0001", got[0].Urgency.LicensePlate)
	assert.Equal(t, "กข0050", got[len(got)-1].Urgency.LicensePlate)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Urgency.DaysUntilExpiry, got[i].Urgency.DaysUntilExpiry)
	}
	for _, c := range got {
		assert.True(t, phones.IsValid(c.Record.Phone))
		assert.LessOrEqual(t, c.Urgency.DaysUntilExpiry, DefaultEligibilityWindowDays)
		assert.NotEqual(t, "กข0000", c.Urgency.LicensePlate)
	}
}

func TestPolicy_SelectCandidates_TiesBrokenByPlate(t *testing.T) {
	p := testPolicy()
	today := day(2024, time.November, 1)

	records := []CustomerTaxRecord{
		recordDueIn(today, "ค3", 10, "0812345678"),
		recordDueIn(today, "ก1", 10, "0812345678"),
		recordDueIn(today, "ข2", 10, "0812345678"),
	}

	got := Plates(p.SelectCandidates(records, nil, nil, today))
	assert.Equal(t, []string{"ก1", "ข2", "ค3"}, got)
}

func TestNewDailySnapshot(t *testing.T) {
	now := time.Date(2024, time.November, 1, 9, 0, 0, 0, ict)

	var plates []string
	for i := 0; i < 60; i++ {
		plates = append(plates, fmt.Sprintf("กข %d", i%55))
	}

	s := NewDailySnapshot(plates, DefaultSnapshotCap, now)

	assert.Equal(t, ActiveSnapshotKey, s.Key)
	assert.Len(t, s.LicensePlates, DefaultSnapshotCap)
	assert.Equal(t, "กข0", s.LicensePlates[0])
	assert.NotEqual(t, uuid.Nil, s.GenerationID)
	assert.True(t, s.Contains("กข 0"))
	assert.False(t, s.Contains("กข54"))
}

func TestDailySnapshot_IsActiveOn(t *testing.T) {
	s := &DailySnapshot{CreatedAt: time.Date(2024, time.November, 1, 23, 0, 0, 0, ict)}

	assert.True(t, s.IsActiveOn(time.Date(2024, time.November, 1, 6, 0, 0, 0, ict), ict))
	assert.False(t, s.IsActiveOn(time.Date(2024, time.November, 2, 0, 5, 0, 0, ict), ict))
}

func TestSentFilter_Matches(t *testing.T) {
	from := day(2024, time.November, 1)
	until := day(2024, time.December, 1)
	f := SentFilter{From: &from, Until: &until}

	assert.True(t, f.Matches(NotificationStatus{Sent: true, SentAt: from}))
	assert.False(t, f.Matches(NotificationStatus{Sent: true, SentAt: until}))
	assert.False(t, f.Matches(NotificationStatus{Sent: false, SentAt: from}))
	assert.True(t, SentFilter{}.Matches(NotificationStatus{Sent: true}))
}

func TestPolicy_SelectCandidates_DuplicatePlatesAgreeWithIndex(t *testing.T) {
	p := testPolicy()
	today := day(2024, time.November, 1)
	records := []CustomerTaxRecord{
		{LicensePlate: "AA1", Phone: "0812345678", LastTaxDate: "2024-10-01", Tags: []string{"tax"}},
		{LicensePlate: "AA 1", Phone: "0812345678", LastTaxDate: "2023-10-01", Tags: []string{"tax"}},
	}

	indexed, ok := IndexByPlate(records)["AA1"]
	require.True(t, ok)
	assert.Equal(t, StatusRenewed, p.ClassifyStatus(indexed, today))

	assert.Empty(t, p.SelectCandidates(records, nil, nil, today),
		"a plate the index sees as renewed must not be queued from a later duplicate row")

	reversed := []CustomerTaxRecord{records[1], records[0]}
	assert.Equal(t, StatusOverdue, p.ClassifyStatus(IndexByPlate(reversed)["AA1"], today))
	assert.Equal(t, []string{"AA1"}, Plates(p.SelectCandidates(reversed, nil, nil, today)))
}

func TestUniqueByPlate(t *testing.T) {
	got := UniqueByPlate([]CustomerTaxRecord{
		{LicensePlate: "กก 1", CustomerName: "first"},
		{LicensePlate: " "},
		{LicensePlate: "กก1", CustomerName: "second"},
		{LicensePlate: "ab 2", CustomerName: "third"},
		{LicensePlate: "AB2", CustomerName: "fourth"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].CustomerName)
	assert.Equal(t, "third", got[1].CustomerName)
}
