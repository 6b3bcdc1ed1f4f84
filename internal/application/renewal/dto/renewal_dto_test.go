package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxrenew/backend/internal/domain/renewal"
)

func TestToSnapshotResponse_Nil(t *testing.T) {
	resp := ToSnapshotResponse(nil, false)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"licensePlates":[],"createdAt":null,"active":false}`, string(body))
}

func TestToUrgencyResponse(t *testing.T) {
	expiry := time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)

	t.Run("with expiry", func(t *testing.T) {
		resp := ToUrgencyResponse(
			renewal.CustomerTaxRecord{LicensePlate: "กก1234", CustomerName: "Somchai"},
			renewal.DerivedUrgency{LicensePlate: "กก1234", ExpiryDate: &expiry, DaysUntilExpiry: 69, Status: renewal.StatusUpcomingDue},
			false, true,
		)
		assert.Equal(t, "2025-01-09", resp.ExpiryDate)
		require.NotNil(t, resp.DaysUntilExpiry)
		assert.Equal(t, 69, *resp.DaysUntilExpiry)
		assert.Equal(t, "upcoming_due", resp.Status)
		assert.True(t, resp.InSnapshot)
	})

	t.Run("pending has no day count", func(t *testing.T) {
		resp := ToUrgencyResponse(
			renewal.CustomerTaxRecord{LicensePlate: "x"},
			renewal.DerivedUrgency{LicensePlate: "x", Status: renewal.StatusPending},
			false, false,
		)
		assert.Nil(t, resp.DaysUntilExpiry)
		assert.Empty(t, resp.ExpiryDate)
	})
}

func TestBulkResultResponse_Add(t *testing.T) {
	var b BulkResultResponse
	b.Add(ItemResult{LicensePlate: "a", Success: true})
	b.Add(ItemResult{LicensePlate: "b", Error: "boom"})

	assert.Equal(t, 1, b.Succeeded)
	assert.Equal(t, 1, b.Failed)
	assert.Len(t, b.Results, 2)
}

func TestToMarkSentResponse_FlattensEntry(t *testing.T) {
	at := time.Date(2024, time.November, 1, 2, 0, 0, 0, time.UTC)
	resp := ToMarkSentResponse(&renewal.NotificationStatus{LicensePlate: "กก1234", Sent: true, SentAt: at}, true)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"licensePlate":"กก1234","sent":true,"sentAt":"2024-11-01T02:00:00Z","created":true}`, string(body))
}
