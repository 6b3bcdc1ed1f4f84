// Package dto holds the request and response shapes of the renewal API.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/taxrenew/backend/internal/domain/renewal"
)

// SnapshotResponse is the current daily snapshot
type SnapshotResponse struct {
	LicensePlates []string   `json:"licensePlates"`
	CreatedAt     *time.Time `json:"createdAt"`
	GenerationID  *uuid.UUID `json:"generationId,omitempty"`
	// Active is false when the stored snapshot belongs to an earlier business day
	Active bool `json:"active"`
}

// BuildSnapshotResponse is returned by POST /daily-notifications
type BuildSnapshotResponse struct {
	SnapshotResponse
	Regenerated bool `json:"regenerated"`
}

// BuildSnapshotRequest seeds or regenerates the snapshot
type BuildSnapshotRequest struct {
	LicensePlates []string `json:"licensePlates"`
	ForceRefresh  bool     `json:"forceRefresh"`
}

// PlateRequest identifies a single plate
type PlateRequest struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
}

// BulkDeleteRequest lists plates to drop from the snapshot
type BulkDeleteRequest struct {
	LicensePlates []string `json:"licensePlates" binding:"required,min=1"`
}

// MarkStatusRequest is the body of POST /notification-status.
// Sent defaults to true when omitted.
type MarkStatusRequest struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
	Sent         *bool  `json:"sent"`
	SentAt       string `json:"sentAt"`
}

// MarkBatchRequest marks several plates as sent with one timestamp
type MarkBatchRequest struct {
	LicensePlates []string `json:"licensePlates" binding:"required,min=1"`
	SentAt        string   `json:"sentAt"`
}

// SentQuery filters the sent list. Both bounds are inclusive calendar dates.
type SentQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// StatusEntry is one ledger value keyed by plate
type StatusEntry struct {
	Sent   bool      `json:"sent"`
	SentAt time.Time `json:"sentAt"`
}

// StatusResponse maps plate to ledger entry
type StatusResponse map[string]StatusEntry

// LedgerEntryResponse is a single ledger entry
type LedgerEntryResponse struct {
	LicensePlate string    `json:"licensePlate"`
	Sent         bool      `json:"sent"`
	SentAt       time.Time `json:"sentAt"`
}

// MarkSentResponse is the stored entry after MarkSent
type MarkSentResponse struct {
	LedgerEntryResponse
	// Created is false when the plate had already been sent
	Created bool `json:"created"`
}

// ItemResult is the outcome of one item in a bulk operation
type ItemResult struct {
	LicensePlate string `json:"licensePlate"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// BulkResultResponse lists per-item outcomes
type BulkResultResponse struct {
	Results   []ItemResult `json:"results"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

// Add appends r and updates the counters
func (b *BulkResultResponse) Add(r ItemResult) {
	b.Results = append(b.Results, r)
	if r.Success {
		b.Succeeded++
	} else {
		b.Failed++
	}
}

// ClearResponse reports how many entries were removed
type ClearResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// DeleteEntryResponse is returned by DELETE /daily-notifications
type DeleteEntryResponse struct {
	LicensePlate string `json:"licensePlate"`
	Deleted      bool   `json:"deleted"`
}

// ResetResponse is returned when a ledger entry is reset
type ResetResponse struct {
	LicensePlate string `json:"licensePlate"`
	Reset        bool   `json:"reset"`
}

// SentListResponse is the sent ledger projection
type SentListResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Count   int                   `json:"count"`
}

// UrgencyResponse is one row of the renewal listing
type UrgencyResponse struct {
	LicensePlate    string `json:"licensePlate"`
	CustomerName    string `json:"customerName"`
	Phone           string `json:"phone"`
	VehicleType     string `json:"vehicleType,omitempty"`
	Brand           string `json:"brand,omitempty"`
	ExpiryDate      string `json:"expiryDate,omitempty"`
	DaysUntilExpiry *int   `json:"daysUntilExpiry"`
	Status          string `json:"status"`
	Sent            bool   `json:"sent"`
	InSnapshot      bool   `json:"inSnapshot"`
}

// ToSnapshotResponse converts a stored snapshot
func ToSnapshotResponse(s *renewal.DailySnapshot, active bool) SnapshotResponse {
	if s == nil {
		return SnapshotResponse{LicensePlates: []string{}}
	}
	plates := s.LicensePlates
	if plates == nil {
		plates = []string{}
	}
	created := s.CreatedAt
	gen := s.GenerationID
	return SnapshotResponse{
		LicensePlates: plates,
		CreatedAt:     &created,
		GenerationID:  &gen,
		Active:        active,
	}
}

// ToStatusResponse builds the plate map from ledger entries
func ToStatusResponse(entries []renewal.NotificationStatus) StatusResponse {
	out := make(StatusResponse, len(entries))
	for _, e := range entries {
		out[e.LicensePlate] = StatusEntry{Sent: e.Sent, SentAt: e.SentAt}
	}
	return out
}

// ToLedgerEntryResponse converts a ledger entry
func ToLedgerEntryResponse(e renewal.NotificationStatus) LedgerEntryResponse {
	return LedgerEntryResponse{
		LicensePlate: e.LicensePlate,
		Sent:         e.Sent,
		SentAt:       e.SentAt,
	}
}

// ToMarkSentResponse converts the entry returned by MarkSent
func ToMarkSentResponse(e *renewal.NotificationStatus, created bool) *MarkSentResponse {
	return &MarkSentResponse{
		LedgerEntryResponse: ToLedgerEntryResponse(*e),
		Created:             created,
	}
}

// ToSentListResponse converts the sent projection
func ToSentListResponse(entries []renewal.NotificationStatus) *SentListResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToLedgerEntryResponse(e)
	}
	return &SentListResponse{Entries: out, Count: len(out)}
}

// ToUrgencyResponse converts a record and its derived urgency
func ToUrgencyResponse(r renewal.CustomerTaxRecord, u renewal.DerivedUrgency, sent, inSnapshot bool) UrgencyResponse {
	resp := UrgencyResponse{
		LicensePlate: u.LicensePlate,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		VehicleType:  r.VehicleType,
		Brand:        r.Brand,
		Status:       string(u.Status),
		Sent:         sent,
		InSnapshot:   inSnapshot,
	}
	if u.HasExpiry() {
		days := u.DaysUntilExpiry
		resp.ExpiryDate = u.ExpiryDate.Format("2006-01-02")
		resp.DaysUntilExpiry = &days
	}
	return resp
}
