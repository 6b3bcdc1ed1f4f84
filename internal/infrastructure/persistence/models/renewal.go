package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/taxrenew/backend/internal/domain/renewal"
)

// DailySnapshotModel is the header row of a daily snapshot document
type DailySnapshotModel struct {
	SnapshotKey  string    `gorm:"column:snapshot_key;type:varchar(32);primaryKey"`
	GenerationID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DailySnapshotModel) TableName() string {
	return "daily_snapshots"
}

// DailySnapshotEntryModel is one ordered plate of a daily snapshot
type DailySnapshotEntryModel struct {
	ID           uint   `gorm:"primaryKey"`
	SnapshotKey  string `gorm:"column:snapshot_key;type:varchar(32);not null;uniqueIndex:uq_daily_snapshot_entries_key_plate,priority:1"`
	LicensePlate string `gorm:"type:varchar(64);not null;uniqueIndex:uq_daily_snapshot_entries_key_plate,priority:2"`
	Position     int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DailySnapshotEntryModel) TableName() string {
	return "daily_snapshot_entries"
}

// ToDomain assembles a snapshot from its header and position-ordered entries
func (m *DailySnapshotModel) ToDomain(entries []DailySnapshotEntryModel) *renewal.DailySnapshot {
	plates := make([]string, len(entries))
	for i, e := range entries {
		plates[i] = e.LicensePlate
	}
	return &renewal.DailySnapshot{
		Key:           m.SnapshotKey,
		GenerationID:  m.GenerationID,
		LicensePlates: plates,
		CreatedAt:     m.CreatedAt,
	}
}

// DailySnapshotModelsFromDomain splits a snapshot into its header and entry rows
func DailySnapshotModelsFromDomain(s *renewal.DailySnapshot) (*DailySnapshotModel, []DailySnapshotEntryModel) {
	header := &DailySnapshotModel{
		SnapshotKey:  s.Key,
		GenerationID: s.GenerationID,
		CreatedAt:    s.CreatedAt,
	}
	entries := make([]DailySnapshotEntryModel, len(s.LicensePlates))
	for i, plate := range s.LicensePlates {
		entries[i] = DailySnapshotEntryModel{
			SnapshotKey:  s.Key,
			LicensePlate: plate,
			Position:     i,
		}
	}
	return header, entries
}

// NotificationStatusModel is the persistence model for a ledger entry
type NotificationStatusModel struct {
	LicensePlate string    `gorm:"type:varchar(64);primaryKey"`
	Sent         bool      `gorm:"not null"`
	SentAt       time.Time `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (NotificationStatusModel) TableName() string {
	return "notification_statuses"
}

// ToDomain converts the persistence model to a ledger entry
func (m *NotificationStatusModel) ToDomain() *renewal.NotificationStatus {
	return &renewal.NotificationStatus{
		LicensePlate: m.LicensePlate,
		Sent:         m.Sent,
		SentAt:       m.SentAt,
	}
}
