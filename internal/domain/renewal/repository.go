package renewal

import (
	"context"
	"time"
)

// TaxRecordRepository reads the customer registry
type TaxRecordRepository interface {
	// FindTracked returns every record carrying the tracking tag
	FindTracked(ctx context.Context, tag string) ([]CustomerTaxRecord, error)
}

// NotificationStatusRepository persists the notification ledger
type NotificationStatusRepository interface {
	// MarkSent records a first send with a single conditional upsert.
	// It returns the stored entry and whether this call created it. An entry
	// that is already sent is left untouched and returned as is.
	MarkSent(ctx context.Context, plate string, sentAt time.Time) (*NotificationStatus, bool, error)

	// Delete removes the entry for plate. Returns false if there was none.
	Delete(ctx context.Context, plate string) (bool, error)

	// FindAll returns every ledger entry
	FindAll(ctx context.Context) ([]NotificationStatus, error)

	// FindSent returns sent entries matching the filter, oldest first
	FindSent(ctx context.Context, filter SentFilter) ([]NotificationStatus, error)
}

// SnapshotRepository persists the daily snapshot document
type SnapshotRepository interface {
	// Find returns the snapshot stored under key, or shared.ErrNotFound
	Find(ctx context.Context, key string) (*DailySnapshot, error)

	// Replace atomically swaps the stored snapshot for s
	Replace(ctx context.Context, s *DailySnapshot) error

	// RemoveEntry deletes one plate. Returns false if it was absent.
	RemoveEntry(ctx context.Context, key, plate string) (bool, error)

	// Clear removes the header and all entries, returning the entry count
	Clear(ctx context.Context, key string) (int64, error)
}
