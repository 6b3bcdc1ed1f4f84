package persistence

import (
	"context"
	"errors"

	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/domain/shared"
	"github.com/taxrenew/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotRepository implements renewal.SnapshotRepository using GORM.
// Every write runs in one transaction so a snapshot is replaced all-or-nothing.
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Find loads the header and its entries in position order
func (r *GormSnapshotRepository) Find(ctx context.Context, key string) (*renewal.DailySnapshot, error) {
	var header models.DailySnapshotModel
	if err := r.db.WithContext(ctx).First(&header, "snapshot_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var entries []models.DailySnapshotEntryModel
	err := r.db.WithContext(ctx).
		Where("snapshot_key = ?", key).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return header.ToDomain(entries), nil
}

// Replace writes s over any snapshot stored under the same key. The header
// is upserted first so concurrent replaces queue on its row lock instead of
// racing to insert it; the last one to commit wins.
func (r *GormSnapshotRepository) Replace(ctx context.Context, s *renewal.DailySnapshot) error {
	header, entries := models.DailySnapshotModelsFromDomain(s)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"generation_id", "created_at"}),
		}).Create(header).Error
		if err != nil {
			return err
		}
		if err := tx.Where("snapshot_key = ?", s.Key).Delete(&models.DailySnapshotEntryModel{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 100).Error
	})
}

// RemoveEntry deletes one plate from the snapshot
func (r *GormSnapshotRepository) RemoveEntry(ctx context.Context, key, plate string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("snapshot_key = ? AND license_plate = ?", key, plate).
		Delete(&models.DailySnapshotEntryModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Clear deletes the entries and the header, returning how many entries were removed
func (r *GormSnapshotRepository) Clear(ctx context.Context, key string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("snapshot_key = ?", key).Delete(&models.DailySnapshotEntryModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return tx.Where("snapshot_key = ?", key).Delete(&models.DailySnapshotModel{}).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Ensure GormSnapshotRepository implements the interface
var _ renewal.SnapshotRepository = (*GormSnapshotRepository)(nil)
