package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/domain/shared"
	"github.com/taxrenew/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationStatusRepository implements renewal.NotificationStatusRepository using GORM
type GormNotificationStatusRepository struct {
	db *gorm.DB
}

// NewGormNotificationStatusRepository creates a new GormNotificationStatusRepository
func NewGormNotificationStatusRepository(db *gorm.DB) *GormNotificationStatusRepository {
	return &GormNotificationStatusRepository{db: db}
}

// MarkSent inserts a sent entry, or flips an unsent one, in a single statement:
//
//	INSERT ... ON CONFLICT (license_plate) DO UPDATE SET ... WHERE notification_statuses.sent = false
//
// An already-sent row is not touched, so RowsAffected tells a first send from a replay.
func (r *GormNotificationStatusRepository) MarkSent(ctx context.Context, plate string, sentAt time.Time) (*renewal.NotificationStatus, bool, error) {
	model := &models.NotificationStatusModel{
		LicensePlate: plate,
		Sent:         true,
		SentAt:       sentAt,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "license_plate"}},
			DoUpdates: clause.AssignmentColumns([]string{"sent", "sent_at", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: models.NotificationStatusModel{}.TableName(), Name: "sent"}, Value: false},
			}},
		}).
		Create(model)
	if result.Error != nil {
		return nil, false, result.Error
	}
	created := result.RowsAffected > 0

	var stored models.NotificationStatusModel
	if err := r.db.WithContext(ctx).First(&stored, "license_plate = ?", plate).Error; err != nil {
		return nil, false, err
	}
	return stored.ToDomain(), created, nil
}

// Delete removes the entry for plate
func (r *GormNotificationStatusRepository) Delete(ctx context.Context, plate string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("license_plate = ?", plate).
		Delete(&models.NotificationStatusModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByPlate returns the entry for plate or shared.ErrNotFound
func (r *GormNotificationStatusRepository) FindByPlate(ctx context.Context, plate string) (*renewal.NotificationStatus, error) {
	var model models.NotificationStatusModel
	if err := r.db.WithContext(ctx).First(&model, "license_plate = ?", plate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every ledger entry ordered by plate
func (r *GormNotificationStatusRepository) FindAll(ctx context.Context) ([]renewal.NotificationStatus, error) {
	var rows []models.NotificationStatusModel
	if err := r.db.WithContext(ctx).Order("license_plate ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStatuses(rows), nil
}

// FindSent returns sent entries in [filter.From, filter.Until), oldest first
func (r *GormNotificationStatusRepository) FindSent(ctx context.Context, filter renewal.SentFilter) ([]renewal.NotificationStatus, error) {
	query := r.db.WithContext(ctx).Where("sent = ?", true)
	if filter.From != nil {
		query = query.Where("sent_at >= ?", *filter.From)
	}
	if filter.Until != nil {
		query = query.Where("sent_at < ?", *filter.Until)
	}

	var rows []models.NotificationStatusModel
	if err := query.Order("sent_at ASC").Order("license_plate ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStatuses(rows), nil
}

func toStatuses(rows []models.NotificationStatusModel) []renewal.NotificationStatus {
	out := make([]renewal.NotificationStatus, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormNotificationStatusRepository implements the interface
var _ renewal.NotificationStatusRepository = (*GormNotificationStatusRepository)(nil)
