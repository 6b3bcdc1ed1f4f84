package persistence

import (
	"context"
	"strings"

	"github.com/taxrenew/backend/internal/domain/renewal"
	"github.com/taxrenew/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTaxRecordRepository reads the customer registry
type GormTaxRecordRepository struct {
	db *gorm.DB
}

// NewGormTaxRecordRepository creates a new GormTaxRecordRepository
func NewGormTaxRecordRepository(db *gorm.DB) *GormTaxRecordRepository {
	return &GormTaxRecordRepository{db: db}
}

// FindTracked returns records whose tags contain tag. Tags are stored as a
// JSON array in a text column; LIKE narrows the scan and HasTag drops
// wildcard and substring matches.
func (r *GormTaxRecordRepository) FindTracked(ctx context.Context, tag string) ([]renewal.CustomerTaxRecord, error) {
	tag = strings.TrimSpace(tag)

	query := r.db.WithContext(ctx).Order("license_plate ASC")
	if tag != "" {
		query = query.Where("LOWER(tags) LIKE ?", "%\""+strings.ToLower(tag)+"\"%")
	}

	var rows []models.CustomerTaxRecordModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]renewal.CustomerTaxRecord, 0, len(rows))
	for i := range rows {
		rec := rows[i].ToDomain()
		if tag != "" && !rec.HasTag(tag) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Ensure GormTaxRecordRepository implements the interface
var _ renewal.TaxRecordRepository = (*GormTaxRecordRepository)(nil)
