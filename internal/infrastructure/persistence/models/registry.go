package models

import (
	"time"

	"github.com/taxrenew/backend/internal/domain/renewal"
)

// CustomerTaxRecordModel maps the customer registry table. The service only reads it.
type CustomerTaxRecordModel struct {
	LicensePlate string   `gorm:"type:varchar(64);primaryKey"`
	CustomerName string   `gorm:"type:varchar(200)"`
	Phone        string   `gorm:"type:varchar(50)"`
	LastTaxDate  string   `gorm:"type:varchar(40)"`
	ExpiryDate   *string  `gorm:"type:varchar(40)"`
	Tags         []string `gorm:"type:text;serializer:json"`
	VehicleType  string   `gorm:"type:varchar(50)"`
	Brand        string   `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (CustomerTaxRecordModel) TableName() string {
	return "customer_tax_records"
}

// ToDomain converts the persistence model to a registry record
func (m *CustomerTaxRecordModel) ToDomain() renewal.CustomerTaxRecord {
	r := renewal.CustomerTaxRecord{
		LicensePlate: m.LicensePlate,
		CustomerName: m.CustomerName,
		Phone:        m.Phone,
		LastTaxDate:  m.LastTaxDate,
		Tags:         m.Tags,
		VehicleType:  m.VehicleType,
		Brand:        m.Brand,
	}
	if m.ExpiryDate != nil {
		r.ExpiryDate = *m.ExpiryDate
	}
	return r
}

// CustomerTaxRecordModelFromDomain creates a model from a registry record
func CustomerTaxRecordModelFromDomain(r renewal.CustomerTaxRecord) *CustomerTaxRecordModel {
	m := &CustomerTaxRecordModel{
		LicensePlate: r.LicensePlate,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		LastTaxDate:  r.LastTaxDate,
		Tags:         r.Tags,
		VehicleType:  r.VehicleType,
		Brand:        r.Brand,
	}
	if r.ExpiryDate != "" {
		expiry := r.ExpiryDate
		m.ExpiryDate = &expiry
	}
	return m
}
