package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MeasurementType string

const (
	// MeasurementUnit sells by discrete count; price is per unit.
	MeasurementUnit MeasurementType = "unit"
	// MeasurementWeight sells by weight; price is per kilogram, quantities are grams.
	MeasurementWeight MeasurementType = "weight"
)

func (m MeasurementType) Valid() bool {
	return m == MeasurementUnit || m == MeasurementWeight
}

type Product struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Price           float64         `gorm:"not null" json:"price"`
	CategoryID      string          `gorm:"not null;index" json:"categoryId"`
	ImageURL        string          `json:"imageUrl"`
	MeasurementType MeasurementType `gorm:"type:VARCHAR(10);not null;default:'unit'" json:"measurementType"`
	// ExternalCode links a product to its row in the supplier's Excel catalog.
	ExternalCode string    `gorm:"index" json:"externalCode,omitempty"`
	Stock        float64   `json:"stock"`
	Featured     bool      `gorm:"not null" json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
