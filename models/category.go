package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	ImageURL string `json:"imageUrl"`
	// Enabled hides the category from the storefront grid when false.
	// No column default: writers always state it, so disabling works.
	Enabled bool `gorm:"not null" json:"enabled"`
	// LeySeca blocks purchase of the category's products without hiding them.
	LeySeca   bool      `gorm:"not null" json:"leySeca"`
	Products  []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
