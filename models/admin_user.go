package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "superadmin"
)

func (r AdminRole) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type AdminUser struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	// Password holds the bcrypt hash; it is never serialized.
	Password  string    `gorm:"not null" json:"-"`
	Role      AdminRole `gorm:"type:VARCHAR(20);not null;default:'admin'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
