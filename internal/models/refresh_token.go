package models

import (
	"time"
)

// RefreshToken stores issued refresh tokens so they can be rotated and revoked.
// UserID refers to either a patient or a doctor, discriminated by Role.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	Token     string    `gorm:"size:512;not null;index" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`
}
