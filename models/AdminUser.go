package models

import "time"

type AdminUser struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Admin        string    `gorm:"uniqueIndex;not null" json:"admin"`
	PasswordHash string    `gorm:"not null" json:"-"` // bcrypt
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
