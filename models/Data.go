package models

import "time"

// Data is an intake submission waiting to be linked to a slot.
type Data struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Phone       string    `gorm:"not null" json:"phone"`
	Date        time.Time `gorm:"not null" json:"date"`
	Time        string    `gorm:"not null" json:"time"`
	Mode        string    `gorm:"not null" json:"mode"`
	Email       string    `gorm:"not null" json:"email"`
	IsSubmitted bool      `gorm:"not null;default:false" json:"isSubmitted"`
	CreatedAt   time.Time `json:"created_at"`
}
