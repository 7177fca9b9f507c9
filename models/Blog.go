package models

import "time"

type Blog struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	Image     string    `json:"image,omitempty"` // data URI or URL
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
