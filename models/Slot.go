package models

import "time"

// Slot is a bookable calendar interval. IsBooked only ever flips
// false -> true; the composite index keeps identical windows out.
type Slot struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"uniqueIndex:idx_slot_window;not null" json:"date"`
	StartTime string    `gorm:"uniqueIndex:idx_slot_window;not null" json:"starttime"` // "HH:MM"
	EndTime   string    `gorm:"uniqueIndex:idx_slot_window;not null" json:"endtime"`   // "HH:MM"
	Mode      string    `gorm:"uniqueIndex:idx_slot_window;not null" json:"mode"`      // online, in-person
	IsBooked  bool      `gorm:"not null;default:false" json:"isBooked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
