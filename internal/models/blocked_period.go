package models

import "time"

// BlockedPeriod closes a whole date for booking. When ProfessionalID is set
// the block applies to that professional only, otherwise to the salon.
type BlockedPeriod struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Date           string `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	ProfessionalID *uint  `json:"professional_id"`
	Reason         string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
