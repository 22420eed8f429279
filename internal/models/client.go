package models

import "time"

// Clients are shared across tenants and keyed by phone. The first write for
// a phone wins; later bookings with the same phone reuse the record.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	BirthDate string `gorm:"size:10" json:"birth_date"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
