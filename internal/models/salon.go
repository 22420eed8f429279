package models

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive SubscriptionStatus = "active"
	SubscriptionLate   SubscriptionStatus = "late"
)

type Salon struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50;default:'Salão'" json:"category"`
	Address     string `gorm:"size:255" json:"address"`
	Timezone    string `gorm:"size:50" json:"timezone"`

	Plan string `gorm:"size:20;default:'start'" json:"plan"`

	// Agenda configuration. Slots run [open, close) stepping by the interval.
	OpenTime        string `gorm:"size:5;default:'09:00'" json:"open_time"`
	CloseTime       string `gorm:"size:5;default:'18:00'" json:"close_time"`
	SlotIntervalMin int    `gorm:"default:30" json:"slot_interval_min"`

	CoverImage string `gorm:"size:255" json:"cover_image"`
	AboutUs    string `gorm:"type:text" json:"about_us"`

	Instagram string `gorm:"size:100" json:"instagram"`
	Whatsapp  string `gorm:"size:20" json:"whatsapp"`
	Website   string `gorm:"size:100" json:"website"`

	SubscriptionStatus      SubscriptionStatus `gorm:"size:20;default:'active'" json:"subscription_status"`
	MonthlyFee              float64            `json:"monthly_fee"`
	AppliedCoupon           string             `gorm:"size:30" json:"applied_coupon"`
	NextBillingDate         *time.Time         `json:"next_billing_date"`
	AllowClientCancellation bool               `gorm:"default:true" json:"allow_client_cancellation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
