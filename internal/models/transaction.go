package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentPix         PaymentMethod = "pix"
	PaymentDebit       PaymentMethod = "debit"
	PaymentCredit      PaymentMethod = "credit"
	PaymentCreditSplit PaymentMethod = "credit_split"
)

type Transaction struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Description   string          `gorm:"size:255" json:"description"`
	Amount        float64         `json:"amount"`
	Type          TransactionType `gorm:"size:10;not null" json:"type"`
	Date          time.Time       `gorm:"index" json:"date"`
	Category      string          `gorm:"size:50" json:"category"`
	PaymentMethod PaymentMethod   `gorm:"size:20;default:'cash'" json:"payment_method"`

	// Set on credit_split records: which part of the expanded series this is.
	InstallmentCurrent int `json:"installment_current"`
	InstallmentTotal   int `json:"installment_total"`

	// Income records derived from bookings carry the appointment so a
	// cancellation can reverse them.
	AutoGenerated bool  `gorm:"default:false" json:"auto_generated"`
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
