package models

import "time"

type Coupon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code            string  `gorm:"size:30;uniqueIndex;not null" json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
	Active          bool    `gorm:"default:true" json:"active"`
	Uses            int     `gorm:"default:0" json:"uses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
