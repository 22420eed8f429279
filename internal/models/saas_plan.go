package models

import "time"

type SaaSPlan struct {
	ID   string `gorm:"primaryKey;size:30" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`

	Price                float64 `json:"price"`
	PerProfessionalPrice float64 `json:"per_professional_price"`
	MaxProfessionals     int     `json:"max_professionals"`
	IsRecommended        bool    `gorm:"default:false" json:"is_recommended"`

	Features []string `gorm:"serializer:json;type:text" json:"features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
