package models

import "time"

type SalonService struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"_id"`
	SalonID string `gorm:"type:uuid;index;not null" json:"salon"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description,omitempty"`
	DurationMin int     `json:"durationMin,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50" json:"category,omitempty"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
