package models

import "time"

type Salon struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"_id"`
	SalonName   string `gorm:"size:120;not null" json:"salonName"`
	OwnerName   string `gorm:"size:100;not null" json:"ownerName"`
	PhoneNumber string `gorm:"size:20;uniqueIndex;not null" json:"phoneNumber"`
	Email       string `gorm:"size:100" json:"email,omitempty"`
	Address     string `gorm:"size:255;not null" json:"address"`
	Image       string `gorm:"size:500" json:"salonImage,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	OpenTime  string `gorm:"size:10;default:'09:00 AM'" json:"openTime"`
	CloseTime string `gorm:"size:10;default:'09:00 PM'" json:"closeTime"`

	Status string  `gorm:"size:20;default:'Unverified'" json:"status"`
	Rating float64 `gorm:"default:0" json:"rating"`

	Services []SalonService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Salon) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}
