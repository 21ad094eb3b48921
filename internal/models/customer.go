package models

import "time"

// Customer is an end user who books services. Phone numbers are stored in
// E.164 form.
type Customer struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"_id"`
	FullName    string `gorm:"size:100;not null" json:"fullName"`
	PhoneNumber string `gorm:"size:20;uniqueIndex;not null" json:"phoneNumber"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
