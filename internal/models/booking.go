package models

import "time"

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" json:"_id"`

	CustomerID string   `gorm:"type:uuid;index;not null" json:"user"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	SalonID string `gorm:"type:uuid;index;not null" json:"salon"`
	Salon   Salon  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Items []BookingItem `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	Date string `gorm:"size:10;index;not null" json:"date"`
	Time string `gorm:"size:20;not null" json:"time"`
	// ScheduledAt is Date and Time as one instant; listings order by it.
	ScheduledAt time.Time `gorm:"index" json:"scheduledAt"`

	TotalPrice    float64 `gorm:"not null" json:"totalPrice"`
	PaymentMethod string  `gorm:"size:20;not null" json:"paymentMethod"`
	BookingStatus string  `gorm:"size:20;index;not null" json:"bookingStatus"`
	PaymentStatus string  `gorm:"size:20;not null" json:"paymentStatus"`

	RazorpayOrderID   string `gorm:"size:100;index" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string `gorm:"size:100" json:"razorpayPaymentId,omitempty"`

	CommissionRate   float64 `json:"commissionRate"`
	CommissionAmount float64 `json:"commissionAmount"`

	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingItem snapshots a catalog entry at booking time.
type BookingItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	BookingID string  `gorm:"type:uuid;index;not null" json:"-"`
	ServiceID string  `gorm:"size:64" json:"serviceId,omitempty"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
}
