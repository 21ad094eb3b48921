package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type BookingItemDTO struct {
	ServiceID string  `json:"serviceId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type bookingBase struct {
	ID            string           `json:"_id"`
	Services      []BookingItemDTO `json:"services"`
	Date          string           `json:"date"`
	Time          string           `json:"time"`
	TotalPrice    float64          `json:"totalPrice"`
	PaymentMethod string           `json:"paymentMethod"`
	BookingStatus string           `json:"bookingStatus"`
	PaymentStatus string           `json:"paymentStatus"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func newBase(b *models.Booking) bookingBase {
	items := make([]BookingItemDTO, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, BookingItemDTO{ServiceID: it.ServiceID, Name: it.Name, Price: it.Price})
	}
	return bookingBase{
		ID:            b.ID,
		Services:      items,
		Date:          b.Date,
		Time:          b.Time,
		TotalPrice:    b.TotalPrice,
		PaymentMethod: b.PaymentMethod,
		BookingStatus: b.BookingStatus,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
	}
}

// CustomerBookingDTO is the my-appointments projection.
type CustomerBookingDTO struct {
	bookingBase
	SalonID      string `json:"salonId"`
	SalonName    string `json:"salonName"`
	SalonAddress string `json:"salonAddress"`
}

func NewCustomerBookingDTO(b *models.Booking) CustomerBookingDTO {
	return CustomerBookingDTO{
		bookingBase:  newBase(b),
		SalonID:      b.SalonID,
		SalonName:    b.Salon.SalonName,
		SalonAddress: b.Salon.Address,
	}
}

// SalonBookingDTO is what a partner sees of a booking.
type SalonBookingDTO struct {
	bookingBase
	CustomerID    string  `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	Commission    float64 `json:"commissionAmount"`
}

func NewSalonBookingDTO(b *models.Booking) SalonBookingDTO {
	return SalonBookingDTO{
		bookingBase:   newBase(b),
		CustomerID:    b.CustomerID,
		CustomerName:  b.Customer.FullName,
		CustomerPhone: b.Customer.PhoneNumber,
		Commission:    b.CommissionAmount,
	}
}
