package dto

import (
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// SalonListItemDTO is the compact card shown in search results.
type SalonListItemDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Services string   `json:"services"`
	ImageURL string   `json:"imageUrl"`
	Rating   float64  `json:"rating"`
	Distance *float64 `json:"distance,omitempty"`
}

func NewSalonListItemDTO(s *models.Salon, distance float64, hasDistance bool) SalonListItemDTO {
	names := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		names = append(names, svc.Name)
	}

	out := SalonListItemDTO{
		ID:       s.ID,
		Name:     s.SalonName,
		Address:  s.Address,
		Services: strings.Join(names, ", "),
		ImageURL: s.Image,
		Rating:   s.Rating,
	}
	if hasDistance {
		out.Distance = &distance
	}
	return out
}

type SalonDetailDTO struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Address   string                `json:"address"`
	ImageURL  string                `json:"imageUrl"`
	OpenTime  string                `json:"openTime"`
	CloseTime string                `json:"closeTime"`
	Rating    float64               `json:"rating"`
	Services  []models.SalonService `json:"services"`
	Latitude  *float64              `json:"latitude,omitempty"`
	Longitude *float64              `json:"longitude,omitempty"`
}

func NewSalonDetailDTO(s *models.Salon) SalonDetailDTO {
	services := s.Services
	if services == nil {
		services = []models.SalonService{}
	}
	return SalonDetailDTO{
		ID:        s.ID,
		Name:      s.SalonName,
		Address:   s.Address,
		ImageURL:  s.Image,
		OpenTime:  s.OpenTime,
		CloseTime: s.CloseTime,
		Rating:    s.Rating,
		Services:  services,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}

// PartnerDTO is what a salon partner sees about their own account.
type PartnerDTO struct {
	ID          string                `json:"_id"`
	SalonName   string                `json:"salonName"`
	OwnerName   string                `json:"ownerName"`
	PhoneNumber string                `json:"phoneNumber"`
	Email       string                `json:"email,omitempty"`
	Address     string                `json:"address"`
	SalonImage  string                `json:"salonImage,omitempty"`
	Status      string                `json:"status"`
	IsPartner   bool                  `json:"isPartner"`
	Services    []models.SalonService `json:"services,omitempty"`
}

func NewPartnerDTO(s *models.Salon) PartnerDTO {
	return PartnerDTO{
		ID:          s.ID,
		SalonName:   s.SalonName,
		OwnerName:   s.OwnerName,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		Address:     s.Address,
		SalonImage:  s.Image,
		Status:      s.Status,
		IsPartner:   true,
		Services:    s.Services,
	}
}

type CustomerDTO struct {
	ID          string `json:"_id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	IsPartner   bool   `json:"isPartner"`
}

func NewCustomerDTO(c *models.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, FullName: c.FullName, PhoneNumber: c.PhoneNumber}
}
