package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

const (
	MinServicePrice  = 50
	DefaultOpenTime  = "09:00 AM"
	DefaultCloseTime = "09:00 PM"
)

type SalonStatus string

const (
	SalonUnverified SalonStatus = "Unverified"
	SalonVerified   SalonStatus = "Verified"
	SalonActive     SalonStatus = "Active"
	SalonSuspended  SalonStatus = "Suspended"
)

type ServiceInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	DurationMin int     `json:"durationMin"`
	Category    string  `json:"category"`
}

type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type SalonRegistration struct {
	SalonName   string         `json:"salonName"`
	OwnerName   string         `json:"ownerName"`
	PhoneNumber string         `json:"phoneNumber"`
	Email       string         `json:"email"`
	Address     string         `json:"address"`
	SalonImage  string         `json:"salonImage"`
	Location    Location       `json:"location"`
	OpenTime    string         `json:"openTime"`
	CloseTime   string         `json:"closeTime"`
	Services    []ServiceInput `json:"services"`
}

// BuildSalon validates a registration and returns the salon to persist,
// with its phone normalized and catalog ids assigned.
func BuildSalon(in SalonRegistration) (*models.Salon, error) {
	if strings.TrimSpace(in.SalonName) == "" ||
		strings.TrimSpace(in.OwnerName) == "" ||
		strings.TrimSpace(in.Address) == "" {
		return nil, httperr.Validation("missing_fields", "Salon name, owner name and address are required.")
	}

	phone, err := validators.NormalizePhone(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	lat, lon := in.Location.Latitude, in.Location.Longitude
	if lat == nil || lon == nil {
		return nil, httperr.Validation("missing_location", "Salon location is required.")
	}
	if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
		return nil, httperr.Validation("invalid_location", "Latitude or longitude is out of range.")
	}

	if len(in.Services) == 0 {
		return nil, httperr.Validation("missing_services", "At least one service is required.")
	}

	salon := &models.Salon{
		ID:          uuid.NewString(),
		SalonName:   strings.TrimSpace(in.SalonName),
		OwnerName:   strings.TrimSpace(in.OwnerName),
		PhoneNumber: phone,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Address:     strings.TrimSpace(in.Address),
		Image:       in.SalonImage,
		Latitude:    lat,
		Longitude:   lon,
		OpenTime:    orDefault(in.OpenTime, DefaultOpenTime),
		CloseTime:   orDefault(in.CloseTime, DefaultCloseTime),
		Status:      string(SalonUnverified),
	}

	for _, s := range in.Services {
		svc, err := BuildService(salon.ID, s)
		if err != nil {
			return nil, err
		}
		salon.Services = append(salon.Services, *svc)
	}

	return salon, nil
}

func BuildService(salonID string, in ServiceInput) (*models.SalonService, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.Validation("invalid_service", "Every service needs a name.")
	}
	if in.Price < MinServicePrice {
		return nil, httperr.Validation("invalid_service", "Service price must be at least 50.")
	}
	return &models.SalonService{
		ID:          uuid.NewString(),
		SalonID:     salonID,
		Name:        name,
		Description: in.Description,
		DurationMin: in.DurationMin,
		Price:       in.Price,
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		Active:      true,
	}, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
