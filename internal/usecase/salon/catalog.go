package salon

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func requirePartner(p auth.Principal) error {
	if !p.IsPartner() {
		return httperr.Unauthorized("wrong_role", "Salon access required.")
	}
	return nil
}

func record(d *audit.Dispatcher, p auth.Principal, action, entity, entityID string, meta map[string]any) {
	d.Dispatch(audit.Event{
		SalonID:   p.ID(),
		ActorID:   p.ID(),
		ActorKind: p.Kind().String(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  meta,
	})
}

// ======================================================
// SERVICES
// ======================================================

type ListServices struct {
	repo salon.Repository
}

func NewListServices(repo salon.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context, p auth.Principal, f salon.ServiceFilter) ([]models.SalonService, error) {
	if err := requirePartner(p); err != nil {
		return nil, err
	}
	return uc.repo.ListServices(ctx, p.ID(), f)
}

type AddService struct {
	repo  salon.Repository
	audit *audit.Dispatcher
}

func NewAddService(repo salon.Repository, d *audit.Dispatcher) *AddService {
	return &AddService{repo: repo, audit: d}
}

func (uc *AddService) Execute(ctx context.Context, p auth.Principal, in identity.ServiceInput) (*models.SalonService, error) {
	if err := requirePartner(p); err != nil {
		return nil, err
	}
	svc, err := identity.BuildService(p.ID(), in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	record(uc.audit, p, "service_created", "salon_service", svc.ID, map[string]any{"name": svc.Name, "price": svc.Price})
	return svc, nil
}

type ServicePatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"durationMin"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Active      *bool    `json:"active"`
}

type UpdateService struct {
	repo  salon.Repository
	audit *audit.Dispatcher
}

func NewUpdateService(repo salon.Repository, d *audit.Dispatcher) *UpdateService {
	return &UpdateService{repo: repo, audit: d}
}

func (uc *UpdateService) Execute(ctx context.Context, p auth.Principal, id string, patch ServicePatch) (*models.SalonService, error) {
	if err := requirePartner(p); err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, p.ID(), id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, httperr.Validation("invalid_service", "Every service needs a name.")
		}
		svc.Name = name
	}
	if patch.Description != nil {
		svc.Description = *patch.Description
	}
	if patch.DurationMin != nil {
		svc.DurationMin = *patch.DurationMin
	}
	if patch.Price != nil {
		if *patch.Price < identity.MinServicePrice {
			return nil, httperr.Validation("invalid_service", "Service price must be at least 50.")
		}
		svc.Price = *patch.Price
	}
	if patch.Category != nil {
		svc.Category = strings.ToLower(strings.TrimSpace(*patch.Category))
	}
	if patch.Active != nil {
		svc.Active = *patch.Active
	}

	if err := uc.repo.SaveService(ctx, svc); err != nil {
		return nil, err
	}
	record(uc.audit, p, "service_updated", "salon_service", svc.ID, map[string]any{"price": svc.Price, "active": svc.Active})
	return svc, nil
}

// ======================================================
// PROFILE
// ======================================================

type ProfilePatch struct {
	SalonName  *string            `json:"salonName"`
	OwnerName  *string            `json:"ownerName"`
	Email      *string            `json:"email"`
	Address    *string            `json:"address"`
	SalonImage *string            `json:"salonImage"`
	Location   *identity.Location `json:"location"`
}

type UpdateProfile struct {
	repo  salon.Repository
	audit *audit.Dispatcher
}

func NewUpdateProfile(repo salon.Repository, d *audit.Dispatcher) *UpdateProfile {
	return &UpdateProfile{repo: repo, audit: d}
}

func (uc *UpdateProfile) Execute(ctx context.Context, p auth.Principal, patch ProfilePatch) (*models.Salon, error) {
	if err := requirePartner(p); err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSalon(ctx, p.ID())
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string, required bool) error {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if required && t == "" {
			return httperr.Validation("missing_fields", "Salon name, owner name and address cannot be empty.")
		}
		*dst = t
		return nil
	}
	if err := set(&s.SalonName, patch.SalonName, true); err != nil {
		return nil, err
	}
	if err := set(&s.OwnerName, patch.OwnerName, true); err != nil {
		return nil, err
	}
	if err := set(&s.Address, patch.Address, true); err != nil {
		return nil, err
	}
	_ = set(&s.Email, patch.Email, false)
	_ = set(&s.Image, patch.SalonImage, false)
	s.Email = strings.ToLower(s.Email)

	if loc := patch.Location; loc != nil {
		if loc.Latitude == nil || loc.Longitude == nil {
			return nil, httperr.Validation("missing_location", "Both latitude and longitude are required.")
		}
		if *loc.Latitude < -90 || *loc.Latitude > 90 || *loc.Longitude < -180 || *loc.Longitude > 180 {
			return nil, httperr.Validation("invalid_location", "Latitude or longitude is out of range.")
		}
		s.Latitude, s.Longitude = loc.Latitude, loc.Longitude
	}

	if err := uc.repo.SaveSalonProfile(ctx, s); err != nil {
		return nil, err
	}
	record(uc.audit, p, "profile_updated", "salon", s.ID, nil)
	return s, nil
}

type UpdateTimings struct {
	repo  salon.Repository
	audit *audit.Dispatcher
}

func NewUpdateTimings(repo salon.Repository, d *audit.Dispatcher) *UpdateTimings {
	return &UpdateTimings{repo: repo, audit: d}
}

func (uc *UpdateTimings) Execute(ctx context.Context, p auth.Principal, open, closing string) (*models.Salon, error) {
	if err := requirePartner(p); err != nil {
		return nil, err
	}

	o, c, err := salon.NormalizeTimings(open, closing)
	if err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSalon(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	s.OpenTime, s.CloseTime = o, c

	if err := uc.repo.SaveSalonProfile(ctx, s); err != nil {
		return nil, err
	}
	record(uc.audit, p, "timings_updated", "salon", s.ID, map[string]any{"openTime": o, "closeTime": c})
	return s, nil
}
