package salon

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/geo"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	SortRating   = "rating"
	SortDistance = "distance"
)

type ListSalonsInput struct {
	Search  string
	Service string
	Sort    string
	Lat     *float64
	Lon     *float64
}

// SalonResult is a search hit. Distance is +Inf when either side has no
// coordinates and is then left out of the JSON body.
type SalonResult struct {
	models.Salon
	Distance float64 `json:"-"`
}

func (r SalonResult) DistanceKm() (float64, bool) {
	return r.Distance, !math.IsInf(r.Distance, 1)
}

type ListSalons struct {
	repo salon.Repository
}

func NewListSalons(repo salon.Repository) *ListSalons {
	return &ListSalons{repo: repo}
}

func (uc *ListSalons) Execute(ctx context.Context, in ListSalonsInput) ([]SalonResult, error) {
	mode := strings.ToLower(strings.TrimSpace(in.Sort))
	switch mode {
	case "", SortRating, SortDistance:
	default:
		return nil, httperr.Validation("invalid_sort", "sort must be rating or distance.")
	}

	hasOrigin := in.Lat != nil && in.Lon != nil
	if mode == SortDistance && !hasOrigin {
		return nil, httperr.Validation("missing_location", "lat and lon are required to sort by distance.")
	}

	list, err := uc.repo.SearchSalons(ctx, salon.SearchQuery{Search: in.Search, Service: in.Service})
	if err != nil {
		return nil, err
	}

	out := make([]SalonResult, len(list))
	for i := range list {
		out[i] = SalonResult{Salon: list[i], Distance: math.Inf(1)}
		if hasOrigin && list[i].HasLocation() {
			out[i].Distance = geo.DistanceKm(*in.Lat, *in.Lon, *list[i].Latitude, *list[i].Longitude)
		}
	}

	switch mode {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortDistance:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	}
	return out, nil
}

type GetSalon struct {
	repo salon.Repository
}

func NewGetSalon(repo salon.Repository) *GetSalon {
	return &GetSalon{repo: repo}
}

func (uc *GetSalon) Execute(ctx context.Context, id string) (*models.Salon, error) {
	if strings.TrimSpace(id) == "" {
		return nil, httperr.Validation("missing_fields", "Salon id is required.")
	}
	return uc.repo.GetSalon(ctx, id)
}

type ServiceCatalog struct {
	repo salon.Repository
}

func NewServiceCatalog(repo salon.Repository) *ServiceCatalog {
	return &ServiceCatalog{repo: repo}
}

func (uc *ServiceCatalog) Execute(ctx context.Context) ([]salon.CatalogEntry, error) {
	return uc.repo.ServiceCatalog(ctx)
}
