package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	salonuc "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	list     *salonuc.ListSalons
	get      *salonuc.GetSalon
	services *salonuc.ServiceCatalog
}

func NewPublicHandler(list *salonuc.ListSalons, get *salonuc.GetSalon, services *salonuc.ServiceCatalog) *PublicHandler {
	return &PublicHandler{list: list, get: get, services: services}
}

func queryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

////////////////////////////////////////////////////////
// SALONS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListSalons(c *gin.Context) {
	lat, ok1 := queryFloat(c, "lat")
	lon, ok2 := queryFloat(c, "lon")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_location", "lat and lon must be numbers.")
		return
	}

	results, err := h.list.Execute(c.Request.Context(), salonuc.ListSalonsInput{
		Search:  c.Query("search"),
		Service: c.Query("service"),
		Sort:    c.Query("sort"),
		Lat:     lat,
		Lon:     lon,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	out := make([]dto.SalonListItemDTO, 0, len(results))
	for i := range results {
		d, ok := results[i].DistanceKm()
		out = append(out, dto.NewSalonListItemDTO(&results[i].Salon, d, ok))
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) GetSalon(c *gin.Context) {
	s, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"salon": dto.NewSalonDetailDTO(s)})
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) Services(c *gin.Context) {
	list, err := h.services.Execute(c.Request.Context())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.List(c, list)
}
