package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	identityuc "github.com/BruksfildServices01/salon-booking/internal/usecase/identity"
	salonuc "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

type SalonUseCases struct {
	Register      *identityuc.RegisterSalon
	Dashboard     *salonuc.Dashboard
	UpdateProfile *salonuc.UpdateProfile
	UpdateTimings *salonuc.UpdateTimings
	ListServices  *salonuc.ListServices
	AddService    *salonuc.AddService
	UpdateService *salonuc.UpdateService
	ListCustomers *salonuc.ListCustomers
	ListAuditLogs *salonuc.ListAuditLogs
}

type SalonHandler struct {
	uc SalonUseCases
}

func NewSalonHandler(uc SalonUseCases) *SalonHandler {
	return &SalonHandler{uc: uc}
}

// ======================================================
// REGISTRATION / DASHBOARD
// ======================================================

func (h *SalonHandler) Register(c *gin.Context) {
	var req identity.SalonRegistration
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.uc.Register.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Salon registered successfully. You are now logged in.",
		"token":   session.Token,
		"partner": dto.NewPartnerDTO(session.Salon),
	})
}

func (h *SalonHandler) Dashboard(c *gin.Context) {
	view, err := h.uc.Dashboard.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"salon":         dto.NewPartnerDTO(view.Salon),
		"dashboardData": view.Stats,
	})
}

// ======================================================
// PROFILE
// ======================================================

type UpdateTimingsRequest struct {
	OpenTime  string `json:"openTime" binding:"required"`
	CloseTime string `json:"closeTime" binding:"required"`
}

func (h *SalonHandler) UpdateProfile(c *gin.Context) {
	var req salonuc.ProfilePatch
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.uc.UpdateProfile.Execute(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"salon": dto.NewPartnerDTO(s)})
}

func (h *SalonHandler) UpdateTimings(c *gin.Context) {
	var req UpdateTimingsRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.uc.UpdateTimings.Execute(c.Request.Context(), middleware.PrincipalFrom(c), req.OpenTime, req.CloseTime)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"openTime": s.OpenTime, "closeTime": s.CloseTime})
}

// ======================================================
// SERVICES
// ======================================================

func (h *SalonHandler) ListServices(c *gin.Context) {
	f := salon.ServiceFilter{
		Category: c.Query("category"),
		Query:    c.Query("query"),
	}
	if v, err := strconv.ParseBool(c.Query("active")); err == nil {
		f.Active = &v
	}

	list, err := h.uc.ListServices.Execute(c.Request.Context(), middleware.PrincipalFrom(c), f)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *SalonHandler) CreateService(c *gin.Context) {
	var req identity.ServiceInput
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.uc.AddService.Execute(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.Status(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *SalonHandler) UpdateService(c *gin.Context) {
	var req salonuc.ServicePatch
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.uc.UpdateService.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"service": svc})
}

// ======================================================
// CUSTOMERS / AUDIT
// ======================================================

func (h *SalonHandler) ListCustomers(c *gin.Context) {
	list, err := h.uc.ListCustomers.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Query("query"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *SalonHandler) ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.uc.ListAuditLogs.Execute(c.Request.Context(), middleware.PrincipalFrom(c), salonuc.AuditQuery{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"page":  out.Page,
		"limit": out.Limit,
		"total": out.Total,
		"logs":  out.Logs,
	})
}
