package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	identityuc "github.com/BruksfildServices01/salon-booking/internal/usecase/identity"
)

// ======================================================
// CUSTOMER AUTH
// ======================================================

type AuthHandler struct {
	sendOTP *identityuc.SendOTP
	verify  *identityuc.VerifyCustomerOTP
	repo    identity.Repository
}

func NewAuthHandler(send *identityuc.SendOTP, verify *identityuc.VerifyCustomerOTP, repo identity.Repository) *AuthHandler {
	return &AuthHandler{sendOTP: send, verify: verify, repo: repo}
}

type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Mode        string `json:"mode" binding:"required"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OTP         string `json:"otp" binding:"required,otp_code"`
	Mode        string `json:"mode" binding:"required"`
	FullName    string `json:"fullName"`
	Name        string `json:"name"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if identity.Mode(req.Mode).IsPartner() {
		httperr.BadRequest(c, "invalid_mode", "Invalid mode.")
		return
	}

	if _, err := h.sendOTP.Execute(c.Request.Context(), req.PhoneNumber, req.Mode); err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "OTP sent successfully."})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	name := req.FullName
	if name == "" {
		name = req.Name
	}

	session, err := h.verify.Execute(c.Request.Context(), identityuc.VerifyCustomerInput{
		Phone:    req.PhoneNumber,
		Code:     req.OTP,
		Mode:     req.Mode,
		FullName: name,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Logged in successfully.",
		"token":   session.Token,
		"user":    dto.NewCustomerDTO(session.Customer),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	customer, err := h.repo.GetCustomer(c.Request.Context(), p.ID())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"user": dto.NewCustomerDTO(customer)})
}

// ======================================================
// PARTNER AUTH
// ======================================================

type SalonAuthHandler struct {
	sendOTP *identityuc.SendOTP
	verify  *identityuc.VerifyPartnerOTP
	repo    identity.Repository
}

func NewSalonAuthHandler(send *identityuc.SendOTP, verify *identityuc.VerifyPartnerOTP, repo identity.Repository) *SalonAuthHandler {
	return &SalonAuthHandler{sendOTP: send, verify: verify, repo: repo}
}

type SalonVerifyOTPRequest struct {
	PhoneNumber         string                      `json:"phoneNumber" binding:"required"`
	OTP                 string                      `json:"otp" binding:"required,otp_code"`
	Mode                string                      `json:"mode" binding:"required"`
	RegistrationPayload *identity.SalonRegistration `json:"registrationPayload"`
}

func (h *SalonAuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if !identity.Mode(req.Mode).IsPartner() {
		httperr.BadRequest(c, "invalid_mode", "Invalid mode.")
		return
	}

	if _, err := h.sendOTP.Execute(c.Request.Context(), req.PhoneNumber, req.Mode); err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "OTP sent successfully."})
}

func (h *SalonAuthHandler) VerifyOTP(c *gin.Context) {
	var req SalonVerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.verify.Execute(c.Request.Context(), identityuc.VerifyPartnerInput{
		Phone:        req.PhoneNumber,
		Code:         req.OTP,
		Mode:         req.Mode,
		Registration: req.RegistrationPayload,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Logged in successfully.",
		"token":   session.Token,
		"salon":   dto.NewPartnerDTO(session.Salon),
	})
}

func (h *SalonAuthHandler) Me(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	salon, err := h.repo.GetSalon(c.Request.Context(), p.ID())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"salon": dto.NewPartnerDTO(salon)})
}
