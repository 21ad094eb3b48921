package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

type CustomerSession struct {
	Token    string
	Customer *models.Customer
}

type PartnerSession struct {
	Token string
	Salon *models.Salon
}

// checkCode maps gateway outcomes onto the error taxonomy.
func checkCode(ctx context.Context, otp OTPGateway, log *zap.Logger, phone string, mode identity.Mode, code string) error {
	if strings.TrimSpace(code) == "" {
		return httperr.Validation("missing_fields", "OTP is required.")
	}
	ok, err := otp.Check(ctx, phone, mode, strings.TrimSpace(code))
	if err != nil {
		log.Error("otp check failed", zap.String("phone", phone), zap.Error(err))
		return httperr.Upstream("otp_check_failed", "Failed to verify OTP.", err)
	}
	if !ok {
		return httperr.Validation("invalid_otp", "Invalid or expired OTP.")
	}
	return nil
}

// ======================================================
// CUSTOMER
// ======================================================

type VerifyCustomerInput struct {
	Phone    string
	Code     string
	Mode     string
	FullName string
}

type VerifyCustomerOTP struct {
	repo   identity.Repository
	otp    OTPGateway
	tokens TokenIssuer
	log    *zap.Logger
}

func NewVerifyCustomerOTP(repo identity.Repository, otp OTPGateway, tokens TokenIssuer, log *zap.Logger) *VerifyCustomerOTP {
	if log == nil {
		log = zap.NewNop()
	}
	return &VerifyCustomerOTP{repo: repo, otp: otp, tokens: tokens, log: log}
}

func (uc *VerifyCustomerOTP) Execute(ctx context.Context, in VerifyCustomerInput) (*CustomerSession, error) {
	phone, err := validators.NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	mode, err := identity.ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}
	if mode.IsPartner() {
		return nil, httperr.Validation("invalid_mode", "Invalid mode.")
	}
	name := strings.TrimSpace(in.FullName)
	if mode.IsSignup() && name == "" {
		return nil, httperr.Validation("missing_fields", "Full name is required to sign up.")
	}

	if err := checkCode(ctx, uc.otp, uc.log, phone, mode, in.Code); err != nil {
		return nil, err
	}

	var customer *models.Customer
	if mode.IsSignup() {
		customer = &models.Customer{ID: uuid.NewString(), FullName: name, PhoneNumber: phone}
		if err := uc.repo.CreateCustomer(ctx, customer); err != nil {
			if httperr.KindOf(err) == httperr.KindConflict {
				return nil, httperr.Conflict("already_registered", "User already exists. Please log in.")
			}
			return nil, err
		}
	} else {
		if customer, err = uc.repo.FindCustomerByPhone(ctx, phone); err != nil {
			return nil, err
		}
	}

	token, err := uc.tokens.Issue(auth.Customer(customer.ID))
	if err != nil {
		return nil, httperr.Internal("token_failed", err)
	}
	return &CustomerSession{Token: token, Customer: customer}, nil
}

// ======================================================
// PARTNER
// ======================================================

type VerifyPartnerInput struct {
	Phone        string
	Code         string
	Mode         string
	Registration *identity.SalonRegistration
}

type VerifyPartnerOTP struct {
	repo   identity.Repository
	otp    OTPGateway
	tokens TokenIssuer
	log    *zap.Logger
}

func NewVerifyPartnerOTP(repo identity.Repository, otp OTPGateway, tokens TokenIssuer, log *zap.Logger) *VerifyPartnerOTP {
	if log == nil {
		log = zap.NewNop()
	}
	return &VerifyPartnerOTP{repo: repo, otp: otp, tokens: tokens, log: log}
}

// Execute verifies the code and then logs the partner in, or, for
// salon-signup, creates the salon from the registration payload. The
// payload phone must be the verified phone.
func (uc *VerifyPartnerOTP) Execute(ctx context.Context, in VerifyPartnerInput) (*PartnerSession, error) {
	phone, err := validators.NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	mode, err := identity.ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}
	if !mode.IsPartner() {
		return nil, httperr.Validation("invalid_mode", "Invalid mode.")
	}

	var salon *models.Salon
	if mode.IsSignup() {
		if in.Registration == nil {
			return nil, httperr.Validation("missing_fields", "Registration details are required.")
		}
		reg := *in.Registration
		reg.PhoneNumber = phone
		if salon, err = identity.BuildSalon(reg); err != nil {
			return nil, err
		}
	}

	if err := checkCode(ctx, uc.otp, uc.log, phone, mode, in.Code); err != nil {
		return nil, err
	}

	if mode.IsSignup() {
		if err := createSalon(ctx, uc.repo, salon); err != nil {
			return nil, err
		}
	} else if salon, err = uc.repo.FindSalonByPhone(ctx, phone); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(auth.Partner(salon.ID))
	if err != nil {
		return nil, httperr.Internal("token_failed", err)
	}
	return &PartnerSession{Token: token, Salon: salon}, nil
}

func createSalon(ctx context.Context, repo identity.Repository, salon *models.Salon) error {
	if err := repo.CreateSalon(ctx, salon); err != nil {
		if httperr.KindOf(err) == httperr.KindConflict {
			return httperr.Conflict("already_registered", "A salon with this phone number already exists.")
		}
		return err
	}
	return nil
}

// ======================================================
// DIRECT REGISTRATION
// ======================================================

type RegisterSalon struct {
	repo   identity.Repository
	tokens TokenIssuer
}

func NewRegisterSalon(repo identity.Repository, tokens TokenIssuer) *RegisterSalon {
	return &RegisterSalon{repo: repo, tokens: tokens}
}

func (uc *RegisterSalon) Execute(ctx context.Context, reg identity.SalonRegistration) (*PartnerSession, error) {
	salon, err := identity.BuildSalon(reg)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.FindSalonByPhone(ctx, salon.PhoneNumber); err == nil {
		return nil, httperr.Conflict("already_registered", "A salon with this phone number already exists.")
	} else if httperr.KindOf(err) != httperr.KindNotFound {
		return nil, err
	}

	if err := createSalon(ctx, uc.repo, salon); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(auth.Partner(salon.ID))
	if err != nil {
		return nil, httperr.Internal("token_failed", err)
	}
	return &PartnerSession{Token: token, Salon: salon}, nil
}
