package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

type SendOTP struct {
	repo    identity.Repository
	otp     OTPGateway
	limiter RateLimiter
	log     *zap.Logger
}

// NewSendOTP builds the use case; limiter may be nil.
func NewSendOTP(repo identity.Repository, otp OTPGateway, limiter RateLimiter, log *zap.Logger) *SendOTP {
	if log == nil {
		log = zap.NewNop()
	}
	return &SendOTP{repo: repo, otp: otp, limiter: limiter, log: log}
}

// Execute checks that the phone is in the right registration state for the
// mode before any code is sent. It returns the normalized phone.
func (uc *SendOTP) Execute(ctx context.Context, rawPhone, rawMode string) (string, error) {
	phone, err := validators.NormalizePhone(rawPhone)
	if err != nil {
		return "", err
	}
	mode, err := identity.ParseMode(rawMode)
	if err != nil {
		return "", err
	}

	if err := uc.checkRegistration(ctx, phone, mode); err != nil {
		return "", err
	}

	if uc.limiter != nil {
		ok, err := uc.limiter.Allow(ctx, phone)
		if err != nil {
			uc.log.Warn("otp rate limiter unavailable", zap.Error(err))
		} else if !ok {
			return "", httperr.TooManyRequests("otp_rate_limited", "Too many OTP requests. Please try again later.")
		}
	}

	if err := uc.otp.Send(ctx, phone, mode); err != nil {
		uc.log.Error("otp send failed", zap.String("phone", phone), zap.String("mode", string(mode)), zap.Error(err))
		return "", httperr.Upstream("otp_send_failed", "Failed to send OTP.", err)
	}
	return phone, nil
}

func (uc *SendOTP) checkRegistration(ctx context.Context, phone string, mode identity.Mode) error {
	var err error
	switch mode {
	case identity.ModeUserSignup, identity.ModeUserLogin:
		_, err = uc.repo.FindCustomerByPhone(ctx, phone)
	default:
		_, err = uc.repo.FindSalonByPhone(ctx, phone)
	}

	exists := err == nil
	if err != nil && httperr.KindOf(err) != httperr.KindNotFound {
		return err
	}

	switch {
	case mode.IsSignup() && exists:
		if mode.IsPartner() {
			return httperr.Conflict("already_registered", "A salon with this phone number already exists. Please log in.")
		}
		return httperr.Conflict("already_registered", "User already exists. Please log in.")
	case !mode.IsSignup() && !exists:
		if mode.IsPartner() {
			return httperr.NotFound("salon_not_found", "Salon not found. Please register.")
		}
		return httperr.NotFound("user_not_found", "User not found. Please sign up.")
	}
	return nil
}
