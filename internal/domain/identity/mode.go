package identity

import (
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// Mode tags a one-time code with the flow it was issued for, so a customer
// signup code and a partner login code for the same phone never collide.
type Mode string

const (
	ModeUserSignup  Mode = "user-signup"
	ModeUserLogin   Mode = "user-login"
	ModeSalonSignup Mode = "salon-signup"
	ModeSalonLogin  Mode = "salon-login"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeUserSignup, ModeUserLogin, ModeSalonSignup, ModeSalonLogin:
		return m, nil
	}
	return "", httperr.Validation("invalid_mode", "Invalid mode.")
}

func (m Mode) IsSignup() bool {
	return m == ModeUserSignup || m == ModeSalonSignup
}

func (m Mode) IsPartner() bool {
	return m == ModeSalonSignup || m == ModeSalonLogin
}
