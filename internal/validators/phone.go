package validators

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const DefaultRegion = "IN"

var indianMobile = regexp.MustCompile(`^\+91[0-9]{10}$`)

// NormalizePhone accepts national or international input and returns the
// E.164 form. Only Indian numbers are accepted.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", httperr.Validation("invalid_phone", "Phone number is required.")
	}

	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil {
		return "", httperr.Validation("invalid_phone", "Phone number must be in the format +91XXXXXXXXXX.")
	}

	e164 := phonenumbers.Format(num, phonenumbers.E164)
	if !indianMobile.MatchString(e164) {
		return "", httperr.Validation("invalid_phone", "Phone number must be in the format +91XXXXXXXXXX.")
	}
	return e164, nil
}

var registerOnce sync.Once

// Register installs the custom binding tags on gin's validator engine.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err = v.RegisterValidation("in_phone", func(fl validator.FieldLevel) bool {
			_, perr := NormalizePhone(fl.Field().String())
			return perr == nil
		}); err != nil {
			return
		}
		err = v.RegisterValidation("otp_code", func(fl validator.FieldLevel) bool {
			return otpCode.MatchString(fl.Field().String())
		})
	})
	return err
}

var otpCode = regexp.MustCompile(`^[0-9]{4,8}$`)
