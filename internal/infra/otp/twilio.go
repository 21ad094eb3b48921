package otp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
)

// TwilioGateway delegates issuing and checking to Twilio Verify. Twilio
// scopes codes per phone only, so mode is not forwarded.
type TwilioGateway struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilioGateway(accountSID, authToken, serviceSID string) *TwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioGateway{client: client, serviceSID: serviceSID}
}

func (g *TwilioGateway) Send(_ context.Context, phone string, _ identity.Mode) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel("sms")

	if _, err := g.client.VerifyV2.CreateVerification(g.serviceSID, params); err != nil {
		return fmt.Errorf("twilio send verification: %w", err)
	}
	return nil
}

func (g *TwilioGateway) Check(_ context.Context, phone string, _ identity.Mode, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := g.client.VerifyV2.CreateVerificationCheck(g.serviceSID, params)
	if err != nil {
		// Twilio answers 404 once a verification expired or was consumed.
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) && restErr.Status == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("twilio check verification: %w", err)
	}

	return resp.Status != nil && *resp.Status == "approved", nil
}
