package identity

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
)

// OTPGateway issues and checks one-time codes. Check returns false, not an
// error, for wrong, expired or already used codes.
type OTPGateway interface {
	Send(ctx context.Context, phone string, mode identity.Mode) error
	Check(ctx context.Context, phone string, mode identity.Mode, code string) (bool, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type TokenIssuer interface {
	Issue(p auth.Principal) (string, error)
}
