package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const ContextPrincipal = "principal"

type TokenParser interface {
	Parse(raw string) (auth.Principal, error)
}

// SubjectResolver confirms that a token subject still exists.
type SubjectResolver interface {
	CustomerExists(ctx context.Context, id string) (bool, error)
	SalonExists(ctx context.Context, id string) (bool, error)
}

// SessionGuard admits only bearer tokens of one of the given kinds whose
// subject is still on record, and attaches the principal to the request.
func SessionGuard(tokens TokenParser, subjects SubjectResolver, kinds ...auth.Kind) gin.HandlerFunc {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	want := strings.Join(names, " or ")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httperr.Abort(c, httperr.Unauthorized("missing_authorization_header", "Authorization token is required."))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, httperr.Unauthorized("invalid_authorization_header", "Malformed authorization header."))
			return
		}

		p, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, httperr.Unauthorized("invalid_token", "Invalid or expired token."))
			return
		}

		if !slices.Contains(kinds, p.Kind()) {
			httperr.Abort(c, httperr.Unauthorized("wrong_role", "This route requires "+want+" access."))
			return
		}

		var exists bool
		switch p.Kind() {
		case auth.KindCustomer:
			exists, err = subjects.CustomerExists(c.Request.Context(), p.ID())
		case auth.KindPartner:
			exists, err = subjects.SalonExists(c.Request.Context(), p.ID())
		}
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if !exists {
			httperr.Abort(c, httperr.Unauthorized("unknown_subject", "Account no longer exists."))
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by SessionGuard, or the zero
// value on unguarded routes.
func PrincipalFrom(c *gin.Context) auth.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{}
}
