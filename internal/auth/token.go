package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims keeps the wire shape clients already decode: the subject id plus
// exactly one of isUser / isPartner.
type Claims struct {
	SubjectID string `json:"id"`
	IsUser    bool   `json:"isUser,omitempty"`
	IsPartner bool   `json:"isPartner,omitempty"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(p Principal) (string, error) {
	if p.ID() == "" {
		return "", errors.New("issue token: empty principal")
	}
	if p.Kind() != KindCustomer && p.Kind() != KindPartner {
		return "", errors.New("issue token: not a session principal")
	}

	now := s.now()
	claims := Claims{
		SubjectID: p.ID(),
		IsUser:    p.Kind() == KindCustomer,
		IsPartner: p.Kind() == KindPartner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies signature and expiry and resolves the principal. Tokens
// claiming both roles or neither are rejected.
func (s *TokenService) Parse(raw string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	if claims.SubjectID == "" || claims.IsUser == claims.IsPartner {
		return Principal{}, ErrInvalidToken
	}
	if claims.IsUser {
		return Customer(claims.SubjectID), nil
	}
	return Partner(claims.SubjectID), nil
}
