package service

import (
	"errors"
	"time"

	"github.com/devon/hotel-listing-api/internal/config"
	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the claim set carried by every access token. The jti
// is unique per issued token, even for the same user within one instant.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// TokenIssuer signs and validates access tokens with the configured
// symmetric key. Stateless: validity is decided by signature and claims
// alone, never by a store lookup.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.AccessTokenTTL,
	}
}

func (t *TokenIssuer) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.ttl)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
		Roles: []string(user.Roles),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies signature, issuer and audience unconditionally.
// Expiry is only enforced when allowExpired is false; an otherwise valid
// token that failed only the expiry check yields domain.ErrTokenExpired.
func (t *TokenIssuer) Validate(raw string, allowExpired bool) (*AccessClaims, error) {
	claims := &AccessClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if allowExpired {
		// Signature is still verified; registered-claim checks move to
		// the manual issuer/audience comparison below.
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		opts = append(opts,
			jwt.WithIssuer(t.issuer),
			jwt.WithAudience(t.audience),
			jwt.WithExpirationRequired(),
		)
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenInvalidIssuer),
			errors.Is(err, jwt.ErrTokenInvalidAudience),
			errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, domain.ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			// Expiry was the only failed check.
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrMalformedToken
	}
	if !token.Valid {
		return nil, domain.ErrMalformedToken
	}

	if allowExpired {
		if claims.Issuer != t.issuer {
			return nil, domain.ErrMalformedToken
		}
		if !audienceContains(claims.Audience, t.audience) {
			return nil, domain.ErrMalformedToken
		}
	}

	return claims, nil
}

func audienceContains(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
