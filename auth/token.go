package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rpupo63/portfolio-backend/errs"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the payload of a bearer token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 bearer tokens with a single signing key.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens for secret. A non-positive ttl means DefaultTokenTTL.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token carrying userID and email.
func (t *Tokens) Issue(userID, email string) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the claims. Every failure
// is an *errs.ApiErr with status 401: errs.ErrInvalidToken for signature,
// expiry or format problems, errs.ErrInvalidTokenClaims when a correctly
// signed payload has no string user id. Tokens without exp are rejected.
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	// MapClaims so a userId of the wrong type surfaces after the signature check
	mapClaims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, mapClaims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, errs.NewInvalidTokenError(err)
	}
	if !token.Valid {
		return nil, errs.NewInvalidTokenError(nil)
	}

	userID, _ := mapClaims["userId"].(string)
	if userID == "" {
		return nil, errs.NewInvalidTokenStructureError()
	}
	email, _ := mapClaims["email"].(string)

	claims := &Claims{UserID: userID, Email: email}
	claims.ExpiresAt, _ = mapClaims.GetExpirationTime()
	claims.IssuedAt, _ = mapClaims.GetIssuedAt()
	return claims, nil
}
