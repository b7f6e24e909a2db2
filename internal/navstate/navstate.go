// Package navstate carries the submitted criteria from the query builder to
// the result viewer as a signed, short-lived token.
package navstate

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
)

// CookieName is the cookie holding the token in the web front end
const CookieName = "zto_nav"

const issuer = "mbbs-ui"

var (
	// ErrMissing means no navigation state was handed over
	ErrMissing = errors.New("navigation state missing")
	// ErrInvalid means the state was present but cannot be trusted
	ErrInvalid = errors.New("navigation state invalid")
)

// Claims is the token payload
type Claims struct {
	Criteria models.FilterCriteria `json:"criteria"`
	jwt.RegisteredClaims
}

// Codec signs and verifies navigation tokens
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a codec. An empty secret gets a random per-process key,
// so tokens do not survive a restart.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate navigation key: %w", err)
		}
	}
	return &Codec{secret: key, ttl: ttl, now: time.Now}, nil
}

// TTL returns the token lifetime
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode signs criteria into a token
func (c *Codec) Encode(criteria models.FilterCriteria) (string, error) {
	now := c.now()
	claims := Claims{
		Criteria: criteria,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign navigation token: %w", err)
	}
	return token, nil
}

// Decode verifies a token and returns the criteria it carries.
// The criteria is re-validated since it crossed a trust boundary.
func (c *Codec) Decode(token string) (*models.FilterCriteria, error) {
	if token == "" {
		return nil, ErrMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := claims.Criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &claims.Criteria, nil
}
