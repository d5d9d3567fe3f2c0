// Package voucher signs and verifies the prize vouchers handed out with each draw.
package voucher

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "cadastroLead"

// ErrInvalid is returned for vouchers that are malformed, tampered with or expired.
var ErrInvalid = errors.New("invalid voucher")

// Claims is the payload of a voucher. The registered ID claim is the voucher id.
type Claims struct {
	Prize string `json:"premio"`
	jwt.RegisteredClaims
}

// Service issues HS256 vouchers.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a voucher service. A zero ttl issues vouchers valid for 30 days.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("voucher secret is required")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a voucher for prize under id.
func (s *Service) Issue(id, prize string) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		Prize: prize,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign voucher: %w", err)
	}
	return token, claims, nil
}

// Verify checks the signature and expiry of token and returns its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
