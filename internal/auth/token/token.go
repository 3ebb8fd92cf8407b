// Package token issues and validates the HS256 session tokens handed to the
// registration desk frontend.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"coicit/internal/auth/models"
	dErrors "coicit/pkg/domain-errors"
)

// Claims carries the staff account identity inside the signed token.
type Claims struct {
	Apodo string     `json:"apodo_usuario"`
	Rol   models.Rol `json:"rol"`
	jwt.RegisteredClaims
}

// Service signs and parses session tokens.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

// New constructs a token service with the given signing key and lifetime.
func New(signingKey string, ttl time.Duration) *Service {
	return &Service{signingKey: []byte(signingKey), ttl: ttl}
}

// Emitir signs a token for the given usuario.
func (s *Service) Emitir(u *models.Usuario, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Apodo: u.Apodo,
		Rol:   u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "coicit",
			ID:        uuid.NewString(),
		},
	})
	return t.SignedString(s.signingKey)
}

// Validar parses and verifies a token, returning its claims.
func (s *Service) Validar(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "La sesión ha expirado")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Token inválido")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Token inválido")
	}
	return claims, nil
}

// UsuarioID extracts the staff account id from validated claims.
func (c *Claims) UsuarioID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
