package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNotInitialized is returned when the service was built without a signing
// secret. Token verification must fail closed in that case.
var ErrNotInitialized = errors.New("jwt service is not initialized")

type JWTService struct {
	secretKey     []byte
	tokenLifespan time.Duration
}

// IdentityClaims is the payload of a CodeVault ID token. It carries the
// denormalized identity attributes the UI needs, so a verified token is
// enough to render "who is signed in" without another round trip.
type IdentityClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	PhotoURL string    `json:"photo_url"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string, tokenLifespan time.Duration) *JWTService {
	return &JWTService{
		secretKey:     []byte(secretKey),
		tokenLifespan: tokenLifespan,
	}
}

// Initialized reports whether a signing secret is present. Callers use it to
// degrade auth features instead of crashing at startup.
func (s *JWTService) Initialized() bool {
	return len(s.secretKey) > 0
}

func (s *JWTService) GenerateToken(userID uuid.UUID, name, email, photoURL string) (string, error) {
	if !s.Initialized() {
		return "", ErrNotInitialized
	}

	claims := IdentityClaims{
		userID,
		name,
		email,
		photoURL,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenLifespan)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
			Issuer:    "codevault-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("cannot sign token: %w", err)
	}

	return signedString, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*IdentityClaims, error) {
	if !s.Initialized() {
		return nil, ErrNotInitialized
	}

	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature algorithm: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(*IdentityClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("error when parsing token claims")
}
