package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service checks the single static admin credential pair and issues HS256
// bearer tokens for it. There are no per-user accounts.
type Service struct {
	adminID       string
	adminPassword string
	secret        []byte
	tokenTTL      time.Duration
}

func NewService(adminID, adminPassword, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		adminID:       adminID,
		adminPassword: adminPassword,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
	}
}

func (s *Service) Login(id, password string) (string, error) {
	if id != s.adminID || password != s.adminPassword {
		return "", ErrInvalidCredentials
	}
	return s.GenerateToken(s.tokenTTL)
}

func (s *Service) GenerateToken(ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   SubjectAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: RoleAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
