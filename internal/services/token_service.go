package services

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. A token is only accepted for the purpose it was issued for.
const (
	PurposeAccess      = "access"
	PurposeEmailVerify = "email_verify"
)

type TokenService struct {
	secret    []byte
	accessTTL time.Duration
	verifyTTL time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: cfg.JWTAccessExpiry,
		verifyTTL: cfg.JWTVerifyExpiry,
	}
}

func (s *TokenService) IssueAccess(user *models.User) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub":     user.ID.String(),
		"email":   user.Email,
		"name":    user.Name,
		"purpose": PurposeAccess,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	})
}

func (s *TokenService) IssueVerification(userID uuid.UUID) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub":     userID.String(),
		"purpose": PurposeEmailVerify,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(s.verifyTTL).Unix(),
	})
}

// Verify checks signature, expiry and purpose and returns the subject.
func (s *TokenService) Verify(tokenString, purpose string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return uuid.Nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

func (s *TokenService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
