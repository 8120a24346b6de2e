package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_PurposeIsEnforced(t *testing.T) {
	svc := NewTokenService(&config.Config{JWTSecret: "k", JWTAccessExpiry: time.Minute, JWTVerifyExpiry: time.Minute})
	user := &models.User{ID: uuid.New(), Email: "a@example.com"}

	access, err := svc.IssueAccess(user)
	require.NoError(t, err)
	verifyTok, err := svc.IssueVerification(user.ID)
	require.NoError(t, err)

	id, err := svc.Verify(access, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = svc.Verify(access, PurposeEmailVerify)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Verify(verifyTok, PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignAndExpired(t *testing.T) {
	svc := NewTokenService(&config.Config{JWTSecret: "k", JWTAccessExpiry: time.Minute, JWTVerifyExpiry: -time.Minute})
	other := NewTokenService(&config.Config{JWTSecret: "other", JWTVerifyExpiry: time.Minute})
	id := uuid.New()

	expired, err := svc.IssueVerification(id)
	require.NoError(t, err)
	_, err = svc.Verify(expired, PurposeEmailVerify)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := other.IssueVerification(id)
	require.NoError(t, err)
	_, err = svc.Verify(foreign, PurposeEmailVerify)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
