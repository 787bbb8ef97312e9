package services

import (
	"context"
	"testing"
	"time"

	"github.com/sednex/community-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "https://issuer.test"
)

func TestLocalVerifier(t *testing.T) {
	verifier := NewLocalVerifier(testSecret, testIssuer)
	ctx := context.Background()

	token, err := verifier.Issue(VerifiedToken{Subject: "uid-1", Email: "a@b.c", Provider: "google.com"}, time.Hour)
	require.NoError(t, err)

	verified, err := verifier.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", verified.Subject)
	assert.Equal(t, "a@b.c", verified.Email)
	assert.Equal(t, "google.com", verified.Provider)

	expired, err := verifier.Issue(VerifiedToken{Subject: "uid-1"}, -time.Minute)
	require.NoError(t, err)
	_, err = verifier.Verify(ctx, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewLocalVerifier("other-secret", testIssuer).Issue(VerifiedToken{Subject: "uid-1"}, time.Hour)
	require.NoError(t, err)
	_, err = verifier.Verify(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewLocalVerifier(testSecret, "someone-else").Issue(VerifiedToken{Subject: "uid-1"}, time.Hour)
	require.NoError(t, err)
	_, err = verifier.Verify(ctx, wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := verifier.Issue(VerifiedToken{}, time.Hour)
	require.NoError(t, err)
	_, err = verifier.Verify(ctx, noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginOrRegister(t *testing.T) {
	db := setupTestDB(t)
	verifier := NewLocalVerifier(testSecret, testIssuer)
	svc := NewAuthService(db, verifier)
	ctx := context.Background()

	token, err := verifier.Issue(VerifiedToken{Subject: "uid-42", Email: "new@example.com"}, time.Hour)
	require.NoError(t, err)

	user, err := svc.LoginOrRegister(ctx, LoginRequest{Token: token})
	require.NoError(t, err)
	assert.Equal(t, "uid-42", user.SubjectID)
	assert.Equal(t, "Guest User", user.Name)
	assert.Equal(t, types.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	again, err := svc.LoginOrRegister(ctx, LoginRequest{Credential: token})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	_, err = svc.LoginOrRegister(ctx, LoginRequest{})
	requireKind(t, err, types.KindUnauthorized, "Authentication failed")

	_, err = svc.LoginOrRegister(ctx, LoginRequest{Token: "garbage"})
	requireKind(t, err, types.KindUnauthorized, "Authentication failed")
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	verifier := NewLocalVerifier(testSecret, testIssuer)
	svc := NewAuthService(db, verifier)
	users := NewUserService(db, &memoryStore{})
	ctx := context.Background()

	stranger, err := verifier.Issue(VerifiedToken{Subject: "uid-unknown"}, time.Hour)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, stranger)
	requireKind(t, err, types.KindForbidden, "User not registered")

	_, err = svc.Authenticate(ctx, "garbage")
	requireKind(t, err, types.KindUnauthorized, "Invalid token")

	token, err := verifier.Issue(VerifiedToken{Subject: "uid-7", Name: "Grace"}, time.Hour)
	require.NoError(t, err)
	user, err := svc.LoginOrRegister(ctx, LoginRequest{Token: token})
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "Grace", identity.Name)
	assert.Equal(t, types.RoleUser, identity.Role)

	admin := createTestUser(t, db, types.RoleAdmin)
	require.NoError(t, users.Deactivate(ctx, admin, "uid-7"))
	_, err = svc.Authenticate(ctx, token)
	requireKind(t, err, types.KindForbidden, "Account is disabled")
}
