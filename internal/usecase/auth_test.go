package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/expense-tracker-api/internal/config"
	"github.com/vasapolrittideah/expense-tracker-api/shared/auth"
	"github.com/vasapolrittideah/expense-tracker-api/shared/provider"
	"github.com/vasapolrittideah/expense-tracker-api/shared/security"
)

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Issuer:                      "expense-tracker-api",
		AccessTokenSecret:           "access-secret",
		AccessTokenExpiresIn:        time.Hour,
		PasswordResetTokenSecret:    "reset-secret",
		PasswordResetTokenExpiresIn: 15 * time.Minute,
	}
}

func testJWTAuth() auth.JWTAuthenticator {
	cfg := testTokenConfig()
	return auth.NewJWTAuthenticator(cfg.Issuer, cfg.Issuer)
}

func newAuthUsecase(userRepo *fakeUserRepo, google provider.GoogleProvider) AuthUsecase {
	if google == nil {
		google = &fakeGoogleProvider{err: provider.ErrInvalidGoogleAudience}
	}

	return NewAuthUsecase(userRepo, testJWTAuth(), google, testTokenConfig())
}

func TestRegister(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := newAuthUsecase(userRepo, nil)

	result, err := u.Register(context.Background(), RegisterParams{
		FullName: "Ann",
		Email:    "ann@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", result.User.FullName)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "secret123", result.User.PasswordHash)

	ok, err := security.VerifyPassword("secret123", result.User.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	jwtAuth := testJWTAuth()
	userID, err := jwtAuth.VerifyAccessToken(result.Token, testTokenConfig().AccessTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.Hex(), userID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := newAuthUsecase(userRepo, nil)

	first, err := u.Register(context.Background(), RegisterParams{
		FullName: "Ann",
		Email:    "ann@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = u.Register(context.Background(), RegisterParams{
		FullName: "Impostor",
		Email:    "ann@x.com",
		Password: "different1",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)

	// The first registration is untouched.
	stored, err := userRepo.GetUser(context.Background(), first.User.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored.FullName)
	assert.Equal(t, first.User.PasswordHash, stored.PasswordHash)
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := newAuthUsecase(userRepo, nil)

	_, err := u.Register(context.Background(), RegisterParams{
		FullName: "Ann",
		Email:    "ann@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	result, err := u.Login(context.Background(), LoginParams{
		Email:    "ann@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ann@x.com", result.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := newAuthUsecase(userRepo, nil)

	_, err := u.Register(context.Background(), RegisterParams{
		FullName: "Ann",
		Email:    "ann@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	result, err := u.Login(context.Background(), LoginParams{
		Email:    "ann@x.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestLogin_UnknownEmail(t *testing.T) {
	u := newAuthUsecase(newFakeUserRepo(), nil)

	_, err := u.Login(context.Background(), LoginParams{
		Email:    "nobody@x.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleSignIn_ProvisionsNewUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	google := &fakeGoogleProvider{identity: &provider.GoogleIdentity{Email: "ann@x.com"}}
	u := newAuthUsecase(userRepo, google)

	result, err := u.GoogleSignIn(context.Background(), "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", result.User.Email)
	assert.Equal(t, "ann", result.User.FullName)
	assert.NotEmpty(t, result.Token)

	// The provisioned password hash verifies against nothing a caller
	// could guess.
	ok, err := security.VerifyPassword("", result.User.PasswordHash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoogleSignIn_ExistingUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	google := &fakeGoogleProvider{identity: &provider.GoogleIdentity{Email: "ann@x.com"}}
	u := newAuthUsecase(userRepo, google)

	registered, err := u.Register(context.Background(), RegisterParams{
		FullName: "Ann",
		Email:    "ann@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	result, err := u.GoogleSignIn(context.Background(), "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.Equal(t, "Ann", result.User.FullName)
}

func TestGoogleSignIn_InvalidToken(t *testing.T) {
	google := &fakeGoogleProvider{err: errors.New("audience mismatch")}
	u := newAuthUsecase(newFakeUserRepo(), google)

	_, err := u.GoogleSignIn(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}
