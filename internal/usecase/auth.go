package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/expense-tracker-api/internal/config"
	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
	"github.com/vasapolrittideah/expense-tracker-api/internal/repository"
	"github.com/vasapolrittideah/expense-tracker-api/shared/auth"
	"github.com/vasapolrittideah/expense-tracker-api/shared/provider"
	"github.com/vasapolrittideah/expense-tracker-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	GoogleSignIn(ctx context.Context, idToken string) (*AuthResult, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	FullName        string
	Email           string
	Password        string
	ProfileImageURL *string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// AuthResult carries the authenticated user together with a fresh access token.
type AuthResult struct {
	User  *model.User
	Token string
}

var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidGoogleToken = errors.New("invalid google id token")
)

type authUsecase struct {
	userRepo       repository.UserRepository
	jwtAuth        auth.JWTAuthenticator
	googleProvider provider.GoogleProvider
	tokenCfg       config.TokenConfig
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	googleProvider provider.GoogleProvider,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo:       userRepo,
		jwtAuth:        jwtAuth,
		googleProvider: googleProvider,
		tokenCfg:       tokenCfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		FullName:        params.FullName,
		Email:           params.Email,
		PasswordHash:    passwordHash,
		ProfileImageURL: params.ProfileImageURL,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyInUse
		}

		return nil, err
	}

	return u.authenticate(user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.authenticate(user)
}

func (u *authUsecase) GoogleSignIn(ctx context.Context, idToken string) (*AuthResult, error) {
	identity, err := u.googleProvider.ValidateIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	user, err := u.userRepo.GetUserByEmail(ctx, identity.Email)
	if err == nil {
		return u.authenticate(user)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// First sign-in with this Google account: provision a user with an
	// unusable random password. The account can only be entered through
	// Google until the user sets a password via the reset flow.
	randomPassword, err := security.RandomPassword()
	if err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(randomPassword)
	if err != nil {
		return nil, err
	}

	fullName := identity.Email
	if at := strings.IndexByte(fullName, '@'); at > 0 {
		fullName = fullName[:at]
	}

	user, err = u.userRepo.CreateUser(ctx, &model.User{
		FullName:     fullName,
		Email:        identity.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyInUse
		}

		return nil, err
	}

	return u.authenticate(user)
}

func (u *authUsecase) authenticate(user *model.User) (*AuthResult, error) {
	token, err := u.jwtAuth.IssueAccessToken(
		user.ID.Hex(),
		u.tokenCfg.AccessTokenSecret,
		u.tokenCfg.AccessTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}
