package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
	"github.com/vasapolrittideah/expense-tracker-api/internal/repository"
	"github.com/vasapolrittideah/expense-tracker-api/shared/security"
)

// UserUsecase defines the interface for profile-related use cases.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*model.User, error)
}

// UpdateProfileParams defines the optional profile fields to change. Nil
// fields are left untouched; a non-nil ProfileImageURL holding an empty
// string clears the avatar.
type UpdateProfileParams struct {
	FullName        *string
	Email           *string
	ProfileImageURL *string
	PasswordChange  *PasswordChangeParams
}

// PasswordChangeParams is the current/new password pair. A password change
// happens only when a complete pair is supplied; the type makes a half-filled
// request unrepresentable at this layer.
type PasswordChangeParams struct {
	Current string
	New     string
}

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)

type userUsecase struct {
	userRepo repository.UserRepository
}

func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	updateParams := repository.UpdateUserParams{
		FullName:        params.FullName,
		ProfileImageURL: params.ProfileImageURL,
	}

	if params.Email != nil && *params.Email != user.Email {
		if err := u.checkEmailAvailable(ctx, *params.Email); err != nil {
			return nil, err
		}
		updateParams.Email = params.Email
	}

	if params.PasswordChange != nil {
		if ok, err := security.VerifyPassword(params.PasswordChange.Current, user.PasswordHash); err != nil {
			return nil, err
		} else if !ok {
			return nil, ErrInvalidCurrentPassword
		}

		passwordHash, err := security.HashPassword(params.PasswordChange.New)
		if err != nil {
			return nil, err
		}
		updateParams.PasswordHash = &passwordHash
	}

	updated, err := u.userRepo.UpdateUser(ctx, userID, updateParams)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			// Lost the race against a concurrent registration for the
			// same email.
			return nil, ErrEmailAlreadyInUse
		default:
			return nil, err
		}
	}

	return updated, nil
}

func (u *userUsecase) checkEmailAvailable(ctx context.Context, email string) error {
	_, err := u.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return ErrEmailAlreadyInUse
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}

	return err
}
