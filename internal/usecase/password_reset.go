package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/expense-tracker-api/internal/config"
	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
	"github.com/vasapolrittideah/expense-tracker-api/internal/repository"
	"github.com/vasapolrittideah/expense-tracker-api/shared/auth"
	"github.com/vasapolrittideah/expense-tracker-api/shared/security"
)

// ResetMailer delivers password reset emails. Satisfied by mailer.Mailer.
type ResetMailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// PasswordResetUsecase defines the business logic for password reset token operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given email.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword resets the user's password using a previously emailed token.
	ResetPassword(ctx context.Context, tokenStr, newPassword string) error
}

var (
	ErrResetTokenNotFound    = errors.New("password reset token not found")
	ErrResetTokenAlreadyUsed = errors.New("password reset token has already been used")
	ErrResetTokenExpired     = errors.New("password reset token has expired")
	ErrInvalidResetToken     = errors.New("invalid password reset token")
)

type passwordResetUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetTokenRepository
	jwtAuth   auth.JWTAuthenticator
	mailer    ResetMailer
	tokenCfg  config.TokenConfig
	resetURL  string
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer ResetMailer,
	tokenCfg config.TokenConfig,
	resetURL string,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtAuth:   jwtAuth,
		mailer:    mailer,
		tokenCfg:  tokenCfg,
		resetURL:  resetURL,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email does not exist.
			return nil
		}
		return err
	}

	// Invalidate any existing unused tokens for this user
	if err := u.tokenRepo.InvalidateUserTokens(ctx, user.ID.Hex()); err != nil {
		return err
	}

	tokenStr, jti, err := u.generatePasswordResetToken(user.ID.Hex(), user.Email)
	if err != nil {
		return err
	}

	resetToken := &model.PasswordResetToken{
		JTI:       jti,
		UserID:    user.ID,
		Email:     user.Email,
		Used:      false,
		ExpiresAt: time.Now().Add(u.tokenCfg.PasswordResetTokenExpiresIn),
	}

	if _, err := u.tokenRepo.CreateToken(ctx, resetToken); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s?token=%s", u.resetURL, tokenStr)
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Expense Tracker Team</p>
	`, user.FullName, resetLink, resetLink, u.tokenCfg.PasswordResetTokenExpiresIn)

	if err := u.mailer.SendHTML([]string{user.Email}, "Password Reset Request", htmlBody); err != nil {
		return err
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	claims := &auth.PasswordResetClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(
		tokenStr,
		u.tokenCfg.PasswordResetTokenSecret,
		claims,
	); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrResetTokenExpired
		}
		return ErrInvalidResetToken
	}

	if claims.JTI == "" {
		return ErrInvalidResetToken
	}

	resetToken, err := u.tokenRepo.GetTokenByJTI(ctx, claims.JTI)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrResetTokenNotFound
		}
		return err
	}

	if resetToken.Used {
		return ErrResetTokenAlreadyUsed
	}

	if time.Now().After(resetToken.ExpiresAt) {
		return ErrResetTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, resetToken.UserID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return u.tokenRepo.MarkTokenAsUsed(ctx, claims.JTI)
}

// generatePasswordResetToken creates a password reset JWT token with a unique JTI.
func (u *passwordResetUsecase) generatePasswordResetToken(userID, email string) (string, string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	claims := auth.PasswordResetClaims{
		UserID: userID,
		Email:  email,
		JTI:    jti,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    u.tokenCfg.Issuer,
			Audience:  jwt.ClaimStrings{u.tokenCfg.Issuer},
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenCfg.PasswordResetTokenExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenStr, err := u.jwtAuth.GenerateToken(claims, u.tokenCfg.PasswordResetTokenSecret)
	if err != nil {
		return "", "", err
	}

	return tokenStr, jti, nil
}

// generateJTI generates a unique JTI.
func generateJTI() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
