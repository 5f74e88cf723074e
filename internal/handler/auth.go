package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/internal/payload"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
	"github.com/vasapolrittideah/expense-tracker-api/shared/validation"
)

// AuthHandler serves registration, login and the password reset endpoints.
type AuthHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validation.Validator
	logger               *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyInUse) {
			respondError(w, http.StatusBadRequest, "Email already in use")
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		respondErrorDetail(w, http.StatusInternalServerError, "Error registering user", err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.AuthResponse{
		ID:    result.User.ID.Hex(),
		User:  payload.NewUserResponse(result.User),
		Token: result.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		respondErrorDetail(w, http.StatusInternalServerError, "Error logging in user", err)
		return
	}

	respondJSON(w, http.StatusOK, payload.AuthResponse{
		ID:    result.User.ID.Hex(),
		User:  payload.NewUserResponse(result.User),
		Token: result.Token,
	})
}

func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleSignInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.GoogleSignIn(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidGoogleToken) {
			respondError(w, http.StatusUnauthorized, "Invalid Google ID token")
			return
		}

		h.logger.Error().Err(err).Msg("failed to sign in with google")
		respondErrorDetail(w, http.StatusInternalServerError, "Error signing in with Google", err)
		return
	}

	respondJSON(w, http.StatusOK, payload.AuthResponse{
		ID:    result.User.ID.Hex(),
		User:  payload.NewUserResponse(result.User),
		Token: result.Token,
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to request password reset")
		respondError(w, http.StatusInternalServerError, "Error requesting password reset")
		return
	}

	// Same answer whether or not the email exists.
	respondJSON(w, http.StatusOK, payload.MessageResponse{
		Message: "If that email is registered, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResetTokenNotFound):
			respondError(w, http.StatusNotFound, "Password reset token not found")
		case errors.Is(err, usecase.ErrResetTokenAlreadyUsed):
			respondError(w, http.StatusBadRequest, "Password reset token has already been used")
		case errors.Is(err, usecase.ErrResetTokenExpired):
			respondError(w, http.StatusUnauthorized, "Password reset token has expired")
		case errors.Is(err, usecase.ErrInvalidResetToken):
			respondError(w, http.StatusUnauthorized, "Invalid password reset token")
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			respondError(w, http.StatusInternalServerError, "Error resetting password")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "Password has been reset"})
}
