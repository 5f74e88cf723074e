package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/internal/payload"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
	"github.com/vasapolrittideah/expense-tracker-api/shared/middleware"
	"github.com/vasapolrittideah/expense-tracker-api/shared/validation"
)

// UserHandler serves the profile endpoints.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	user, err := h.userUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to fetch user info")
		respondError(w, http.StatusInternalServerError, "Error fetching user info")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization token is missing")
		return
	}

	var req payload.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userUsecase.UpdateProfile(r.Context(), userID, updateParamsFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, usecase.ErrEmailAlreadyInUse):
			respondError(w, http.StatusBadRequest, "Email already in use")
		case errors.Is(err, usecase.ErrInvalidCurrentPassword):
			respondError(w, http.StatusBadRequest, "Current password is incorrect")
		default:
			h.logger.Error().Err(err).Msg("failed to update profile")
			respondErrorDetail(w, http.StatusInternalServerError, "Error updating profile", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    payload.NewUserResponse(user),
	})
}

// updateParamsFromRequest maps the wire shape onto usecase params. A password
// change is forwarded only when both fields are present and non-empty; a
// half-filled pair is deliberately dropped so the update proceeds without
// touching the password.
func updateParamsFromRequest(req payload.UpdateProfileRequest) usecase.UpdateProfileParams {
	params := usecase.UpdateProfileParams{
		ProfileImageURL: req.ProfileImageURL,
	}

	if req.FullName != nil && *req.FullName != "" {
		params.FullName = req.FullName
	}
	if req.Email != nil && *req.Email != "" {
		params.Email = req.Email
	}

	if req.CurrentPassword != nil && *req.CurrentPassword != "" &&
		req.NewPassword != nil && *req.NewPassword != "" {
		params.PasswordChange = &usecase.PasswordChangeParams{
			Current: *req.CurrentPassword,
			New:     *req.NewPassword,
		}
	}

	return params
}
