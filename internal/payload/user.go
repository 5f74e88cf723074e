package payload

import "github.com/vasapolrittideah/expense-tracker-api/internal/model"

// UserResponse is the client-facing view of a user. The password hash never
// appears here.
type UserResponse struct {
	ID              string  `json:"id"`
	FullName        string  `json:"fullName"`
	Email           string  `json:"email"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// NewUserResponse builds a UserResponse from a stored user.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:              user.ID.Hex(),
		FullName:        user.FullName,
		Email:           user.Email,
		ProfileImageURL: user.ProfileImageURL,
	}
}

// UpdateProfileRequest enumerates every updatable profile field. Absent
// fields stay nil and leave the stored value untouched; an explicit empty
// profileImageUrl clears the avatar.
type UpdateProfileRequest struct {
	FullName        *string `json:"fullName"        validate:"omitempty,min=1"`
	Email           *string `json:"email"           validate:"omitempty,email"`
	ProfileImageURL *string `json:"profileImageUrl"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword"     validate:"omitempty,min=8"`
}

type UpdateProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
