package payload

type RegisterRequest struct {
	FullName        string  `json:"fullName"        validate:"required"`
	Email           string  `json:"email"           validate:"required,email"`
	Password        string  `json:"password"        validate:"required,min=8"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleSignInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// AuthResponse is returned by register, login and google sign-in. The id is
// duplicated at the top level because the SPA reads it from there.
type AuthResponse struct {
	ID    string       `json:"id"`
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
