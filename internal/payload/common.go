package payload

// ErrorResponse is the single error body shape. Message is what the SPA
// shows in a toast; Error optionally carries the underlying error text.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadImageResponse carries the provider-assigned URL of an uploaded image.
type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
