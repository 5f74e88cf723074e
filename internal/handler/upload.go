package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/internal/payload"
	"github.com/vasapolrittideah/expense-tracker-api/shared/storage"
)

// maxUploadSize bounds the in-memory multipart parse.
const maxUploadSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// UploadHandler relays avatar images to the image host.
type UploadHandler struct {
	uploader storage.Uploader
	logger   *zerolog.Logger
}

func NewUploadHandler(uploader storage.Uploader, logger *zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger,
	}
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	// The allow-list is checked before any bytes leave the process.
	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		respondError(w, http.StatusBadRequest, "Only .jpeg, .jpg, .png, .webp formats are allowed")
		return
	}

	imageURL, err := h.uploader.Upload(r.Context(), file)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to upload image")
		respondErrorDetail(w, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	respondJSON(w, http.StatusOK, payload.UploadImageResponse{ImageURL: imageURL})
}
