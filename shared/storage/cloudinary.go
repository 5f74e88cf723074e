package storage

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Uploader forwards image bytes to a hosted image provider and returns the
// public URL of the stored asset.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

// Config holds the Cloudinary credentials and upload destination.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

const profileImageTransformation = "c_fill,g_face,h_500,w_500"

var allowedFormats = api.CldAPIArray{"jpg", "jpeg", "png", "webp"}

type cloudinaryUploader struct {
	client *cloudinary.Cloudinary
	folder string
	logger *zerolog.Logger
}

// NewCloudinaryUploader creates an Uploader backed by Cloudinary. Avatars are
// stored under the configured folder and cropped to a 500x500 square centered
// on the detected face.
func NewCloudinaryUploader(cfg Config, logger *zerolog.Logger) (Uploader, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}

	return &cloudinaryUploader{
		client: client,
		folder: cfg.Folder,
		logger: logger,
	}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	result, err := u.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       uuid.NewString(),
		Folder:         u.folder,
		AllowedFormats: allowedFormats,
		Transformation: profileImageTransformation,
	})
	if err != nil {
		return "", err
	}

	// The SDK reports some provider-side failures in the response body
	// instead of the error return.
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}

	if result.SecureURL == "" {
		return "", errors.New("upload succeeded but no URL was returned")
	}

	return result.SecureURL, nil
}
