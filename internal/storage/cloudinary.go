package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStore uploads a locally staged file to an external image host and
// returns a delivery URL for it.
type ImageStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// CloudinaryStore hosts images on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// Ensure CloudinaryStore implements ImageStore
var _ ImageStore = (*CloudinaryStore)(nil)

// NewCloudinaryStore creates a Cloudinary-backed image store.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload pushes the staged file to Cloudinary and derives an optimized
// delivery URL (auto format and quality) from the returned public ID.
func (s *CloudinaryStore) Upload(ctx context.Context, localPath string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}

	img, err := s.cld.Image(res.PublicID)
	if err != nil {
		return "", fmt.Errorf("build delivery url: %w", err)
	}
	img.Transformation = "f_auto,q_auto"

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("build delivery url: %w", err)
	}
	return url, nil
}
