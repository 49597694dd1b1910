// Package services holds optional external collaborators. Cloudinary is an
// alternative image store used only when credentials are configured; the
// default backend is the remote store's object storage.
package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const cloudinaryFolder = "plant-images"

// CloudinaryStore uploads plant images to Cloudinary. Implements
// store.ImageStore.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// UploadImage stores the image under a per-user folder and returns its
// public URL plus the object path.
func (s *CloudinaryStore) UploadImage(ctx context.Context, userID, ext, contentType string, data []byte) (string, string, error) {
	publicID := fmt.Sprintf("%s/%s/%s", cloudinaryFolder, userID, uuid.NewString())
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return result.SecureURL, publicID + "." + ext, nil
}
