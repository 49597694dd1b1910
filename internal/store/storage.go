package store

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const imagesBucket = "plant-images"

// ImageStore saves an uploaded plant image and returns its public URL plus
// the object path. Implemented by Storage (the remote store's object API)
// and by the optional Cloudinary backend.
type ImageStore interface {
	UploadImage(ctx context.Context, userID, ext, contentType string, data []byte) (url, path string, err error)
}

// Storage uploads binary objects through the remote store's storage API.
// Binary uploads get the longer 30s timeout.
type Storage struct {
	client *Client
}

func NewStorage(client *Client) *Storage {
	return &Storage{client: client}
}

// UploadImage stores image bytes under a per-user timestamped object name
// and returns the public URL for it.
func (s *Storage) UploadImage(ctx context.Context, userID, ext, contentType string, data []byte) (string, string, error) {
	objectPath := fmt.Sprintf("%s/%s.%s", userID, time.Now().UTC().Format("20060102_150405"), ext)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.client.baseURL, imagesBucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", "", ErrUnavailable
	}
	req.Header.Set("Authorization", "Bearer "+s.client.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.upload.Do(req)
	if err != nil {
		s.client.log.Warn("image upload failed", zap.Error(err))
		return "", "", ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.client.log.Warn("image upload rejected", zap.Int("status", resp.StatusCode))
		return "", "", ErrUnavailable
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.client.baseURL, imagesBucket, objectPath)
	return publicURL, objectPath, nil
}
