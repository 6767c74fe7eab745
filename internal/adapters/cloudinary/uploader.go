// Package cloudinary uploads event images to Cloudinary and returns their
// public URLs.
package cloudinary

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"devevents/internal/domain"
)

// uploadFolder groups all event banners on the asset host.
const uploadFolder = "DevEvents"

// Config holds the Cloudinary credentials from the environment.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Uploader implements domain.ImageUploader. The underlying client is built
// lazily on first upload so missing credentials fail the operation that
// needed them, not process startup.
type Uploader struct {
	cfg Config

	once    sync.Once
	client  *cloudinary.Cloudinary
	initErr error
}

func NewUploader(cfg Config) *Uploader {
	return &Uploader{cfg: cfg}
}

// Upload stores the image in the DevEvents folder and returns its secure URL.
func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if u.cfg.CloudName == "" || u.cfg.APIKey == "" || u.cfg.APISecret == "" {
		return "", &domain.ConfigurationError{Missing: "CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET"}
	}
	u.once.Do(func() {
		u.client, u.initErr = cloudinary.NewFromParams(u.cfg.CloudName, u.cfg.APIKey, u.cfg.APISecret)
	})
	if u.initErr != nil {
		return "", fmt.Errorf("init cloudinary client: %w", u.initErr)
	}

	resp, err := u.client.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:       uploadFolder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	// The SDK reports some API failures on the result instead of err.
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("upload %s: no secure URL returned", filename)
	}
	return resp.SecureURL, nil
}
