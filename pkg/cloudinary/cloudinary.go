package cloudinary

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client wraps Cloudinary upload with delivery optimization for avatars.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
}

const (
	imageEager = "q_auto,f_auto,w_400,c_fill"
	imageWidth = 400
)

var eagerAsyncFalse = false

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

// BuildOptimizedImageURL returns a Cloudinary URL with transformations for optimized delivery.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = imageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

func (c *clientImpl) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", err
	}
	if len(result.Eager) > 0 && result.Eager[0].SecureURL != "" {
		return result.Eager[0].SecureURL, nil
	}
	return result.SecureURL, nil
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{cloudName: cloudName, uploader: up}, nil
}
