package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService manages parking-spot image assets.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	ResolveURL(publicID string) string
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}
