package storage

import (
	"context"
	"errors"
)

// ErrDisabled is returned by lookups on an archive that has no backing store.
var ErrDisabled = errors.New("image archive is not configured")

// StorageService archives submitted schedule images.
type StorageService interface {
	// ArchiveImage uploads data under folder and returns the permanent identifier.
	ArchiveImage(ctx context.Context, folder, filename string, data []byte) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, publicID string) (string, error)
	Enabled() bool
}

// StorageServiceImpl implements StorageService on Cloudinary.
type StorageServiceImpl struct {
	uploader  uploadAPI
	cloudName string
}

// noopStorage is used when no Cloudinary credentials are configured.
type noopStorage struct{}

// NewNoopStorage returns a StorageService that accepts and drops every image.
func NewNoopStorage() StorageService { return noopStorage{} }

func (noopStorage) ArchiveImage(ctx context.Context, folder, filename string, data []byte) (string, error) {
	return "", nil
}

func (noopStorage) DeleteFile(ctx context.Context, publicID string) error { return nil }

func (noopStorage) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	return "", ErrDisabled
}

func (noopStorage) Enabled() bool { return false }
