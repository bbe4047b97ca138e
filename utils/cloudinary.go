package utils

import (
	"fmt"

	"groupcal/config"
	"groupcal/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary returns the image archive. Without credentials the archive is a no-op.
func Cloudinary() (storage.StorageService, error) {
	cloudName := config.AppConfig.CloudinaryCloudName
	apiKey := config.AppConfig.CloudinaryAPIKey
	apiSecret := config.AppConfig.CloudinaryAPISecret

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		GetLogger().Info("Cloudinary credentials not set, image archive disabled")
		return storage.NewNoopStorage(), nil
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}

	return storage.NewStorageService(cld, cloudName), nil
}
