package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadAPI is the part of the Cloudinary client the archive uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string) StorageService {
	zap.L().Debug("Initializing Cloudinary image archive", zap.String("cloudName", cloudName))
	return &StorageServiceImpl{
		uploader:  &cld.Upload,
		cloudName: cloudName,
	}
}

var unsafeIDChars = regexp.MustCompile(`[^\p{L}\p{N}_\-]+`)

// PublicIDFor derives the readable part of a public ID from an uploaded file name.
func PublicIDFor(filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.Trim(unsafeIDChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "image"
	}
	return base
}

// FolderFor returns the archive folder of a member's submissions. Letters and digits
// of any script are kept, so 山田 and 佐藤 get separate folders.
func FolderFor(member string) string {
	folder := strings.Trim(unsafeIDChars.ReplaceAllString(member, "_"), "_")
	if folder == "" {
		folder = "unknown"
	}
	return "schedules/" + folder
}

// uploadPublicID suffixes the file name with a short random id, so a member who sends
// timetable.png twice keeps both archives.
func uploadPublicID(filename string) string {
	return PublicIDFor(filename) + "_" + uuid.NewString()[:8]
}

// ArchiveImage uploads an image into the specified folder and returns the permanent identifier.
func (s *StorageServiceImpl) ArchiveImage(ctx context.Context, folder, filename string, data []byte) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:    folder,
		PublicID:  uploadPublicID(filename),
		Overwrite: api.Bool(false),
	}
	result, err := s.uploader.Upload(ctx, bytes.NewReader(data), uploadParams)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("StorageServiceImpl: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("StorageServiceImpl: no public ID returned")
	}
	return result.PublicID, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}

// GetDownloadURL constructs the public delivery URL of an archived image.
func (s *StorageServiceImpl) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	if publicID == "" {
		return "", fmt.Errorf("StorageServiceImpl: empty public ID")
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, publicID), nil
}

func (s *StorageServiceImpl) Enabled() bool { return true }
