package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	params    uploader.UploadParams
	body      []byte
	err       error
	destroyed string
}

func (f *fakeUploader) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.params = params
	if r, ok := file.(io.Reader); ok {
		f.body, _ = io.ReadAll(r)
	}
	return &uploader.UploadResult{PublicID: params.Folder + "/" + params.PublicID}, nil
}

func (f *fakeUploader) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = params.PublicID
	return &uploader.DestroyResult{}, nil
}

func TestPublicIDFor(t *testing.T) {
	tests := map[string]string{
		"timetable.png":        "timetable",
		"my calendar (1).jpeg": "my_calendar_1",
		"dir/../photo.JPG":     "photo",
		".png":                 "image",
		"時間割 6月.png":           "時間割_6月",
	}
	for in, want := range tests {
		assert.Equal(t, want, PublicIDFor(in), in)
	}
}

func TestFolderFor(t *testing.T) {
	assert.Equal(t, "schedules/Alice_Smith", FolderFor("Alice Smith"))
	assert.Equal(t, "schedules/unknown", FolderFor("  "))
	assert.Equal(t, "schedules/山田", FolderFor("山田"))
	assert.NotEqual(t, FolderFor("山田"), FolderFor("佐藤"))
}

func TestArchiveImage(t *testing.T) {
	fake := &fakeUploader{}
	svc := &StorageServiceImpl{uploader: fake, cloudName: "demo"}

	id, err := svc.ArchiveImage(context.Background(), "schedules/Alice", "week.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Regexp(t, `^schedules/Alice/week_[0-9a-f]{8}$`, id)
	assert.Equal(t, "schedules/Alice", fake.params.Folder)
	require.NotNil(t, fake.params.Overwrite)
	assert.False(t, *fake.params.Overwrite)
	assert.Equal(t, []byte("png-bytes"), fake.body)

	require.NoError(t, svc.DeleteFile(context.Background(), id))
	assert.Equal(t, id, fake.destroyed)

	url, err := svc.GetDownloadURL(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/"+id, url)
	assert.True(t, svc.Enabled())
}

func TestArchiveImageKeepsRepeatedUploads(t *testing.T) {
	svc := &StorageServiceImpl{uploader: &fakeUploader{}, cloudName: "demo"}
	ctx := context.Background()

	first, err := svc.ArchiveImage(ctx, FolderFor("Alice"), "timetable.png", []byte("v1"))
	require.NoError(t, err)
	second, err := svc.ArchiveImage(ctx, FolderFor("Alice"), "timetable.png", []byte("v2"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	yamada, err := svc.ArchiveImage(ctx, FolderFor("山田"), "IMG_0001.jpg", []byte("a"))
	require.NoError(t, err)
	sato, err := svc.ArchiveImage(ctx, FolderFor("佐藤"), "IMG_0001.jpg", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, yamada, sato)
	assert.Regexp(t, `^schedules/山田/IMG_0001_`, yamada)
	assert.Regexp(t, `^schedules/佐藤/IMG_0001_`, sato)
}

func TestArchiveImageUploadFailure(t *testing.T) {
	svc := &StorageServiceImpl{uploader: &fakeUploader{err: errors.New("network down")}}
	_, err := svc.ArchiveImage(context.Background(), "f", "a.png", nil)
	assert.ErrorContains(t, err, "network down")
}

func TestNoopStorage(t *testing.T) {
	svc := NewNoopStorage()
	assert.False(t, svc.Enabled())
	id, err := svc.ArchiveImage(context.Background(), "f", "a.png", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, id)
	_, err = svc.GetDownloadURL(context.Background(), "x")
	assert.ErrorIs(t, err, ErrDisabled)
}
