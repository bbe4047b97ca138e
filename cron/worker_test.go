package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"groupcal/models"
	"groupcal/services/schedule"
	"groupcal/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	enabled bool
	folder  string
	file    string
	err     error
}

func (f *fakeStorage) ArchiveImage(ctx context.Context, folder, filename string, data []byte) (string, error) {
	f.folder, f.file = folder, filename
	return folder + "/x", f.err
}
func (f *fakeStorage) DeleteFile(ctx context.Context, publicID string) error { return nil }
func (f *fakeStorage) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	return "", nil
}
func (f *fakeStorage) Enabled() bool { return f.enabled }

type fakePurger struct {
	before string
	err    error
}

func (f *fakePurger) PurgeBefore(ctx context.Context, date string) (int64, error) {
	f.before = date
	return 3, f.err
}

func TestHandleImageArchiveTask(t *testing.T) {
	task, _, err := tasks.NewImageArchiveTask(models.ImageArchivePayload{Member: "Alice Smith", Filename: "week.png", Data: []byte{1}})
	require.NoError(t, err)

	store := &fakeStorage{enabled: true}
	require.NoError(t, HandleImageArchiveTask(store)(context.Background(), task))
	assert.Equal(t, "schedules/Alice_Smith", store.folder)
	assert.Equal(t, "week.png", store.file)

	disabled := &fakeStorage{}
	require.NoError(t, HandleImageArchiveTask(disabled)(context.Background(), task))
	assert.Empty(t, disabled.folder)

	failing := &fakeStorage{enabled: true, err: errors.New("quota")}
	assert.Error(t, HandleImageArchiveTask(failing)(context.Background(), task))

	bad := asynq.NewTask(tasks.TypeImageArchive, []byte("{"))
	assert.ErrorIs(t, HandleImageArchiveTask(store)(context.Background(), bad), asynq.SkipRetry)
}

func TestHandlePurgeTask(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

	t.Run("cutoff from retention", func(t *testing.T) {
		p := &fakePurger{}
		task, err := tasks.NewPurgeTask("")
		require.NoError(t, err)
		require.NoError(t, HandlePurgeTask(p, 3, now)(context.Background(), task))
		assert.Equal(t, "2025-03-01", p.before)
	})

	t.Run("explicit cutoff", func(t *testing.T) {
		p := &fakePurger{}
		task, err := tasks.NewPurgeTask("2024-01-01")
		require.NoError(t, err)
		require.NoError(t, HandlePurgeTask(p, 0, now)(context.Background(), task))
		assert.Equal(t, "2024-01-01", p.before)
	})

	t.Run("retention disabled", func(t *testing.T) {
		p := &fakePurger{}
		task, err := tasks.NewPurgeTask("")
		require.NoError(t, err)
		require.NoError(t, HandlePurgeTask(p, 0, now)(context.Background(), task))
		assert.Empty(t, p.before)
	})

	t.Run("validation errors are not retried", func(t *testing.T) {
		p := &fakePurger{err: schedule.NewValidationError("bad date")}
		task, err := tasks.NewPurgeTask("nope")
		require.NoError(t, err)
		assert.ErrorIs(t, HandlePurgeTask(p, 0, now)(context.Background(), task), asynq.SkipRetry)
	})
}
