package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"groupcal/models"

	"github.com/hibiken/asynq"
)

const (
	TypeImageArchive = "image:archive"
	TypeEventsPurge  = "events:purge"
)

// NewImageArchiveTask builds a task that uploads one schedule image to the archive.
func NewImageArchiveTask(payload models.ImageArchivePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeImageArchive, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}

// NewPurgeTask builds a retention purge. An empty before lets the worker compute the cutoff.
func NewPurgeTask(before string) (*asynq.Task, error) {
	b, err := json.Marshal(models.PurgePayload{Before: before})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEventsPurge, b, asynq.MaxRetry(1)), nil
}

// Enqueuer is the subset of *asynq.Client used to queue tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqImageQueue queues image archive tasks on asynq.
type AsynqImageQueue struct {
	client Enqueuer
}

func NewAsynqImageQueue(client Enqueuer) *AsynqImageQueue {
	return &AsynqImageQueue{client: client}
}

func (q *AsynqImageQueue) EnqueueImageArchive(ctx context.Context, payload models.ImageArchivePayload) error {
	task, opts, err := NewImageArchiveTask(payload)
	if err != nil {
		return fmt.Errorf("build archive task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue archive task: %w", err)
	}
	return nil
}
