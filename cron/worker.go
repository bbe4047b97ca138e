package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"groupcal/config"
	"groupcal/models"
	"groupcal/services/schedule"
	"groupcal/services/storage"
	"groupcal/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Purger deletes events older than a date.
type Purger interface {
	PurgeBefore(ctx context.Context, date string) (int64, error)
}

// Worker owns the asynq server and, when retention is enabled, the purge scheduler.
type Worker struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler
	cancel    context.CancelFunc
}

// RedisOpts returns the asynq connection for the queue database.
func RedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux registers the task handlers.
func NewMux(store storage.StorageService, purger Purger, retentionMonths int) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeImageArchive, HandleImageArchiveTask(store))
	mux.HandleFunc(tasks.TypeEventsPurge, HandlePurgeTask(purger, retentionMonths, time.Now))
	return mux
}

// InitWorker runs the async worker in background.
func InitWorker(store storage.StorageService, purger Purger) (*Worker, error) {
	logger := zap.L().Sugar()
	redisOpts := RedisOpts()

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewMux(store, purger, config.AppConfig.RetentionMonths)

	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{srv: srv, cancel: cancel}

	// Start Redis health monitor
	go monitorRedisConnection(ctx, redisOpts)

	// Start async worker with retry logic
	go func() {
		logger.Info("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Warnf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					logger.Error("[Worker] Max retry attempts reached, background tasks disabled")
					return
				}
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Duration(attempts*2) * time.Second):
				}
				continue
			}
			return
		}
	}()

	if config.AppConfig.RetentionMonths > 0 {
		scheduler := asynq.NewScheduler(redisOpts, nil)
		task, err := tasks.NewPurgeTask("")
		if err != nil {
			cancel()
			return nil, fmt.Errorf("build purge task: %w", err)
		}
		if _, err := scheduler.Register("@daily", task); err != nil {
			cancel()
			return nil, fmt.Errorf("register purge schedule: %w", err)
		}
		if err := scheduler.Start(); err != nil {
			cancel()
			return nil, fmt.Errorf("start purge scheduler: %w", err)
		}
		w.scheduler = scheduler
		logger.Infof("[Worker] Daily purge scheduled, keeping %d month(s)", config.AppConfig.RetentionMonths)
	}
	return w, nil
}

// Shutdown stops the scheduler and waits for in-flight tasks.
func (w *Worker) Shutdown() {
	if w == nil {
		return
	}
	w.cancel()
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.srv.Shutdown()
}

// HandleImageArchiveTask uploads the payload image to the archive.
func HandleImageArchiveTask(store storage.StorageService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := zap.L()
		var p models.ImageArchivePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ArchiveHandler] Invalid payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		if !store.Enabled() {
			return nil
		}

		id, err := store.ArchiveImage(ctx, storage.FolderFor(p.Member), p.Filename, p.Data)
		if err != nil {
			logger.Error("[ArchiveHandler] Failed to archive image", zap.String("member", p.Member), zap.String("file", p.Filename), zap.Error(err))
			return err
		}
		logger.Info("[ArchiveHandler] Archived schedule image", zap.String("member", p.Member), zap.String("publicId", id))
		return nil
	}
}

// HandlePurgeTask deletes events before the payload date, or before the retention
// cutoff when the payload leaves it out.
func HandlePurgeTask(purger Purger, retentionMonths int, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := zap.L()
		var p models.PurgePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		before := p.Before
		if before == "" {
			if retentionMonths <= 0 {
				logger.Debug("[PurgeHandler] Retention disabled, nothing to purge")
				return nil
			}
			before = schedule.RetentionCutoff(now(), retentionMonths)
		}

		n, err := purger.PurgeBefore(ctx, before)
		if err != nil {
			var se *schedule.ScheduleError
			if errors.As(err, &se) {
				return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
			}
			return err
		}
		logger.Info("[PurgeHandler] Purged old events", zap.String("before", before), zap.Int64("count", n))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, opts asynq.RedisClientOpt) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				zap.L().Warn("[Worker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
