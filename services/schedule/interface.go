package schedule

import (
	"context"
	"time"

	eventRepo "groupcal/database/repository/event"
	"groupcal/models"
	ai "groupcal/services/intelligence"
)

// ScheduleService is the calendar's business layer.
type ScheduleService interface {
	CreateFromInput(ctx context.Context, input models.ScheduleInput) ([]models.Event, error)
	EventsForMonth(ctx context.Context, year, month int) ([]models.Event, error)
	FreeSlots(ctx context.Context, q models.FreeSlotQuery) (models.FreeSlotsByDate, error)
	DeleteByDateAndName(ctx context.Context, date, name string) (*models.DeleteResult, error)
	DeleteAll(ctx context.Context) (int64, error)
	PurgeBefore(ctx context.Context, date string) (int64, error)
}

// ImageQueue hands uploaded images to the background archiver.
type ImageQueue interface {
	EnqueueImageArchive(ctx context.Context, payload models.ImageArchivePayload) error
}

// Recorder receives service level measurements.
type Recorder interface {
	SlotCacheLookup(hit bool)
	ScheduleSubmitted(outcome string, events int)
}

// Submission outcomes reported to the Recorder.
const (
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeEmpty    = "empty"
	OutcomeStored   = "stored"
)

type noopRecorder struct{}

func (noopRecorder) SlotCacheLookup(bool)          {}
func (noopRecorder) ScheduleSubmitted(string, int) {}

// Options configures free slot defaults.
type Options struct {
	WorkStart       string
	WorkEnd         string
	DefaultDuration int
	Now             func() time.Time
	Recorder        Recorder
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Repo      eventRepo.EventRepository
	Extractor ai.Extractor
	Cache     SlotCache
	Images    ImageQueue
	opts      Options
}

// NewScheduleService wires the service. cache and images may be nil.
func NewScheduleService(repo eventRepo.EventRepository, extractor ai.Extractor, cache SlotCache, images ImageQueue, opts Options) *DefaultScheduleService {
	if cache == nil {
		cache = noopSlotCache{}
	}
	if opts.WorkStart == "" {
		opts.WorkStart = "07:00"
	}
	if opts.WorkEnd == "" {
		opts.WorkEnd = "22:00"
	}
	if opts.DefaultDuration < 1 {
		opts.DefaultDuration = 60
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Recorder == nil {
		opts.Recorder = noopRecorder{}
	}
	return &DefaultScheduleService{
		Repo:      repo,
		Extractor: extractor,
		Cache:     cache,
		Images:    images,
		opts:      opts,
	}
}

// DefaultDuration is the slot length used when a query leaves it out.
func (s *DefaultScheduleService) DefaultDuration() int {
	return s.opts.DefaultDuration
}
