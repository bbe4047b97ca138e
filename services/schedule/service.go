package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	eventRepo "groupcal/database/repository/event"
	"groupcal/models"
	ai "groupcal/services/intelligence"

	"go.uber.org/zap"
)

// CreateFromInput validates a submission, extracts its events and stores them.
// Dated events are stored as is; weekly events are expanded over the target month.
func (s *DefaultScheduleService) CreateFromInput(ctx context.Context, input models.ScheduleInput) ([]models.Event, error) {
	events, err := s.createFromInput(ctx, input)
	switch {
	case err == nil && len(events) == 0:
		s.opts.Recorder.ScheduleSubmitted(OutcomeEmpty, 0)
	case err == nil:
		s.opts.Recorder.ScheduleSubmitted(OutcomeStored, len(events))
	case StatusOf(err) < 500:
		s.opts.Recorder.ScheduleSubmitted(OutcomeRejected, 0)
	default:
		s.opts.Recorder.ScheduleSubmitted(OutcomeFailed, 0)
	}
	return events, err
}

func (s *DefaultScheduleService) createFromInput(ctx context.Context, input models.ScheduleInput) ([]models.Event, error) {
	logger := zap.L()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, NewValidationError("氏名を入力してください。")
	}
	for _, img := range input.Images {
		if !strings.HasPrefix(img.MIMEType, "image/") {
			return nil, NewValidationError(fmt.Sprintf("アップロードされたファイル '%s' は画像ではありません。", img.Filename))
		}
	}
	text := strings.TrimSpace(input.Text)
	if text == "" && len(input.Images) == 0 {
		return nil, NewValidationError("予定テキストまたは画像を1つ以上入力/選択してください。")
	}
	if _, _, err := eventRepo.MonthRange(input.TargetYear, input.TargetMonth); err != nil {
		return nil, NewValidationError("無効な対象年月が指定されました。")
	}

	logger.Info("Extracting schedule", zap.String("name", name), zap.Int("targetYear", input.TargetYear), zap.Int("targetMonth", input.TargetMonth))
	extracted, err := s.Extractor.Extract(ctx, name, text, input.Images)
	if err != nil {
		return nil, mapExtractError(err)
	}
	if extracted == nil {
		return nil, NewAIError("AIが予定情報を抽出できませんでした。")
	}

	s.archiveImages(ctx, name, input.Images)

	if len(extracted.Events) == 0 {
		logger.Info("No processable events extracted", zap.String("name", extracted.Name))
		return []models.Event{}, nil
	}

	events := BuildEvents(extracted, input.TargetYear, input.TargetMonth)
	if len(events) == 0 {
		return nil, NewAIError("AIからの情報では登録できる有効な予定がありませんでした。")
	}

	if _, err := s.Repo.CreateMany(ctx, events); err != nil {
		logger.Error("Failed to store events", zap.Error(err))
		return nil, NewInternalError(fmt.Sprintf("予定の登録中にエラーが発生しました: %v", err))
	}
	s.invalidateMonthsOf(ctx, events)

	logger.Info("Created events", zap.String("name", extracted.Name), zap.Int("count", len(events)))
	return events, nil
}

// BuildEvents turns an extraction into storable events. Events with neither a date
// nor a known weekday are skipped.
func BuildEvents(extracted *models.ExtractedSchedule, year, month int) []models.Event {
	events := []models.Event{}
	for _, ev := range extracted.Events {
		switch {
		case ev.Date != "":
			events = append(events, models.Event{
				Name:      extracted.Name,
				EventDate: ev.Date,
				StartTime: ev.Start.HHMMSS(),
				EndTime:   ev.End.HHMMSS(),
				Source:    models.SourceDated,
			})
		case ev.DayOfWeek != "":
			events = append(events, ExpandWeekday(extracted.Name, ev.DayOfWeek, ev.Start, ev.End, year, month)...)
		default:
			zap.L().Warn("Skipping event without date or weekday", zap.String("name", extracted.Name), zap.String("start", ev.Start.HHMM()))
		}
	}
	return events
}

func mapExtractError(err error) error {
	switch {
	case errors.Is(err, ai.ErrUpstream):
		return NewUpstreamError(fmt.Sprintf("AIサービスとの通信に失敗しました: %v", err))
	case errors.Is(err, ai.ErrNotConfigured), errors.Is(err, ai.ErrInvalidResponse), errors.Is(err, ai.ErrNoInput):
		return NewAIError(fmt.Sprintf("AI処理エラー: %v", err))
	default:
		return NewInternalError(fmt.Sprintf("予期せぬエラーが発生しました: %v", err))
	}
}

func (s *DefaultScheduleService) archiveImages(ctx context.Context, name string, images []models.ImageInput) {
	if s.Images == nil {
		return
	}
	for _, img := range images {
		payload := models.ImageArchivePayload{Member: name, Filename: img.Filename, MIMEType: img.MIMEType, Data: img.Data}
		if err := s.Images.EnqueueImageArchive(ctx, payload); err != nil {
			zap.L().Warn("Failed to queue image archive", zap.String("file", img.Filename), zap.Error(err))
		}
	}
}

func (s *DefaultScheduleService) invalidateMonthsOf(ctx context.Context, events []models.Event) {
	seen := make(map[string]bool)
	for _, e := range events {
		t, err := time.Parse(dateLayout, e.EventDate)
		if err != nil {
			continue
		}
		key := t.Format("2006-01")
		if seen[key] {
			continue
		}
		seen[key] = true
		s.Cache.InvalidateMonth(ctx, t.Year(), int(t.Month()))
	}
}

func (s *DefaultScheduleService) resolveMonth(year, month int) (int, int) {
	now := s.opts.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

// EventsForMonth returns the month's events, defaulting to the current month.
func (s *DefaultScheduleService) EventsForMonth(ctx context.Context, year, month int) ([]models.Event, error) {
	year, month = s.resolveMonth(year, month)
	if _, _, err := eventRepo.MonthRange(year, month); err != nil {
		return nil, NewValidationError(fmt.Sprintf("無効な年月です: %d-%d", year, month))
	}
	events, err := s.Repo.GetByMonth(ctx, year, month)
	if err != nil {
		zap.L().Error("Failed to fetch events", zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return nil, NewInternalError(fmt.Sprintf("予定の取得中にエラーが発生しました: %v", err))
	}
	return events, nil
}

// FreeSlots finds the slots of the month in which every target member is free.
func (s *DefaultScheduleService) FreeSlots(ctx context.Context, q models.FreeSlotQuery) (models.FreeSlotsByDate, error) {
	logger := zap.L()

	q.Year, q.Month = s.resolveMonth(q.Year, q.Month)
	if q.WorkStart == "" {
		q.WorkStart = s.opts.WorkStart
	}
	if q.WorkEnd == "" {
		q.WorkEnd = s.opts.WorkEnd
	}

	if _, _, err := eventRepo.MonthRange(q.Year, q.Month); err != nil {
		return nil, NewValidationError(fmt.Sprintf("無効な年月です: %d-%d", q.Year, q.Month))
	}
	if q.DurationMinutes < 1 {
		return nil, NewValidationError("最小持続時間は1以上の数値を指定してください。")
	}
	workStart, errStart := models.ParseClock(q.WorkStart)
	workEnd, errEnd := models.ParseClock(q.WorkEnd)
	if errStart != nil || errEnd != nil {
		return nil, NewValidationError(fmt.Sprintf("無効な業務時間形式です: %s - %s", q.WorkStart, q.WorkEnd))
	}
	if workStart >= workEnd {
		return nil, NewValidationError("無効な業務時間形式です: 業務開始時刻が終了時刻以降です。")
	}

	members := compactMembers(q.Members)
	if q.MembersGiven && len(members) == 0 {
		logger.Info("Empty member list provided, no common free slots possible")
		return models.FreeSlotsByDate{}, nil
	}
	q.Members = members

	cached, cacheKey, ok := s.Cache.Get(ctx, q)
	s.opts.Recorder.SlotCacheLookup(ok)
	if ok {
		return cached, nil
	}

	events, err := s.Repo.GetByMonth(ctx, q.Year, q.Month)
	if err != nil {
		logger.Error("Failed to fetch events for free slots", zap.Error(err))
		return nil, NewInternalError(fmt.Sprintf("予定の取得中にエラーが発生しました: %v", err))
	}

	if len(members) == 0 {
		members = MemberNames(events)
		if len(members) == 0 {
			logger.Info("No members with events", zap.Int("year", q.Year), zap.Int("month", q.Month))
			return models.FreeSlotsByDate{}, nil
		}
	}

	slots := ComputeFreeSlots(events, MonthDates(q.Year, q.Month), members, q.DurationMinutes, workStart, workEnd)
	s.Cache.Set(ctx, cacheKey, slots)

	logger.Debug("Computed free slots", zap.Int("year", q.Year), zap.Int("month", q.Month), zap.Int("days", len(slots)))
	return slots, nil
}

func compactMembers(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range in {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// DeleteByDateAndName removes one member's events on one date.
func (s *DefaultScheduleService) DeleteByDateAndName(ctx context.Context, date, name string) (*models.DeleteResult, error) {
	name = strings.TrimSpace(name)
	day, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil || name == "" {
		return nil, NewValidationError("削除する日付またはメンバーが選択されていません。")
	}
	date = day.Format(dateLayout)

	n, err := s.Repo.DeleteByDateAndName(ctx, date, name)
	if err != nil {
		zap.L().Error("Failed to delete events", zap.String("date", date), zap.String("name", name), zap.Error(err))
		return nil, NewInternalError(fmt.Sprintf("予定の削除中にエラーが発生しました: %v", err))
	}
	if n == 0 {
		return &models.DeleteResult{Message: fmt.Sprintf("%s に %s さんの予定は見つかりませんでした。", date, name)}, nil
	}

	s.Cache.InvalidateMonth(ctx, day.Year(), int(day.Month()))
	return &models.DeleteResult{
		Message: fmt.Sprintf("%s の %s さんの予定を %d 件削除しました。", date, name, n),
		Deleted: n,
	}, nil
}

// DeleteAll removes every event.
func (s *DefaultScheduleService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return 0, NewInternalError(fmt.Sprintf("予定の削除中にエラーが発生しました: %v", err))
	}
	s.Cache.InvalidateAll(ctx)
	zap.L().Warn("All events deleted", zap.Int64("count", n))
	return n, nil
}

// PurgeBefore removes events dated before date.
func (s *DefaultScheduleService) PurgeBefore(ctx context.Context, date string) (int64, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return 0, NewValidationError(fmt.Sprintf("無効な日付です: %s", date))
	}
	n, err := s.Repo.DeleteBefore(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("purge before %s: %w", date, err)
	}
	if n > 0 {
		s.Cache.InvalidateAll(ctx)
	}
	return n, nil
}

// RetentionCutoff returns the first day of the month that lies months before now.
func RetentionCutoff(now time.Time, months int) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -months, 0).Format(dateLayout)
}
