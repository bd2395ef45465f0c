package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/storage"
)

const defaultQuality = 3

const dreamRefMessage = "Dream not found or doesn't belong to you"

type SleepLogRequest struct {
	SleepTime time.Time `json:"sleep_time" validate:"required"`
	WakeTime  time.Time `json:"wake_time" validate:"required,gtfield=SleepTime"`
	Quality   *int      `json:"quality" validate:"omitempty,gte=1,lte=5"`
	Notes     *string   `json:"notes"`
	DreamID   *string   `json:"dream_id"`
}

type SleepLogPatch struct {
	SleepTime *time.Time `json:"sleep_time"`
	WakeTime  *time.Time `json:"wake_time"`
	Quality   *int       `json:"quality" validate:"omitempty,gte=1,lte=5"`
	Notes     *string    `json:"notes"`
	DreamID   *string    `json:"dream_id"`
}

func (p *SleepLogPatch) Apply(l *internal.SleepLog) {
	if p.SleepTime != nil {
		l.SleepTime = p.SleepTime.UTC()
	}
	if p.WakeTime != nil {
		l.WakeTime = p.WakeTime.UTC()
	}
	if p.Quality != nil {
		l.Quality = *p.Quality
	}
	if p.Notes != nil {
		notes := *p.Notes
		l.Notes = &notes
	}
	if p.DreamID != nil {
		l.DreamID = dreamRef(p.DreamID)
	}
}

type SleepLogQuery struct {
	PageQuery
	Quality *int `form:"quality" validate:"omitempty,gte=1,lte=5"`
}

type SleepStats struct {
	Nights               int     `json:"nights"`
	AverageQuality       float64 `json:"average_quality"`
	AverageDurationHours float64 `json:"average_duration_hours"`
	Trend                []int   `json:"trend"`
}

func ValidateSleepLogRequest(body *SleepLogRequest) error {
	return validateStruct(body)
}

func CreateSleepLog(ctx context.Context, sleepRepo storage.SleepLogRepository, dreamRepo storage.DreamRepository, user *internal.User, body *SleepLogRequest) (*internal.SleepLog, error) {
	if err := ValidateSleepLogRequest(body); err != nil {
		return nil, err
	}
	if err := checkDreamRef(ctx, dreamRepo, user, body.DreamID); err != nil {
		return nil, err
	}
	log := &internal.SleepLog{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		DreamID:   dreamRef(body.DreamID),
		SleepTime: body.SleepTime.UTC(),
		WakeTime:  body.WakeTime.UTC(),
		Quality:   defaultQuality,
		Notes:     body.Notes,
		CreatedAt: now(),
	}
	if body.Quality != nil {
		log.Quality = *body.Quality
	}
	if err := sleepRepo.CreateSleepLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func ListSleepLogs(ctx context.Context, sleepRepo storage.SleepLogRepository, user *internal.User, q *SleepLogQuery) ([]internal.SleepLog, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	return sleepRepo.ListSleepLogs(ctx, user.ID, storage.SleepLogFilter{Page: q.page(), Quality: q.Quality})
}

func GetSleepLog(ctx context.Context, sleepRepo storage.SleepLogRepository, user *internal.User, id string) (*internal.SleepLog, error) {
	return sleepRepo.GetSleepLog(ctx, user.ID, id)
}

func UpdateSleepLog(ctx context.Context, sleepRepo storage.SleepLogRepository, dreamRepo storage.DreamRepository, user *internal.User, id string, patch *SleepLogPatch) (*internal.SleepLog, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	log, err := sleepRepo.GetSleepLog(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	if err := checkDreamRef(ctx, dreamRepo, user, patch.DreamID); err != nil {
		return nil, err
	}
	patch.Apply(log)
	if !log.WakeTime.After(log.SleepTime) {
		return nil, internal.NewValidationError("wake_time", "wake_time must be after sleep_time")
	}
	ts := now()
	log.UpdatedAt = &ts
	if err := sleepRepo.UpdateSleepLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func DeleteSleepLog(ctx context.Context, sleepRepo storage.SleepLogRepository, user *internal.User, id string) error {
	return sleepRepo.DeleteSleepLog(ctx, user.ID, id)
}

// dreamRef maps an empty dream_id to no link.
func dreamRef(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	ref := *id
	return &ref
}

func checkDreamRef(ctx context.Context, dreamRepo storage.DreamRepository, user *internal.User, dreamID *string) error {
	if dreamRef(dreamID) == nil {
		return nil
	}
	_, err := dreamRepo.GetDream(ctx, user.ID, *dreamID)
	if errors.Is(err, internal.ErrNotFound) {
		return internal.NewValidationError("dream_id", dreamRefMessage)
	}
	return err
}

// CalculateSleepStats summarises the nights that started within the last seven days.
func CalculateSleepStats(logs []internal.SleepLog) SleepStats {
	cutoff := now().AddDate(0, 0, -7)
	totalQuality := 0
	totalHours := 0.0
	trend := []int{}

	for _, l := range logs {
		if l.SleepTime.After(cutoff) {
			totalQuality += l.Quality
			totalHours += l.WakeTime.Sub(l.SleepTime).Hours()
			trend = append(trend, l.Quality)
		}
	}

	stats := SleepStats{Nights: len(trend), Trend: trend}
	if len(trend) > 0 {
		stats.AverageQuality = float64(totalQuality) / float64(len(trend))
		stats.AverageDurationHours = totalHours / float64(len(trend))
	}
	return stats
}

func GetSleepStats(ctx context.Context, sleepRepo storage.SleepLogRepository, user *internal.User) (SleepStats, error) {
	logs, err := sleepRepo.ListSleepLogs(ctx, user.ID, storage.SleepLogFilter{Page: storage.Page{Limit: recentSleepLimit}})
	if err != nil {
		return SleepStats{}, err
	}
	return CalculateSleepStats(logs), nil
}
