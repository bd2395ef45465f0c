package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
	"github.com/yourname/dreamcatcher/internal/storage"
)

const defaultMood = 3

type DreamRequest struct {
	Title     string     `json:"title" validate:"required,max=255"`
	Content   string     `json:"content" validate:"required"`
	Mood      *int       `json:"mood" validate:"omitempty,gte=1,lte=5"`
	Tags      []string   `json:"tags"`
	DreamDate *time.Time `json:"dream_date"`
}

// DreamPatch lists the fields an update may set. Nil means leave as is.
type DreamPatch struct {
	Title     *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Content   *string    `json:"content" validate:"omitempty,min=1"`
	Mood      *int       `json:"mood" validate:"omitempty,gte=1,lte=5"`
	Tags      *[]string  `json:"tags"`
	DreamDate *time.Time `json:"dream_date"`
}

func (p *DreamPatch) Apply(d *internal.Dream) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Mood != nil {
		d.Mood = *p.Mood
	}
	if p.Tags != nil {
		d.Tags = cloneStrings(*p.Tags)
	}
	if p.DreamDate != nil {
		d.DreamDate = p.DreamDate.UTC()
	}
}

type DreamQuery struct {
	PageQuery
	Mood *int `form:"mood" validate:"omitempty,gte=1,lte=5"`
}

func ValidateDreamRequest(req *DreamRequest) error { return validateStruct(req) }

func CreateDream(ctx context.Context, repo storage.DreamRepository, user *internal.User, req *DreamRequest) (*internal.Dream, error) {
	if err := ValidateDreamRequest(req); err != nil {
		return nil, err
	}
	ts := now()
	dream := &internal.Dream{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      defaultMood,
		Tags:      cloneStrings(req.Tags),
		DreamDate: ts,
		CreatedAt: ts,
	}
	if req.Mood != nil {
		dream.Mood = *req.Mood
	}
	if req.DreamDate != nil {
		dream.DreamDate = req.DreamDate.UTC()
	}
	if err := repo.CreateDream(ctx, dream); err != nil {
		return nil, err
	}
	return dream, nil
}

func ListDreams(ctx context.Context, repo storage.DreamRepository, user *internal.User, q *DreamQuery) ([]internal.Dream, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	return repo.ListDreams(ctx, user.ID, storage.DreamFilter{Page: q.page(), Mood: q.Mood})
}

func GetDream(ctx context.Context, repo storage.DreamRepository, user *internal.User, id string) (*internal.Dream, error) {
	return repo.GetDream(ctx, user.ID, id)
}

func UpdateDream(ctx context.Context, repo storage.DreamRepository, user *internal.User, id string, patch *DreamPatch) (*internal.Dream, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	dream, err := repo.GetDream(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(dream)
	ts := now()
	dream.UpdatedAt = &ts
	if err := repo.UpdateDream(ctx, dream); err != nil {
		return nil, err
	}
	return dream, nil
}

func DeleteDream(ctx context.Context, repo storage.DreamRepository, user *internal.User, id string) error {
	return repo.DeleteDream(ctx, user.ID, id)
}

// InterpretDream stores the assistant's reading (or its fallback) on the dream.
func InterpretDream(ctx context.Context, repo storage.DreamRepository, assistant *ai.Assistant, user *internal.User, id string) (*internal.Dream, error) {
	dream, err := repo.GetDream(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	text := assistant.InterpretDream(ctx, dream.Content, dream.Mood, dream.Tags)
	ts := now()
	dream.AIInterpretation = &text
	dream.UpdatedAt = &ts
	if err := repo.UpdateDream(ctx, dream); err != nil {
		return nil, err
	}
	return dream, nil
}
