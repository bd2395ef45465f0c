package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
	"github.com/yourname/dreamcatcher/internal/storage"
)

const defaultPriority = 2

type IdeaRequest struct {
	Content  string   `json:"content" validate:"required"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Tags     []string `json:"tags"`
	Priority *int     `json:"priority" validate:"omitempty,gte=1,lte=3"`
}

type IdeaPatch struct {
	Content  *string   `json:"content" validate:"omitempty,min=1"`
	Category *string   `json:"category" validate:"omitempty,max=100"`
	Tags     *[]string `json:"tags"`
	Priority *int      `json:"priority" validate:"omitempty,gte=1,lte=3"`
}

func (p *IdeaPatch) Apply(i *internal.Idea) {
	if p.Content != nil {
		i.Content = *p.Content
	}
	if p.Category != nil {
		cat := *p.Category
		i.Category = &cat
	}
	if p.Tags != nil {
		i.Tags = cloneStrings(*p.Tags)
	}
	if p.Priority != nil {
		i.Priority = *p.Priority
	}
}

type IdeaQuery struct {
	PageQuery
	Category string `form:"category"`
	Priority *int   `form:"priority" validate:"omitempty,gte=1,lte=3"`
}

type BrainstormRequest struct {
	Content  string  `json:"idea_content" validate:"required"`
	Category *string `json:"category"`
}

type BrainstormResult struct {
	Suggestions string `json:"suggestions"`
}

func CreateIdea(ctx context.Context, repo storage.IdeaRepository, user *internal.User, req *IdeaRequest) (*internal.Idea, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	idea := &internal.Idea{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      cloneStrings(req.Tags),
		Priority:  defaultPriority,
		CreatedAt: now(),
	}
	if req.Priority != nil {
		idea.Priority = *req.Priority
	}
	if err := repo.CreateIdea(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func ListIdeas(ctx context.Context, repo storage.IdeaRepository, user *internal.User, q *IdeaQuery) ([]internal.Idea, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	return repo.ListIdeas(ctx, user.ID, storage.IdeaFilter{Page: q.page(), Category: q.Category, Priority: q.Priority})
}

func GetIdea(ctx context.Context, repo storage.IdeaRepository, user *internal.User, id string) (*internal.Idea, error) {
	return repo.GetIdea(ctx, user.ID, id)
}

func UpdateIdea(ctx context.Context, repo storage.IdeaRepository, user *internal.User, id string, patch *IdeaPatch) (*internal.Idea, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	idea, err := repo.GetIdea(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(idea)
	ts := now()
	idea.UpdatedAt = &ts
	if err := repo.UpdateIdea(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func DeleteIdea(ctx context.Context, repo storage.IdeaRepository, user *internal.User, id string) error {
	return repo.DeleteIdea(ctx, user.ID, id)
}

// Brainstorm is stateless; nothing is persisted.
func Brainstorm(ctx context.Context, assistant *ai.Assistant, req *BrainstormRequest) (*BrainstormResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return &BrainstormResult{Suggestions: assistant.BrainstormIdea(ctx, req.Content, req.Category)}, nil
}
