package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
	"github.com/yourname/dreamcatcher/internal/storage"
)

type GoalRequest struct {
	Title       string               `json:"title" validate:"required,max=255"`
	Description *string              `json:"description"`
	Category    string               `json:"category" validate:"omitempty,oneof=personal career health learning financial other"`
	TargetDate  *time.Time           `json:"target_date"`
	Milestones  []internal.Milestone `json:"milestones" validate:"dive"`
}

type GoalPatch struct {
	Title       *string               `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string               `json:"description"`
	Category    *string               `json:"category" validate:"omitempty,oneof=personal career health learning financial other"`
	Status      *string               `json:"status" validate:"omitempty,oneof=not_started in_progress completed paused cancelled"`
	Progress    *int                  `json:"progress" validate:"omitempty,gte=0,lte=100"`
	TargetDate  *time.Time            `json:"target_date"`
	Milestones  *[]internal.Milestone `json:"milestones" validate:"omitempty,dive"`
}

func (p *GoalPatch) Apply(g *internal.Goal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		desc := *p.Description
		g.Description = &desc
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.Progress != nil {
		g.Progress = *p.Progress
	}
	if p.TargetDate != nil {
		td := p.TargetDate.UTC()
		g.TargetDate = &td
	}
	if p.Milestones != nil {
		g.Milestones = append([]internal.Milestone{}, (*p.Milestones)...)
	}
}

type GoalQuery struct {
	PageQuery
	Status   string `form:"status" validate:"omitempty,oneof=not_started in_progress completed paused cancelled"`
	Category string `form:"category" validate:"omitempty,oneof=personal career health learning financial other"`
}

// GoalProgress summarises milestone completion next to the self-reported progress.
type GoalProgress struct {
	Goal                *internal.Goal `json:"goal"`
	MilestonesTotal     int            `json:"milestones_total"`
	MilestonesCompleted int            `json:"milestones_completed"`
	MilestonePercent    float64        `json:"milestone_percent"`
	Overdue             bool           `json:"overdue"`
}

func ValidateGoalRequest(req *GoalRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	return nil
}

func CreateGoal(ctx context.Context, goalRepo storage.GoalRepository, user *internal.User, req *GoalRequest) (*internal.Goal, error) {
	if err := ValidateGoalRequest(req); err != nil {
		return nil, err
	}
	goal := &internal.Goal{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      internal.GoalStatusNotStarted,
		Milestones:  append([]internal.Milestone{}, req.Milestones...),
		CreatedAt:   now(),
	}
	if goal.Category == "" {
		goal.Category = internal.GoalCategoryPersonal
	}
	if req.TargetDate != nil {
		td := req.TargetDate.UTC()
		goal.TargetDate = &td
	}
	if err := goalRepo.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func ListGoals(ctx context.Context, goalRepo storage.GoalRepository, user *internal.User, q *GoalQuery) ([]internal.Goal, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}
	return goalRepo.ListGoals(ctx, user.ID, storage.GoalFilter{Page: q.page(), Status: q.Status, Category: q.Category})
}

func GetGoal(ctx context.Context, goalRepo storage.GoalRepository, user *internal.User, id string) (*internal.Goal, error) {
	return goalRepo.GetGoal(ctx, user.ID, id)
}

func UpdateGoal(ctx context.Context, goalRepo storage.GoalRepository, user *internal.User, id string, patch *GoalPatch) (*internal.Goal, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	goal, err := goalRepo.GetGoal(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(goal)
	ts := now()
	goal.UpdatedAt = &ts
	if err := goalRepo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func DeleteGoal(ctx context.Context, goalRepo storage.GoalRepository, user *internal.User, id string) error {
	return goalRepo.DeleteGoal(ctx, user.ID, id)
}

func SuggestGoal(ctx context.Context, goalRepo storage.GoalRepository, assistant *ai.Assistant, user *internal.User, id string) (*internal.Goal, error) {
	goal, err := goalRepo.GetGoal(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	desc := ""
	if goal.Description != nil {
		desc = *goal.Description
	}
	text := assistant.SuggestGoalSteps(ctx, goal.Title, desc, goal.Category)
	ts := now()
	goal.AISuggestions = &text
	goal.UpdatedAt = &ts
	if err := goalRepo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func CalculateGoalProgress(goal *internal.Goal) GoalProgress {
	done := 0
	for _, m := range goal.Milestones {
		if m.Completed {
			done++
		}
	}
	pct := 0.0
	if len(goal.Milestones) > 0 {
		pct = float64(done) / float64(len(goal.Milestones)) * 100
	}
	overdue := goal.TargetDate != nil &&
		goal.TargetDate.Before(now()) &&
		goal.Status != internal.GoalStatusCompleted &&
		goal.Status != internal.GoalStatusCancelled

	return GoalProgress{
		Goal:                goal,
		MilestonesTotal:     len(goal.Milestones),
		MilestonesCompleted: done,
		MilestonePercent:    pct,
		Overdue:             overdue,
	}
}
