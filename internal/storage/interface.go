package storage

import (
	"context"

	"github.com/yourname/dreamcatcher/internal"
)

// Every method taking a userID scopes the query to that owner and returns
// internal.ErrNotFound when the row is absent or owned by someone else.

type Page struct {
	Skip  int
	Limit int
}

type DreamFilter struct {
	Page
	Mood *int
}

type GoalFilter struct {
	Page
	Status   string
	Category string
}

type IdeaFilter struct {
	Page
	Category string
	Priority *int
}

type SleepLogFilter struct {
	Page
	Quality *int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *internal.User) error
	GetUserByEmail(ctx context.Context, email string) (*internal.User, error)
	GetUserByID(ctx context.Context, id string) (*internal.User, error)
}

type DreamRepository interface {
	CreateDream(ctx context.Context, dream *internal.Dream) error
	ListDreams(ctx context.Context, userID string, f DreamFilter) ([]internal.Dream, error)
	GetDream(ctx context.Context, userID, id string) (*internal.Dream, error)
	UpdateDream(ctx context.Context, dream *internal.Dream) error
	DeleteDream(ctx context.Context, userID, id string) error
}

type GoalRepository interface {
	CreateGoal(ctx context.Context, goal *internal.Goal) error
	ListGoals(ctx context.Context, userID string, f GoalFilter) ([]internal.Goal, error)
	GetGoal(ctx context.Context, userID, id string) (*internal.Goal, error)
	UpdateGoal(ctx context.Context, goal *internal.Goal) error
	DeleteGoal(ctx context.Context, userID, id string) error
}

type IdeaRepository interface {
	CreateIdea(ctx context.Context, idea *internal.Idea) error
	ListIdeas(ctx context.Context, userID string, f IdeaFilter) ([]internal.Idea, error)
	GetIdea(ctx context.Context, userID, id string) (*internal.Idea, error)
	UpdateIdea(ctx context.Context, idea *internal.Idea) error
	DeleteIdea(ctx context.Context, userID, id string) error
}

type SleepLogRepository interface {
	CreateSleepLog(ctx context.Context, log *internal.SleepLog) error
	ListSleepLogs(ctx context.Context, userID string, f SleepLogFilter) ([]internal.SleepLog, error)
	GetSleepLog(ctx context.Context, userID, id string) (*internal.SleepLog, error)
	UpdateSleepLog(ctx context.Context, log *internal.SleepLog) error
	DeleteSleepLog(ctx context.Context, userID, id string) error
}

// Repositories bundles one backend's implementations. Close flushes and
// releases the backend.
type Repositories struct {
	Users  UserRepository
	Dreams DreamRepository
	Goals  GoalRepository
	Ideas  IdeaRepository
	Sleep  SleepLogRepository
	Close  func() error
}

// window applies skip/limit to an already filtered, ordered slice.
func window[T any](items []T, p Page) []T {
	if p.Skip >= len(items) {
		return []T{}
	}
	items = items[p.Skip:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}
