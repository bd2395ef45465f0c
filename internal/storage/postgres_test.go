package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/dreamcatcher/internal"
)

func TestPostgresIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}
	logger := internal.NewNopLogger()
	require.NoError(t, Migrate(dsn, logger))

	ctx := context.Background()
	s, err := NewPostgresStorage(ctx, dsn, logger)
	require.NoError(t, err)
	defer s.Close()

	user := &internal.User{ID: uuid.NewString(), Email: uuid.NewString() + "@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.ErrorIs(t, s.CreateUser(ctx, &internal.User{ID: uuid.NewString(), Email: user.Email, PasswordHash: "x", CreatedAt: time.Now()}), internal.ErrConflict)

	dream := &internal.Dream{ID: uuid.NewString(), UserID: user.ID, Title: "t", Content: "c", Mood: 3, Tags: []string{"x"}, DreamDate: time.Now(), CreatedAt: time.Now()}
	require.NoError(t, s.CreateDream(ctx, dream))
	_, err = s.GetDream(ctx, uuid.NewString(), dream.ID)
	assert.ErrorIs(t, err, internal.ErrNotFound)

	goal := &internal.Goal{ID: uuid.NewString(), UserID: user.ID, Title: "g", Category: "health", Status: "in_progress",
		Milestones: []internal.Milestone{{Title: "m1"}}, CreatedAt: time.Now()}
	require.NoError(t, s.CreateGoal(ctx, goal))
	got, err := s.GetGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Milestones, got.Milestones)

	goals, err := s.ListGoals(ctx, user.ID, GoalFilter{Status: "in_progress", Page: Page{Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	assert.ErrorIs(t, s.DeleteGoal(ctx, uuid.NewString(), goal.ID), internal.ErrNotFound)
	require.NoError(t, s.DeleteGoal(ctx, user.ID, goal.ID))
}
