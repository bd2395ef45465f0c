package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/dreamcatcher/internal"
)

func setupFileStorage(t *testing.T) (*FileStorage, string) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir, internal.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func intPtr(i int) *int { return &i }

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, _ := setupFileStorage(t)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &internal.User{ID: "u1", Email: "a@example.com"}))
	err := s.CreateUser(ctx, &internal.User{ID: "u2", Email: "a@example.com"})
	assert.ErrorIs(t, err, internal.ErrConflict)

	u, err := s.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestDreams_OwnershipScoping(t *testing.T) {
	s, _ := setupFileStorage(t)
	ctx := context.Background()
	d := &internal.Dream{ID: "d1", UserID: "u1", Title: "Sea", Content: "waves", Mood: 4, Tags: []string{"water"}, DreamDate: time.Now()}
	require.NoError(t, s.CreateDream(ctx, d))

	_, err := s.GetDream(ctx, "u2", "d1")
	assert.ErrorIs(t, err, internal.ErrNotFound)

	stolen := *d
	stolen.UserID = "u2"
	assert.ErrorIs(t, s.UpdateDream(ctx, &stolen), internal.ErrNotFound)
	assert.ErrorIs(t, s.DeleteDream(ctx, "u2", "d1"), internal.ErrNotFound)

	list, err := s.ListDreams(ctx, "u2", DreamFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetDream(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.Equal(t, "Sea", got.Title)
}

func TestDreams_StoredCopyIsIsolated(t *testing.T) {
	s, _ := setupFileStorage(t)
	ctx := context.Background()
	d := &internal.Dream{ID: "d1", UserID: "u1", Tags: []string{"a"}, DreamDate: time.Now()}
	require.NoError(t, s.CreateDream(ctx, d))
	d.Tags[0] = "mutated"

	got, err := s.GetDream(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Tags)
}

func TestListDreams_FilterOrderAndPage(t *testing.T) {
	s, _ := setupFileStorage(t)
	ctx := context.Background()
	now := time.Now()
	for i, mood := range []int{3, 5, 3, 3} {
		require.NoError(t, s.CreateDream(ctx, &internal.Dream{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			Mood:      mood,
			DreamDate: now.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := s.ListDreams(ctx, "u1", DreamFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "d", all[0].ID)
	assert.Equal(t, "a", all[3].ID)

	threes, err := s.ListDreams(ctx, "u1", DreamFilter{Mood: intPtr(3)})
	require.NoError(t, err)
	assert.Len(t, threes, 3)

	page, err := s.ListDreams(ctx, "u1", DreamFilter{Page: Page{Skip: 1, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID)
	assert.Equal(t, "b", page[1].ID)

	past, err := s.ListDreams(ctx, "u1", DreamFilter{Page: Page{Skip: 10, Limit: 2}})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestDeleteDream_DetachesSleepLogs(t *testing.T) {
	s, _ := setupFileStorage(t)
	ctx := context.Background()
	require.NoError(t, s.CreateDream(ctx, &internal.Dream{ID: "d1", UserID: "u1", DreamDate: time.Now()}))
	dreamID := "d1"
	require.NoError(t, s.CreateSleepLog(ctx, &internal.SleepLog{ID: "s1", UserID: "u1", DreamID: &dreamID, SleepTime: time.Now()}))

	require.NoError(t, s.DeleteDream(ctx, "u1", "d1"))
	l, err := s.GetSleepLog(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Nil(t, l.DreamID)
}

func TestGoalsAndIdeas_Filters(t *testing.T) {
	s, _ := setupFileStorage(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.CreateGoal(ctx, &internal.Goal{ID: "g1", UserID: "u1", Category: "health", Status: "in_progress", CreatedAt: now}))
	require.NoError(t, s.CreateGoal(ctx, &internal.Goal{ID: "g2", UserID: "u1", Category: "career", Status: "in_progress", CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, s.CreateGoal(ctx, &internal.Goal{ID: "g3", UserID: "u1", Category: "health", Status: "completed", CreatedAt: now.Add(2 * time.Minute)}))

	health, err := s.ListGoals(ctx, "u1", GoalFilter{Category: "health"})
	require.NoError(t, err)
	require.Len(t, health, 2)
	assert.Equal(t, "g3", health[0].ID)

	active, err := s.ListGoals(ctx, "u1", GoalFilter{Status: "in_progress", Category: "health"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "g1", active[0].ID)

	work := "work"
	require.NoError(t, s.CreateIdea(ctx, &internal.Idea{ID: "i1", UserID: "u1", Category: &work, Priority: 3, CreatedAt: now}))
	require.NoError(t, s.CreateIdea(ctx, &internal.Idea{ID: "i2", UserID: "u1", Priority: 3, CreatedAt: now}))

	byCat, err := s.ListIdeas(ctx, "u1", IdeaFilter{Category: "work"})
	require.NoError(t, err)
	assert.Len(t, byCat, 1)

	byPrio, err := s.ListIdeas(ctx, "u1", IdeaFilter{Priority: intPtr(3)})
	require.NoError(t, err)
	assert.Len(t, byPrio, 2)
}

func TestSleepLogs_UpdateAndDelete(t *testing.T) {
	s, _ := setupFileStorage(t)
	ctx := context.Background()
	l := &internal.SleepLog{ID: "s1", UserID: "u1", SleepTime: time.Now().Add(-8 * time.Hour), WakeTime: time.Now(), Quality: 2}
	require.NoError(t, s.CreateSleepLog(ctx, l))

	l.Quality = 5
	require.NoError(t, s.UpdateSleepLog(ctx, l))
	got, err := s.GetSleepLog(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quality)

	good, err := s.ListSleepLogs(ctx, "u1", SleepLogFilter{Quality: intPtr(5)})
	require.NoError(t, err)
	assert.Len(t, good, 1)

	require.NoError(t, s.DeleteSleepLog(ctx, "u1", "s1"))
	assert.ErrorIs(t, s.DeleteSleepLog(ctx, "u1", "s1"), internal.ErrNotFound)
}

func TestClose_FlushesAndReloads(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir, internal.NewNopLogger())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.CreateGoal(ctx, &internal.Goal{
		ID: "g1", UserID: "u1", Title: "Run", Milestones: []internal.Milestone{{Title: "5k", Completed: true}},
	}))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "goals.json"))
	require.NoError(t, err)
	var goals []internal.Goal
	require.NoError(t, json.Unmarshal(raw, &goals))
	require.Len(t, goals, 1)

	reopened, err := NewFileStorage(dir, internal.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()
	g, err := reopened.GetGoal(ctx, "u1", "g1")
	require.NoError(t, err)
	assert.Equal(t, []internal.Milestone{{Title: "5k", Completed: true}}, g.Milestones)
}

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app", migrationURL("postgres://u:p@db:5432/app"))
	assert.Equal(t, "pgx5://db/app", migrationURL("postgresql://db/app"))
	assert.Equal(t, "pgx5://db/app", migrationURL("pgx5://db/app"))
}
