package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
)

func sleepLogs(n int) []internal.SleepLog {
	base := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	out := make([]internal.SleepLog, n)
	for i := range out {
		start := base.AddDate(0, 0, -i)
		out[i] = internal.SleepLog{SleepTime: start, WakeTime: start.Add(7 * time.Hour), Quality: 3}
	}
	return out
}

func TestGoalInsight(t *testing.T) {
	assert.Nil(t, GoalInsight(nil))

	got := GoalInsight([]internal.Goal{
		{Status: internal.GoalStatusInProgress, Progress: 40},
		{Status: internal.GoalStatusCompleted, Progress: 100},
	})
	require.NotNil(t, got)
	assert.Equal(t, "You have 1 active goals and 1 completed. Average progress: 70%.", *got)
}

func TestDreamInsight(t *testing.T) {
	assert.Nil(t, DreamInsight(nil))
	assert.Nil(t, DreamInsight([]internal.Dream{{Mood: 4}}), "no tags means no dream insight")

	got := DreamInsight([]internal.Dream{
		{Mood: 4, Tags: []string{"water", "flying", "water"}},
		{Mood: 3, Tags: []string{"falling", "chase", "flying", "house", "teeth"}},
	})
	require.NotNil(t, got)
	assert.Equal(t, "Your recent dreams feature themes of: water, flying, falling, chase, house. Average dream mood: 3.5/5.", *got)
}

func TestOverallInsight(t *testing.T) {
	assert.Equal(t, "Start logging to get personalized insights!", OverallInsight(0, 0, 0))
	assert.Equal(t, "Your journey includes: 2 dreams recorded, 4 sleep logs.", OverallInsight(2, 0, 4))
	assert.Equal(t, "Your journey includes: 1 dreams recorded, 1 goals tracked, 1 sleep logs.", OverallInsight(1, 1, 1))
}

func TestAggregate_SleepThreshold(t *testing.T) {
	gen := &stubGenerator{available: true, reply: "Keep a steady bedtime."}
	assistant := ai.NewAssistant(gen, time.Second, internal.NewNopLogger())
	ctx := context.Background()

	two := Aggregate(ctx, assistant, nil, nil, sleepLogs(2))
	assert.Nil(t, two.SleepInsights)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, "Your journey includes: 2 sleep logs.", two.OverallInsights)

	three := Aggregate(ctx, assistant, nil, nil, sleepLogs(3))
	require.NotNil(t, three.SleepInsights)
	assert.Equal(t, "Keep a steady bedtime.", *three.SleepInsights)
	assert.Equal(t, 1, gen.calls)
}

func TestAggregate_DeterministicOnFallback(t *testing.T) {
	dreams := []internal.Dream{{Mood: 2, Tags: []string{"fog"}}}
	goals := []internal.Goal{{Status: internal.GoalStatusPaused, Progress: 10}}
	logs := sleepLogs(4)

	a := Aggregate(context.Background(), offlineAssistant(), dreams, goals, logs)
	b := Aggregate(context.Background(), offlineAssistant(), dreams, goals, logs)
	assert.Equal(t, a, b)
	require.NotNil(t, a.SleepInsights)
	assert.Equal(t, ai.SleepFallback, *a.SleepInsights)
}

func TestBuildInsights(t *testing.T) {
	repos := setupRepos(t)
	user := testUser("u1")
	ctx := context.Background()

	empty, err := BuildInsights(ctx, repos, offlineAssistant(), user)
	require.NoError(t, err)
	assert.Nil(t, empty.DreamInsights)
	assert.Nil(t, empty.GoalInsights)
	assert.Nil(t, empty.SleepInsights)
	assert.Equal(t, "Start logging to get personalized insights!", empty.OverallInsights)

	a, err := CreateGoal(ctx, repos.Goals, user, &GoalRequest{Title: "a"})
	require.NoError(t, err)
	b, err := CreateGoal(ctx, repos.Goals, user, &GoalRequest{Title: "b"})
	require.NoError(t, err)
	inProgress, completed := internal.GoalStatusInProgress, internal.GoalStatusCompleted
	_, err = UpdateGoal(ctx, repos.Goals, user, a.ID, &GoalPatch{Status: &inProgress, Progress: intPtr(40)})
	require.NoError(t, err)
	_, err = UpdateGoal(ctx, repos.Goals, user, b.ID, &GoalPatch{Status: &completed, Progress: intPtr(100)})
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		date := time.Date(2024, 2, 1+i, 0, 0, 0, 0, time.UTC)
		_, err := CreateDream(ctx, repos.Dreams, user, &DreamRequest{Title: "t", Content: "c", Mood: intPtr(4), DreamDate: &date})
		require.NoError(t, err)
	}
	// a goal belonging to someone else must not be counted
	_, err = CreateGoal(ctx, repos.Goals, testUser("u2"), &GoalRequest{Title: "other"})
	require.NoError(t, err)

	got, err := BuildInsights(ctx, repos, offlineAssistant(), user)
	require.NoError(t, err)
	require.NotNil(t, got.GoalInsights)
	assert.Equal(t, "You have 1 active goals and 1 completed. Average progress: 70%.", *got.GoalInsights)
	assert.Nil(t, got.DreamInsights)
	assert.Equal(t, "Your journey includes: 10 dreams recorded, 2 goals tracked.", got.OverallInsights)
}

func TestStatus(t *testing.T) {
	assert.False(t, Status(offlineAssistant()).Available)
	online := ai.NewAssistant(&stubGenerator{available: true}, time.Second, internal.NewNopLogger())
	assert.Equal(t, AIStatus{Available: true, Message: "AI features are available"}, Status(online))
}
