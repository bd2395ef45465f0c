package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/dreamcatcher/internal"
)

func night(daysAgo int, hours float64, quality int) *SleepLogRequest {
	start := time.Now().UTC().Add(-time.Duration(daysAgo) * 24 * time.Hour).Truncate(time.Minute)
	return &SleepLogRequest{
		SleepTime: start,
		WakeTime:  start.Add(time.Duration(hours * float64(time.Hour))),
		Quality:   intPtr(quality),
	}
}

func TestCreateSleepLog_DefaultsAndValidation(t *testing.T) {
	repos := setupRepos(t)
	user := testUser("u1")
	ctx := context.Background()

	req := night(1, 8, 4)
	req.Quality = nil
	log, err := CreateSleepLog(ctx, repos.Sleep, repos.Dreams, user, req)
	require.NoError(t, err)
	assert.Equal(t, 3, log.Quality)
	assert.Nil(t, log.DreamID)

	inverted := night(1, 8, 4)
	inverted.WakeTime, inverted.SleepTime = inverted.SleepTime, inverted.WakeTime
	_, err = CreateSleepLog(ctx, repos.Sleep, repos.Dreams, user, inverted)
	assert.True(t, internal.IsValidation(err))

	_, err = CreateSleepLog(ctx, repos.Sleep, repos.Dreams, user, night(1, 8, 6))
	assert.True(t, internal.IsValidation(err))
}

func TestCreateSleepLog_DreamReference(t *testing.T) {
	repos := setupRepos(t)
	owner, other := testUser("owner"), testUser("other")
	ctx := context.Background()

	dream, err := CreateDream(ctx, repos.Dreams, owner, &DreamRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	req := night(1, 7, 3)
	req.DreamID = &dream.ID
	log, err := CreateSleepLog(ctx, repos.Sleep, repos.Dreams, owner, req)
	require.NoError(t, err)
	assert.Equal(t, dream.ID, *log.DreamID)

	_, err = CreateSleepLog(ctx, repos.Sleep, repos.Dreams, other, req)
	var ve *internal.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Dream not found or doesn't belong to you", ve.Message)

	req.DreamID = strPtr("missing")
	_, err = CreateSleepLog(ctx, repos.Sleep, repos.Dreams, owner, req)
	assert.True(t, internal.IsValidation(err))
}

func TestUpdateSleepLog_ChecksMergedTimes(t *testing.T) {
	repos := setupRepos(t)
	user := testUser("u1")
	ctx := context.Background()

	log, err := CreateSleepLog(ctx, repos.Sleep, repos.Dreams, user, night(2, 8, 3))
	require.NoError(t, err)

	tooEarly := log.SleepTime.Add(-time.Hour)
	_, err = UpdateSleepLog(ctx, repos.Sleep, repos.Dreams, user, log.ID, &SleepLogPatch{WakeTime: &tooEarly})
	assert.True(t, internal.IsValidation(err))

	later := log.WakeTime.Add(time.Hour)
	updated, err := UpdateSleepLog(ctx, repos.Sleep, repos.Dreams, user, log.ID, &SleepLogPatch{WakeTime: &later, Notes: strPtr("slept in")})
	require.NoError(t, err)
	assert.True(t, updated.WakeTime.Equal(later))
	assert.Equal(t, "slept in", *updated.Notes)
	assert.Equal(t, 3, updated.Quality)

	_, err = UpdateSleepLog(ctx, repos.Sleep, repos.Dreams, user, log.ID, &SleepLogPatch{DreamID: strPtr("nope")})
	assert.True(t, internal.IsValidation(err))
}

func TestUpdateSleepLog_EmptyDreamIDUnlinks(t *testing.T) {
	repos := setupRepos(t)
	user := testUser("u1")
	ctx := context.Background()

	dream, err := CreateDream(ctx, repos.Dreams, user, &DreamRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	req := night(1, 8, 3)
	req.DreamID = &dream.ID
	log, err := CreateSleepLog(ctx, repos.Sleep, repos.Dreams, user, req)
	require.NoError(t, err)
	require.NotNil(t, log.DreamID)

	updated, err := UpdateSleepLog(ctx, repos.Sleep, repos.Dreams, user, log.ID, &SleepLogPatch{DreamID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.DreamID)

	got, err := GetSleepLog(ctx, repos.Sleep, user, log.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DreamID)

	req = night(2, 8, 3)
	req.DreamID = strPtr("")
	created, err := CreateSleepLog(ctx, repos.Sleep, repos.Dreams, user, req)
	require.NoError(t, err)
	assert.Nil(t, created.DreamID)
}

func TestDeleteDream_DetachesSleepLogs(t *testing.T) {
	repos := setupRepos(t)
	user := testUser("u1")
	ctx := context.Background()

	dream, err := CreateDream(ctx, repos.Dreams, user, &DreamRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	req := night(1, 8, 3)
	req.DreamID = &dream.ID
	log, err := CreateSleepLog(ctx, repos.Sleep, repos.Dreams, user, req)
	require.NoError(t, err)

	require.NoError(t, DeleteDream(ctx, repos.Dreams, user, dream.ID))
	got, err := GetSleepLog(ctx, repos.Sleep, user, log.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DreamID)
}

func TestCalculateSleepStats(t *testing.T) {
	ref := time.Now().UTC()
	logs := []internal.SleepLog{
		{SleepTime: ref.Add(-24 * time.Hour), WakeTime: ref.Add(-16 * time.Hour), Quality: 4},
		{SleepTime: ref.Add(-48 * time.Hour), WakeTime: ref.Add(-42 * time.Hour), Quality: 2},
		{SleepTime: ref.Add(-10 * 24 * time.Hour), WakeTime: ref.Add(-10*24*time.Hour + 9*time.Hour), Quality: 5},
	}
	stats := CalculateSleepStats(logs)
	assert.Equal(t, 2, stats.Nights)
	assert.InDelta(t, 3.0, stats.AverageQuality, 1e-9)
	assert.InDelta(t, 7.0, stats.AverageDurationHours, 1e-9)
	assert.Equal(t, []int{4, 2}, stats.Trend)

	empty := CalculateSleepStats(nil)
	assert.Zero(t, empty.Nights)
	assert.Equal(t, []int{}, empty.Trend)
}
