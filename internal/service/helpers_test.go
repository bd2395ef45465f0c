package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
	"github.com/yourname/dreamcatcher/internal/storage"
)

type stubGenerator struct {
	available bool
	reply     string
	err       error
	calls     int
}

func (s *stubGenerator) Available() bool { return s.available }

func (s *stubGenerator) Generate(ctx context.Context, req ai.Request) (string, error) {
	s.calls++
	return s.reply, s.err
}

func setupRepos(t *testing.T) *storage.Repositories {
	t.Helper()
	repos, err := storage.NewFileRepositories(t.TempDir(), internal.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func offlineAssistant() *ai.Assistant {
	return ai.NewAssistant(&stubGenerator{}, time.Second, internal.NewNopLogger())
}

func testUser(id string) *internal.User {
	return &internal.User{ID: id, Email: id + "@example.com"}
}

func intPtr(i int) *int              { return &i }
func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func defaultPage() PageQuery { return PageQuery{Skip: 0, Limit: 50} }
