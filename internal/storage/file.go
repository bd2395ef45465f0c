package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/yourname/dreamcatcher/internal"
)

// table is one JSON-backed collection. Rows are never mutated in place:
// writes swap in a fresh copy, so a snapshot of pointers is safe to encode
// after the lock is released.
type table[T any] struct {
	path  string
	rows  map[string]*T
	id    func(*T) string
	dirty chan struct{}
}

func newTable[T any](path string, id func(*T) string) *table[T] {
	return &table[T]{
		path:  path,
		rows:  make(map[string]*T),
		id:    id,
		dirty: make(chan struct{}, 1),
	}
}

func (t *table[T]) load() error {
	file, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var items []*T
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for _, it := range items {
		t.rows[t.id(it)] = it
	}
	return nil
}

func (t *table[T]) snapshot() []*T {
	out := make([]*T, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return t.id(out[i]) < t.id(out[j]) })
	return out
}

func (t *table[T]) markDirty() {
	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

type FileStorage struct {
	users        *table[internal.User]
	dreams       *table[internal.Dream]
	goals        *table[internal.Goal]
	ideas        *table[internal.Idea]
	sleepLogs    *table[internal.SleepLog]
	mu           sync.RWMutex
	shutdownChan chan struct{}
	saveDelay    time.Duration
	workers      sync.WaitGroup
	closeOnce    sync.Once
	logger       internal.Logger
}

func NewFileStorage(dataDir string, logger internal.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Errorf("storage: failed to create data dir: %v", err)
		return nil, err
	}
	s := &FileStorage{
		users:        newTable(filepath.Join(dataDir, "users.json"), func(u *internal.User) string { return u.ID }),
		dreams:       newTable(filepath.Join(dataDir, "dreams.json"), func(d *internal.Dream) string { return d.ID }),
		goals:        newTable(filepath.Join(dataDir, "goals.json"), func(g *internal.Goal) string { return g.ID }),
		ideas:        newTable(filepath.Join(dataDir, "ideas.json"), func(i *internal.Idea) string { return i.ID }),
		sleepLogs:    newTable(filepath.Join(dataDir, "sleep_logs.json"), func(l *internal.SleepLog) string { return l.ID }),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	loaders := map[string]func() error{
		"users":      s.users.load,
		"dreams":     s.dreams.load,
		"goals":      s.goals.load,
		"ideas":      s.ideas.load,
		"sleep logs": s.sleepLogs.load,
	}
	for name, load := range loaders {
		if err := load(); err != nil {
			logger.Errorf("storage: failed to load %s: %v", name, err)
			return nil, err
		}
	}

	s.startWorker("users", s.users.dirty, func() error { return saveTable(s, s.users) })
	s.startWorker("dreams", s.dreams.dirty, func() error { return saveTable(s, s.dreams) })
	s.startWorker("goals", s.goals.dirty, func() error { return saveTable(s, s.goals) })
	s.startWorker("ideas", s.ideas.dirty, func() error { return saveTable(s, s.ideas) })
	s.startWorker("sleep logs", s.sleepLogs.dirty, func() error { return saveTable(s, s.sleepLogs) })

	return s, nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func saveTable[T any](s *FileStorage, t *table[T]) error {
	s.mu.RLock()
	rows := t.snapshot()
	s.mu.RUnlock()
	return atomicWriteFileJSON(t.path, rows)
}

// startWorker batches saves for one collection so bursts of writes hit the
// disk once per saveDelay.
func (s *FileStorage) startWorker(name string, dirty <-chan struct{}, save func() error) {
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		timer := time.NewTimer(s.saveDelay)
		defer timer.Stop()

		for {
			select {
			case <-dirty:
				timer.Reset(s.saveDelay)
			case <-timer.C:
				if err := save(); err != nil {
					s.logger.Errorf("storage: error saving %s: %v", name, err)
				}
			case <-s.shutdownChan:
				return
			}
		}
	}()
}

// Close stops the workers and flushes every collection synchronously.
func (s *FileStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.shutdownChan)
		s.workers.Wait()
		err = errors.Join(
			saveTable(s, s.users),
			saveTable(s, s.dreams),
			saveTable(s, s.goals),
			saveTable(s, s.ideas),
			saveTable(s, s.sleepLogs),
		)
	})
	return err
}

// --- UserRepository ---
func (s *FileStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users.rows {
		if u.Email == user.Email {
			return internal.ErrConflict
		}
	}
	c := *user
	s.users.rows[c.ID] = &c
	s.users.markDirty()
	return nil
}

func (s *FileStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.rows {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, internal.ErrNotFound
}

func (s *FileStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.rows[id]
	if !ok {
		return nil, internal.ErrNotFound
	}
	c := *u
	return &c, nil
}

// --- DreamRepository ---
func cloneDream(d *internal.Dream) *internal.Dream {
	c := *d
	c.Tags = slices.Clone(d.Tags)
	return &c
}

func (s *FileStorage) CreateDream(ctx context.Context, dream *internal.Dream) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dreams.rows[dream.ID] = cloneDream(dream)
	s.dreams.markDirty()
	return nil
}

func (s *FileStorage) ListDreams(ctx context.Context, userID string, f DreamFilter) ([]internal.Dream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []internal.Dream{}
	for _, d := range s.dreams.rows {
		if d.UserID != userID {
			continue
		}
		if f.Mood != nil && d.Mood != *f.Mood {
			continue
		}
		out = append(out, *cloneDream(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DreamDate.Equal(out[j].DreamDate) {
			return out[i].DreamDate.After(out[j].DreamDate)
		}
		return out[i].ID < out[j].ID
	})
	return window(out, f.Page), nil
}

func (s *FileStorage) GetDream(ctx context.Context, userID, id string) (*internal.Dream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dreams.rows[id]
	if !ok || d.UserID != userID {
		return nil, internal.ErrNotFound
	}
	return cloneDream(d), nil
}

func (s *FileStorage) UpdateDream(ctx context.Context, dream *internal.Dream) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.dreams.rows[dream.ID]
	if !ok || existing.UserID != dream.UserID {
		return internal.ErrNotFound
	}
	s.dreams.rows[dream.ID] = cloneDream(dream)
	s.dreams.markDirty()
	return nil
}

// DeleteDream also detaches the dream from any sleep log pointing at it.
func (s *FileStorage) DeleteDream(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dreams.rows[id]
	if !ok || d.UserID != userID {
		return internal.ErrNotFound
	}
	delete(s.dreams.rows, id)
	s.dreams.markDirty()

	for key, l := range s.sleepLogs.rows {
		if l.DreamID != nil && *l.DreamID == id {
			c := *l
			c.DreamID = nil
			s.sleepLogs.rows[key] = &c
			s.sleepLogs.markDirty()
		}
	}
	return nil
}

// --- GoalRepository ---
func cloneGoal(g *internal.Goal) *internal.Goal {
	c := *g
	c.Milestones = slices.Clone(g.Milestones)
	return &c
}

func (s *FileStorage) CreateGoal(ctx context.Context, goal *internal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals.rows[goal.ID] = cloneGoal(goal)
	s.goals.markDirty()
	return nil
}

func (s *FileStorage) ListGoals(ctx context.Context, userID string, f GoalFilter) ([]internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []internal.Goal{}
	for _, g := range s.goals.rows {
		if g.UserID != userID {
			continue
		}
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		out = append(out, *cloneGoal(g))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return window(out, f.Page), nil
}

func (s *FileStorage) GetGoal(ctx context.Context, userID, id string) (*internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals.rows[id]
	if !ok || g.UserID != userID {
		return nil, internal.ErrNotFound
	}
	return cloneGoal(g), nil
}

func (s *FileStorage) UpdateGoal(ctx context.Context, goal *internal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.goals.rows[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return internal.ErrNotFound
	}
	s.goals.rows[goal.ID] = cloneGoal(goal)
	s.goals.markDirty()
	return nil
}

func (s *FileStorage) DeleteGoal(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals.rows[id]
	if !ok || g.UserID != userID {
		return internal.ErrNotFound
	}
	delete(s.goals.rows, id)
	s.goals.markDirty()
	return nil
}

// --- IdeaRepository ---
func cloneIdea(i *internal.Idea) *internal.Idea {
	c := *i
	c.Tags = slices.Clone(i.Tags)
	return &c
}

func (s *FileStorage) CreateIdea(ctx context.Context, idea *internal.Idea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ideas.rows[idea.ID] = cloneIdea(idea)
	s.ideas.markDirty()
	return nil
}

func (s *FileStorage) ListIdeas(ctx context.Context, userID string, f IdeaFilter) ([]internal.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []internal.Idea{}
	for _, i := range s.ideas.rows {
		if i.UserID != userID {
			continue
		}
		if f.Category != "" && (i.Category == nil || *i.Category != f.Category) {
			continue
		}
		if f.Priority != nil && i.Priority != *f.Priority {
			continue
		}
		out = append(out, *cloneIdea(i))
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return window(out, f.Page), nil
}

func (s *FileStorage) GetIdea(ctx context.Context, userID, id string) (*internal.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.ideas.rows[id]
	if !ok || i.UserID != userID {
		return nil, internal.ErrNotFound
	}
	return cloneIdea(i), nil
}

func (s *FileStorage) UpdateIdea(ctx context.Context, idea *internal.Idea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.ideas.rows[idea.ID]
	if !ok || existing.UserID != idea.UserID {
		return internal.ErrNotFound
	}
	s.ideas.rows[idea.ID] = cloneIdea(idea)
	s.ideas.markDirty()
	return nil
}

func (s *FileStorage) DeleteIdea(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.ideas.rows[id]
	if !ok || i.UserID != userID {
		return internal.ErrNotFound
	}
	delete(s.ideas.rows, id)
	s.ideas.markDirty()
	return nil
}

// --- SleepLogRepository ---
func (s *FileStorage) CreateSleepLog(ctx context.Context, log *internal.SleepLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *log
	s.sleepLogs.rows[c.ID] = &c
	s.sleepLogs.markDirty()
	return nil
}

func (s *FileStorage) ListSleepLogs(ctx context.Context, userID string, f SleepLogFilter) ([]internal.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []internal.SleepLog{}
	for _, l := range s.sleepLogs.rows {
		if l.UserID != userID {
			continue
		}
		if f.Quality != nil && l.Quality != *f.Quality {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SleepTime.Equal(out[j].SleepTime) {
			return out[i].SleepTime.After(out[j].SleepTime)
		}
		return out[i].ID < out[j].ID
	})
	return window(out, f.Page), nil
}

func (s *FileStorage) GetSleepLog(ctx context.Context, userID, id string) (*internal.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.sleepLogs.rows[id]
	if !ok || l.UserID != userID {
		return nil, internal.ErrNotFound
	}
	c := *l
	return &c, nil
}

func (s *FileStorage) UpdateSleepLog(ctx context.Context, log *internal.SleepLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sleepLogs.rows[log.ID]
	if !ok || existing.UserID != log.UserID {
		return internal.ErrNotFound
	}
	c := *log
	s.sleepLogs.rows[c.ID] = &c
	s.sleepLogs.markDirty()
	return nil
}

func (s *FileStorage) DeleteSleepLog(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sleepLogs.rows[id]
	if !ok || l.UserID != userID {
		return internal.ErrNotFound
	}
	delete(s.sleepLogs.rows, id)
	s.sleepLogs.markDirty()
	return nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ DreamRepository = (*FileStorage)(nil)
var _ GoalRepository = (*FileStorage)(nil)
var _ IdeaRepository = (*FileStorage)(nil)
var _ SleepLogRepository = (*FileStorage)(nil)
