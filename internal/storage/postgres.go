package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/dreamcatcher/internal"
)

const uniqueViolation = "23505"

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Errorf("failed to ping postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// query accumulates WHERE clauses with positional arguments.
type query struct {
	where []string
	args  []any
}

func (q *query) add(clause string, arg any) {
	q.args = append(q.args, arg)
	q.where = append(q.where, fmt.Sprintf(clause, len(q.args)))
}

func (q *query) build(base, order string, page Page) (string, []any) {
	sql := base + " WHERE " + strings.Join(q.where, " AND ") + " ORDER BY " + order
	args := q.args
	if page.Limit > 0 {
		args = append(args, page.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Skip > 0 {
		args = append(args, page.Skip)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return sql, args
}

func notFoundIfNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return internal.ErrNotFound
	}
	return err
}

func expectOne(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return internal.ErrNotFound
	}
	return nil
}

// --- UserRepository ---
func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return internal.ErrConflict
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) getUser(ctx context.Context, where string, arg any) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, email, name, password_hash, created_at FROM users WHERE `+where+` = $1`, arg)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &u, nil
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	return p.getUser(ctx, "email", email)
}

func (p *PostgresStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	return p.getUser(ctx, "id", id)
}

// --- DreamRepository ---
const dreamColumns = `id, user_id, title, content, mood, tags, ai_interpretation, dream_date, created_at, updated_at`

func scanDream(row pgx.Row) (*internal.Dream, error) {
	var d internal.Dream
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &d.Mood, &d.Tags, &d.AIInterpretation, &d.DreamDate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return &d, nil
}

func (p *PostgresStorage) CreateDream(ctx context.Context, d *internal.Dream) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO dreams (`+dreamColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.UserID, d.Title, d.Content, d.Mood, d.Tags, d.AIInterpretation, d.DreamDate, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert dream: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListDreams(ctx context.Context, userID string, f DreamFilter) ([]internal.Dream, error) {
	q := &query{}
	q.add("user_id = $%d", userID)
	if f.Mood != nil {
		q.add("mood = $%d", *f.Mood)
	}
	sql, args := q.build(`SELECT `+dreamColumns+` FROM dreams`, "dream_date DESC, id", f.Page)
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query dreams: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.Dream{}
	for rows.Next() {
		d, err := scanDream(rows)
		if err != nil {
			p.logger.Errorf("failed to scan dream: %v", err)
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) GetDream(ctx context.Context, userID, id string) (*internal.Dream, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+dreamColumns+` FROM dreams WHERE id = $1 AND user_id = $2`, id, userID)
	d, err := scanDream(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return d, nil
}

func (p *PostgresStorage) UpdateDream(ctx context.Context, d *internal.Dream) error {
	tag, err := p.pool.Exec(ctx, `UPDATE dreams SET title = $3, content = $4, mood = $5, tags = $6, ai_interpretation = $7, dream_date = $8, updated_at = $9 WHERE id = $1 AND user_id = $2`,
		d.ID, d.UserID, d.Title, d.Content, d.Mood, d.Tags, d.AIInterpretation, d.DreamDate, d.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update dream: %v", err)
		return err
	}
	return expectOne(tag)
}

func (p *PostgresStorage) DeleteDream(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM dreams WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete dream: %v", err)
		return err
	}
	return expectOne(tag)
}

// --- GoalRepository ---
const goalColumns = `id, user_id, title, description, category, status, progress, target_date, milestones, ai_suggestions, created_at, updated_at`

func scanGoal(row pgx.Row) (*internal.Goal, error) {
	var g internal.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Status, &g.Progress, &g.TargetDate, &g.Milestones, &g.AISuggestions, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if g.Milestones == nil {
		g.Milestones = []internal.Milestone{}
	}
	return &g, nil
}

func (p *PostgresStorage) CreateGoal(ctx context.Context, g *internal.Goal) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO goals (`+goalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		g.ID, g.UserID, g.Title, g.Description, g.Category, g.Status, g.Progress, g.TargetDate, g.Milestones, g.AISuggestions, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert goal: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListGoals(ctx context.Context, userID string, f GoalFilter) ([]internal.Goal, error) {
	q := &query{}
	q.add("user_id = $%d", userID)
	if f.Status != "" {
		q.add("status = $%d", f.Status)
	}
	if f.Category != "" {
		q.add("category = $%d", f.Category)
	}
	sql, args := q.build(`SELECT `+goalColumns+` FROM goals`, "created_at DESC, id", f.Page)
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query goals: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			p.logger.Errorf("failed to scan goal: %v", err)
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) GetGoal(ctx context.Context, userID, id string) (*internal.Goal, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return g, nil
}

func (p *PostgresStorage) UpdateGoal(ctx context.Context, g *internal.Goal) error {
	tag, err := p.pool.Exec(ctx, `UPDATE goals SET title = $3, description = $4, category = $5, status = $6, progress = $7, target_date = $8, milestones = $9, ai_suggestions = $10, updated_at = $11 WHERE id = $1 AND user_id = $2`,
		g.ID, g.UserID, g.Title, g.Description, g.Category, g.Status, g.Progress, g.TargetDate, g.Milestones, g.AISuggestions, g.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update goal: %v", err)
		return err
	}
	return expectOne(tag)
}

func (p *PostgresStorage) DeleteGoal(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete goal: %v", err)
		return err
	}
	return expectOne(tag)
}

// --- IdeaRepository ---
const ideaColumns = `id, user_id, content, category, tags, priority, created_at, updated_at`

func scanIdea(row pgx.Row) (*internal.Idea, error) {
	var i internal.Idea
	if err := row.Scan(&i.ID, &i.UserID, &i.Content, &i.Category, &i.Tags, &i.Priority, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
	return &i, nil
}

func (p *PostgresStorage) CreateIdea(ctx context.Context, i *internal.Idea) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO ideas (`+ideaColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID, i.UserID, i.Content, i.Category, i.Tags, i.Priority, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert idea: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListIdeas(ctx context.Context, userID string, f IdeaFilter) ([]internal.Idea, error) {
	q := &query{}
	q.add("user_id = $%d", userID)
	if f.Category != "" {
		q.add("category = $%d", f.Category)
	}
	if f.Priority != nil {
		q.add("priority = $%d", *f.Priority)
	}
	sql, args := q.build(`SELECT `+ideaColumns+` FROM ideas`, "created_at DESC, id", f.Page)
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query ideas: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.Idea{}
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			p.logger.Errorf("failed to scan idea: %v", err)
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) GetIdea(ctx context.Context, userID, id string) (*internal.Idea, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = $1 AND user_id = $2`, id, userID)
	i, err := scanIdea(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return i, nil
}

func (p *PostgresStorage) UpdateIdea(ctx context.Context, i *internal.Idea) error {
	tag, err := p.pool.Exec(ctx, `UPDATE ideas SET content = $3, category = $4, tags = $5, priority = $6, updated_at = $7 WHERE id = $1 AND user_id = $2`,
		i.ID, i.UserID, i.Content, i.Category, i.Tags, i.Priority, i.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update idea: %v", err)
		return err
	}
	return expectOne(tag)
}

func (p *PostgresStorage) DeleteIdea(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM ideas WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete idea: %v", err)
		return err
	}
	return expectOne(tag)
}

// --- SleepLogRepository ---
const sleepColumns = `id, user_id, dream_id, sleep_time, wake_time, quality, notes, created_at, updated_at`

func scanSleepLog(row pgx.Row) (*internal.SleepLog, error) {
	var l internal.SleepLog
	if err := row.Scan(&l.ID, &l.UserID, &l.DreamID, &l.SleepTime, &l.WakeTime, &l.Quality, &l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (p *PostgresStorage) CreateSleepLog(ctx context.Context, l *internal.SleepLog) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO sleep_logs (`+sleepColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.UserID, l.DreamID, l.SleepTime, l.WakeTime, l.Quality, l.Notes, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert sleep log: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListSleepLogs(ctx context.Context, userID string, f SleepLogFilter) ([]internal.SleepLog, error) {
	q := &query{}
	q.add("user_id = $%d", userID)
	if f.Quality != nil {
		q.add("quality = $%d", *f.Quality)
	}
	sql, args := q.build(`SELECT `+sleepColumns+` FROM sleep_logs`, "sleep_time DESC, id", f.Page)
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query sleep logs: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.SleepLog{}
	for rows.Next() {
		l, err := scanSleepLog(rows)
		if err != nil {
			p.logger.Errorf("failed to scan sleep log: %v", err)
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) GetSleepLog(ctx context.Context, userID, id string) (*internal.SleepLog, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+sleepColumns+` FROM sleep_logs WHERE id = $1 AND user_id = $2`, id, userID)
	l, err := scanSleepLog(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return l, nil
}

func (p *PostgresStorage) UpdateSleepLog(ctx context.Context, l *internal.SleepLog) error {
	tag, err := p.pool.Exec(ctx, `UPDATE sleep_logs SET dream_id = $3, sleep_time = $4, wake_time = $5, quality = $6, notes = $7, updated_at = $8 WHERE id = $1 AND user_id = $2`,
		l.ID, l.UserID, l.DreamID, l.SleepTime, l.WakeTime, l.Quality, l.Notes, l.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update sleep log: %v", err)
		return err
	}
	return expectOne(tag)
}

func (p *PostgresStorage) DeleteSleepLog(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM sleep_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete sleep log: %v", err)
		return err
	}
	return expectOne(tag)
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ DreamRepository = (*PostgresStorage)(nil)
var _ GoalRepository = (*PostgresStorage)(nil)
var _ IdeaRepository = (*PostgresStorage)(nil)
var _ SleepLogRepository = (*PostgresStorage)(nil)
