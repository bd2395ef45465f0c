package internal

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Dream struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Mood             int        `json:"mood"` // 1–5 scale
	Tags             []string   `json:"tags"`
	AIInterpretation *string    `json:"ai_interpretation"`
	DreamDate        time.Time  `json:"dream_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

const (
	GoalCategoryPersonal  = "personal"
	GoalCategoryCareer    = "career"
	GoalCategoryHealth    = "health"
	GoalCategoryLearning  = "learning"
	GoalCategoryFinancial = "financial"
	GoalCategoryOther     = "other"
)

const (
	GoalStatusNotStarted = "not_started"
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
	GoalStatusPaused     = "paused"
	GoalStatusCancelled  = "cancelled"
)

var GoalCategories = []string{
	GoalCategoryPersonal,
	GoalCategoryCareer,
	GoalCategoryHealth,
	GoalCategoryLearning,
	GoalCategoryFinancial,
	GoalCategoryOther,
}

var GoalStatuses = []string{
	GoalStatusNotStarted,
	GoalStatusInProgress,
	GoalStatusCompleted,
	GoalStatusPaused,
	GoalStatusCancelled,
}

type Milestone struct {
	Title     string `json:"title" validate:"required"`
	Completed bool   `json:"completed"`
}

type Goal struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Title         string      `json:"title"`
	Description   *string     `json:"description"`
	Category      string      `json:"category"`
	Status        string      `json:"status"`
	Progress      int         `json:"progress"` // 0–100
	TargetDate    *time.Time  `json:"target_date"`
	Milestones    []Milestone `json:"milestones"`
	AISuggestions *string     `json:"ai_suggestions"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at"`
}

type Idea struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	Category  *string    `json:"category"`
	Tags      []string   `json:"tags"`
	Priority  int        `json:"priority"` // 1 low, 2 medium, 3 high
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type SleepLog struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	DreamID   *string    `json:"dream_id"`
	SleepTime time.Time  `json:"sleep_time"`
	WakeTime  time.Time  `json:"wake_time"`
	Quality   int        `json:"quality"` // 1–5 scale
	Notes     *string    `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
