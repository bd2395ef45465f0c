package api

import (
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
	"github.com/yourname/dreamcatcher/internal/auth"
	"github.com/yourname/dreamcatcher/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Repos() *storage.Repositories
	UserRepo() storage.UserRepository
	DreamRepo() storage.DreamRepository
	GoalRepo() storage.GoalRepository
	IdeaRepo() storage.IdeaRepository
	SleepRepo() storage.SleepLogRepository
	Assistant() *ai.Assistant
	Tokens() *auth.TokenIssuer
}

// Deps is the process-wide App built once in main.
type Deps struct {
	log       internal.Logger
	repos     *storage.Repositories
	assistant *ai.Assistant
	tokens    *auth.TokenIssuer
}

var _ App = (*Deps)(nil)

func NewApp(logger internal.Logger, repos *storage.Repositories, assistant *ai.Assistant, tokens *auth.TokenIssuer) *Deps {
	return &Deps{log: logger, repos: repos, assistant: assistant, tokens: tokens}
}

func (d *Deps) Logger() internal.Logger               { return d.log }
func (d *Deps) Repos() *storage.Repositories          { return d.repos }
func (d *Deps) UserRepo() storage.UserRepository      { return d.repos.Users }
func (d *Deps) DreamRepo() storage.DreamRepository    { return d.repos.Dreams }
func (d *Deps) GoalRepo() storage.GoalRepository      { return d.repos.Goals }
func (d *Deps) IdeaRepo() storage.IdeaRepository      { return d.repos.Ideas }
func (d *Deps) SleepRepo() storage.SleepLogRepository { return d.repos.Sleep }
func (d *Deps) Assistant() *ai.Assistant              { return d.assistant }
func (d *Deps) Tokens() *auth.TokenIssuer             { return d.tokens }
