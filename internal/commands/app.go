package commands

import (
	"github.com/sadopc/taskpulse/internal/analytics"
	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/config"
	"github.com/sadopc/taskpulse/internal/docstore"
	"github.com/sadopc/taskpulse/internal/logging"
	"github.com/sadopc/taskpulse/internal/repository"
)

// App holds the services commands run against. main allocates it up front
// and fills it in the Before hook.
type App struct {
	Config    *config.Config
	Clock     calendar.Clock
	Repo      *repository.Repository
	Analytics *analytics.Service
}

// NewApp wires the repository and analytics service over store.
func NewApp(cfg *config.Config, store docstore.Store, clock calendar.Clock) *App {
	opts := cfg.RepositoryOptions()
	opts.Logger = logging.Component("repository")

	repo := repository.New(store, clock, opts)
	return &App{
		Config:    cfg,
		Clock:     clock,
		Repo:      repo,
		Analytics: analytics.NewService(repo, clock, cfg.AnalyticsPolicy(), logging.Component("analytics")),
	}
}
