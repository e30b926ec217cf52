package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/task"
)

// Source supplies the five independent data sets a dashboard is built
// from. Implementations run their own queries; the service only fans out.
type Source interface {
	TaskCounts(ctx context.Context, userID string, now time.Time) (Counts, error)
	ListTasks(ctx context.Context, userID string) ([]task.Task, error)
	ListProjects(ctx context.Context, userID string) ([]task.Project, error)
	ListProjectsWithTasks(ctx context.Context, userID string) ([]task.Project, error)
	ListCompletedTasks(ctx context.Context, userID string) ([]task.Task, error)
}

// AggregationError is returned when any dashboard fetch fails. Its message
// is safe to show to users; the cause is kept for logs.
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string { return "failed to load analytics" }

func (e *AggregationError) Unwrap() error { return e.Err }

// Service builds dashboards from a Source.
type Service struct {
	source   Source
	clock    calendar.Clock
	pipeline *Pipeline
	log      zerolog.Logger
}

func NewService(source Source, clock calendar.Clock, cfg Config, log zerolog.Logger) *Service {
	return &Service{
		source:   source,
		clock:    clock,
		pipeline: NewPipeline(cfg),
		log:      log,
	}
}

// Pipeline exposes the transforms the service runs.
func (s *Service) Pipeline() *Pipeline { return s.pipeline }

// Dashboard fetches everything concurrently and runs every transform. Any
// fetch failure fails the whole call; partial dashboards are never
// returned.
func (s *Service) Dashboard(ctx context.Context, userID, window string) (*Dashboard, error) {
	now := s.clock.Now()

	var (
		counts             Counts
		tasks, completed   []task.Task
		projects, withTask []task.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.source.TaskCounts(gctx, userID, now)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.source.ListTasks(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.source.ListProjects(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		withTask, err = s.source.ListProjectsWithTasks(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		completed, err = s.source.ListCompletedTasks(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("dashboard fetch failed")
		return nil, &AggregationError{Err: err}
	}

	d := &Dashboard{
		GeneratedAt:       now,
		Window:            window,
		Summary:           SummaryMetrics(counts, window),
		MonthlyCompletion: s.pipeline.MonthlyCompletion(tasks, now),
		Distribution:      s.pipeline.ProjectDistribution(tasks, projects),
		Progress:          s.pipeline.ProjectProgress(withTask),
		Activity:          s.pipeline.WeekdayActivity(completed, now.Location()),
	}

	s.log.Debug().
		Str("user_id", userID).
		Int("tasks", len(tasks)).
		Int("projects", len(projects)).
		Msg("dashboard built")
	return d, nil
}

// IsAggregationError reports whether err came from a failed dashboard.
func IsAggregationError(err error) bool {
	var aerr *AggregationError
	return errors.As(err, &aerr)
}
