// Package repository loads tasks and projects from a document store using
// the predicate sets built by package query.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/sadopc/taskpulse/internal/analytics"
	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/docstore"
	"github.com/sadopc/taskpulse/internal/query"
	"github.com/sadopc/taskpulse/internal/task"
)

const (
	DefaultDatabase           = "taskpulse"
	DefaultTasksCollection    = "tasks"
	DefaultProjectsCollection = "projects"
)

// Options names the store locations. Empty fields take the defaults.
type Options struct {
	Database           string
	TasksCollection    string
	ProjectsCollection string
	Logger             zerolog.Logger
}

type Repository struct {
	store    docstore.Store
	clock    calendar.Clock
	db       string
	tasks    string
	projects string
	log      zerolog.Logger
}

var _ analytics.Source = (*Repository)(nil)

func New(store docstore.Store, clock calendar.Clock, opts Options) *Repository {
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.TasksCollection == "" {
		opts.TasksCollection = DefaultTasksCollection
	}
	if opts.ProjectsCollection == "" {
		opts.ProjectsCollection = DefaultProjectsCollection
	}
	return &Repository{
		store:    store,
		clock:    clock,
		db:       opts.Database,
		tasks:    opts.TasksCollection,
		projects: opts.ProjectsCollection,
		log:      opts.Logger,
	}
}

// QueryTasks runs a task predicate set and decodes the matches.
func (r *Repository) QueryTasks(ctx context.Context, set query.Set) ([]task.Task, error) {
	list, err := r.store.ListDocuments(ctx, r.db, r.tasks, set)
	if err != nil {
		return nil, upstream("list tasks", err)
	}
	return decodeTasks(list.Documents)
}

// CountTasks runs a counting set and returns the store's total.
func (r *Repository) CountTasks(ctx context.Context, set query.Set) (int, error) {
	list, err := r.store.ListDocuments(ctx, r.db, r.tasks, set)
	if err != nil {
		return 0, upstream("count tasks", err)
	}
	return list.Total, nil
}

// ListView lists a named task view as of the repository clock.
func (r *Repository) ListView(ctx context.Context, v query.View, userID string) ([]task.Task, error) {
	set, err := query.ForView(v, userID, r.clock.Now())
	if err != nil {
		return nil, err
	}
	return r.QueryTasks(ctx, set)
}

func (r *Repository) CountView(ctx context.Context, v query.View, userID string) (int, error) {
	return r.countViewAt(ctx, v, userID, r.clock.Now())
}

func (r *Repository) countViewAt(ctx context.Context, v query.View, userID string, now time.Time) (int, error) {
	set, err := query.CountForView(v, userID, now)
	if err != nil {
		return 0, err
	}
	return r.CountTasks(ctx, set)
}

// SearchTasks lists tasks whose content contains term. An empty term lists
// everything.
func (r *Repository) SearchTasks(ctx context.Context, userID, term string) ([]task.Task, error) {
	set, err := query.SearchTasks(userID, term)
	if err != nil {
		return nil, err
	}
	return r.QueryTasks(ctx, set)
}

// FindProjects lists the user's projects filtered by opts.
func (r *Repository) FindProjects(ctx context.Context, userID string, opts query.ProjectListOptions) ([]task.Project, error) {
	set, err := query.UserProjects(userID, opts)
	if err != nil {
		return nil, err
	}
	list, err := r.store.ListDocuments(ctx, r.db, r.projects, set)
	if err != nil {
		return nil, upstream("list projects", err)
	}
	out := make([]task.Project, 0, len(list.Documents))
	for _, d := range list.Documents {
		out = append(out, decodeProject(d))
	}
	return out, nil
}

// Dashboard sources.

func (r *Repository) TaskCounts(ctx context.Context, userID string, now time.Time) (analytics.Counts, error) {
	var c analytics.Counts
	for _, q := range []struct {
		view query.View
		dst  *int
	}{
		{query.ViewAll, &c.Total},
		{query.ViewCompleted, &c.Completed},
		{query.ViewPending, &c.Pending},
		{query.ViewOverdue, &c.Overdue},
	} {
		n, err := r.countViewAt(ctx, q.view, userID, now)
		if err != nil {
			return analytics.Counts{}, err
		}
		*q.dst = n
	}
	return c, nil
}

func (r *Repository) ListTasks(ctx context.Context, userID string) ([]task.Task, error) {
	set, err := query.AllTasks(userID)
	if err != nil {
		return nil, err
	}
	return r.QueryTasks(ctx, set)
}

func (r *Repository) ListProjects(ctx context.Context, userID string) ([]task.Project, error) {
	return r.FindProjects(ctx, userID, query.ProjectListOptions{})
}

// ListProjectsWithTasks returns the user's projects with Tasks populated.
func (r *Repository) ListProjectsWithTasks(ctx context.Context, userID string) ([]task.Project, error) {
	projects, err := r.ListProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := r.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	byProject := make(map[string][]task.Task)
	for _, t := range tasks {
		if t.ProjectID != nil {
			byProject[*t.ProjectID] = append(byProject[*t.ProjectID], t)
		}
	}
	for i := range projects {
		projects[i].Tasks = byProject[projects[i].ID]
	}
	return projects, nil
}

func (r *Repository) ListCompletedTasks(ctx context.Context, userID string) ([]task.Task, error) {
	set, err := query.CompletedTasks(userID)
	if err != nil {
		return nil, err
	}
	return r.QueryTasks(ctx, set)
}

// Writes.

// NewTask is the input to CreateTask.
type NewTask struct {
	UserID    string
	Content   string
	DueDate   *time.Time
	ProjectID *string
}

func (n NewTask) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("userId", n.UserID, required),
		criterio.Run("content", n.Content, required),
	)
}

// NewProject is the input to CreateProject.
type NewProject struct {
	UserID    string
	Name      string
	ColorName string
	ColorHex  string
}

func (n NewProject) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("userId", n.UserID, required),
		criterio.Run("name", n.Name, required),
	)
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func (r *Repository) CreateTask(ctx context.Context, in NewTask) (task.Task, error) {
	if err := in.Validate(); err != nil {
		return task.Task{}, err
	}
	if in.ProjectID != nil && *in.ProjectID != "" {
		if _, err := r.ownedProject(ctx, in.UserID, *in.ProjectID); err != nil {
			return task.Task{}, err
		}
	}
	doc, err := r.store.CreateDocument(ctx, r.db, r.tasks, "", map[string]any{
		"userId":    in.UserID,
		"content":   strings.TrimSpace(in.Content),
		"completed": false,
		"dueDate":   timeOrNil(in.DueDate),
		"projectId": strOrNil(in.ProjectID),
	})
	if err != nil {
		return task.Task{}, upstream("create task", err)
	}
	r.log.Debug().Str("task", doc.ID).Msg("task created")
	return decodeTask(doc)
}

func (r *Repository) CreateProject(ctx context.Context, in NewProject) (task.Project, error) {
	if err := in.Validate(); err != nil {
		return task.Project{}, err
	}
	doc, err := r.store.CreateDocument(ctx, r.db, r.projects, "", map[string]any{
		"userId":    in.UserID,
		"name":      strings.TrimSpace(in.Name),
		"colorName": in.ColorName,
		"colorHex":  in.ColorHex,
	})
	if err != nil {
		return task.Project{}, upstream("create project", err)
	}
	r.log.Debug().Str("project", doc.ID).Msg("project created")
	return decodeProject(doc), nil
}

// CompleteTask marks one of the user's tasks as done.
func (r *Repository) CompleteTask(ctx context.Context, userID, id string) (task.Task, error) {
	if _, err := r.ownedTask(ctx, userID, id); err != nil {
		return task.Task{}, err
	}
	doc, err := r.store.UpdateDocument(ctx, r.db, r.tasks, id, map[string]any{"completed": true})
	if err != nil {
		return task.Task{}, upstream("complete task", err)
	}
	return decodeTask(doc)
}

func (r *Repository) DeleteTask(ctx context.Context, userID, id string) error {
	if _, err := r.ownedTask(ctx, userID, id); err != nil {
		return err
	}
	if err := r.store.DeleteDocument(ctx, r.db, r.tasks, id); err != nil {
		return upstream("delete task", err)
	}
	return nil
}

// ownedTask fetches a task and hides tasks of other users behind
// ErrNotFound.
func (r *Repository) ownedTask(ctx context.Context, userID, id string) (docstore.Document, error) {
	doc, err := r.store.GetDocument(ctx, r.db, r.tasks, id)
	if err != nil {
		return docstore.Document{}, upstream("get task", err)
	}
	if str(doc.Data["userId"]) != userID {
		return docstore.Document{}, upstream("get task", fmt.Errorf("task %s: %w", id, docstore.ErrNotFound))
	}
	return doc, nil
}

func (r *Repository) ownedProject(ctx context.Context, userID, id string) (docstore.Document, error) {
	doc, err := r.store.GetDocument(ctx, r.db, r.projects, id)
	if err != nil {
		return docstore.Document{}, upstream("get project", err)
	}
	if str(doc.Data["userId"]) != userID {
		return docstore.Document{}, upstream("get project", fmt.Errorf("project %s: %w", id, docstore.ErrNotFound))
	}
	return doc, nil
}
