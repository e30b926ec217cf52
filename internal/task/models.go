package task

import "time"

// Task is a single to-do item. A nil DueDate or ProjectID means "not set".
type Task struct {
	ID        string
	UserID    string
	Content   string
	Completed bool
	DueDate   *time.Time
	ProjectID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDue reports whether the task carries a due date.
func (t Task) HasDue() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// Due returns the due date or the zero time.
func (t Task) Due() time.Time {
	if t.DueDate == nil {
		return time.Time{}
	}
	return *t.DueDate
}

// InProject reports whether the task belongs to the project with id.
func (t Task) InProject(id string) bool {
	return t.ProjectID != nil && *t.ProjectID == id
}

// Project groups tasks. Tasks is only populated by fetch paths that join
// them in; ColorHex is passed through untouched.
type Project struct {
	ID        string
	UserID    string
	Name      string
	ColorName string
	ColorHex  string
	Tasks     []Task
	CreatedAt time.Time
}
