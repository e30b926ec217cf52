// Package task defines the task and project entities and the rules that
// put a task into a status bucket or a due-date display category.
package task

import (
	"time"

	"github.com/sadopc/taskpulse/internal/calendar"
)

// Status is the mutually exclusive bucket a task falls into.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusPending   Status = "pending"
)

// Classify buckets t as seen at now. Completion always wins.
func Classify(t Task, now time.Time) Status {
	if t.Completed {
		return StatusCompleted
	}
	if t.HasDue() && calendar.IsOverdue(t.Due(), now) {
		return StatusOverdue
	}
	return StatusPending
}

// DueCategory drives due-date styling.
type DueCategory string

const (
	DueNone     DueCategory = "none"
	DueOverdue  DueCategory = "overdue"
	DueToday    DueCategory = "due-today"
	DueTomorrow DueCategory = "due-tomorrow"
)

// CategorizeDue picks the display category for a due date. Checks run
// overdue, then today, then tomorrow. A completed task is never shown as
// overdue or due tomorrow, but still shows as due today.
func CategorizeDue(due *time.Time, completed bool, now time.Time) DueCategory {
	if due == nil || due.IsZero() {
		return DueNone
	}
	if !completed && calendar.IsOverdue(*due, now) {
		return DueOverdue
	}
	if calendar.IsDueToday(*due, now) {
		return DueToday
	}
	if !completed && calendar.IsDueTomorrow(*due, now) {
		return DueTomorrow
	}
	return DueNone
}

// Bucket is the listing a task shows up under in the CLI.
type Bucket string

const (
	BucketCompleted Bucket = "completed"
	BucketOverdue   Bucket = "overdue"
	BucketToday     Bucket = "today"
	BucketTomorrow  Bucket = "tomorrow"
	BucketUpcoming  Bucket = "upcoming"
	BucketInbox     Bucket = "inbox"
	BucketSomeday   Bucket = "someday"
)

// BucketOf places t in exactly one listing bucket.
func BucketOf(t Task, now time.Time) Bucket {
	switch {
	case t.Completed:
		return BucketCompleted
	case !t.HasDue():
		if t.ProjectID == nil {
			return BucketInbox
		}
		return BucketSomeday
	case calendar.IsOverdue(t.Due(), now):
		return BucketOverdue
	case calendar.IsDueToday(t.Due(), now):
		return BucketToday
	case calendar.IsDueTomorrow(t.Due(), now):
		return BucketTomorrow
	}
	return BucketUpcoming
}
