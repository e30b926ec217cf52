package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

func strp(s string) *string { return &s }

var (
	yesterday = now.AddDate(0, 0, -1)
	tomorrow  = now.AddDate(0, 0, 1)
	nextWeek  = now.AddDate(0, 0, 7)
)

// ============================================================
// Classify
// ============================================================

func TestClassifyScenario(t *testing.T) {
	tasks := []Task{
		{Completed: false, DueDate: nil},
		{Completed: false, DueDate: at(yesterday)},
		{Completed: true, DueDate: at(yesterday)},
	}
	want := []Status{StatusPending, StatusOverdue, StatusCompleted}

	for i, tk := range tasks {
		assert.Equal(t, want[i], Classify(tk, now), "task %d", i)
	}
}

func TestClassifyCompletedAlwaysWins(t *testing.T) {
	for _, due := range []*time.Time{nil, at(yesterday), at(now), at(tomorrow), at(time.Time{})} {
		assert.Equal(t, StatusCompleted, Classify(Task{Completed: true, DueDate: due}, now))
	}
}

func TestClassifyDueToday(t *testing.T) {
	earlier := time.Date(2024, time.March, 15, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, StatusPending, Classify(Task{DueDate: at(earlier)}, now), "a task due earlier today is not overdue")
	assert.Equal(t, StatusPending, Classify(Task{DueDate: at(time.Time{})}, now), "zero due date is no due date")
}

// ============================================================
// CategorizeDue
// ============================================================

func TestCategorizeDue(t *testing.T) {
	tests := []struct {
		name      string
		due       *time.Time
		completed bool
		want      DueCategory
	}{
		{"no due", nil, false, DueNone},
		{"no due completed", nil, true, DueNone},
		{"overdue", at(yesterday), false, DueOverdue},
		{"overdue completed", at(yesterday), true, DueNone},
		{"today", at(now), false, DueToday},
		{"today completed", at(now), true, DueToday},
		{"tomorrow", at(tomorrow), false, DueTomorrow},
		{"tomorrow completed", at(tomorrow), true, DueNone},
		{"next week", at(nextWeek), false, DueNone},
		{"zero", at(time.Time{}), false, DueNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeDue(tt.due, tt.completed, now))
		})
	}
}

func TestCategorizeDueExactlyOne(t *testing.T) {
	valid := map[DueCategory]bool{DueNone: true, DueOverdue: true, DueToday: true, DueTomorrow: true}
	start := now.AddDate(0, 0, -3)
	for h := 0; h < 24*7; h++ {
		due := start.Add(time.Duration(h) * time.Hour)
		for _, completed := range []bool{false, true} {
			got := CategorizeDue(&due, completed, now)
			assert.True(t, valid[got], "unexpected category %q", got)
		}
	}
}

// ============================================================
// BucketOf
// ============================================================

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want Bucket
	}{
		{"completed", Task{Completed: true, DueDate: at(yesterday)}, BucketCompleted},
		{"inbox", Task{}, BucketInbox},
		{"someday", Task{ProjectID: strp("p1")}, BucketSomeday},
		{"overdue", Task{DueDate: at(yesterday)}, BucketOverdue},
		{"today", Task{DueDate: at(now)}, BucketToday},
		{"tomorrow", Task{DueDate: at(tomorrow)}, BucketTomorrow},
		{"upcoming", Task{DueDate: at(nextWeek)}, BucketUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketOf(tt.task, now))
		})
	}
}

func TestTaskHelpers(t *testing.T) {
	tk := Task{ProjectID: strp("p1")}
	assert.True(t, tk.InProject("p1"))
	assert.False(t, tk.InProject("p2"))
	assert.False(t, Task{}.InProject("p1"))
	assert.True(t, Task{}.Due().IsZero())
}
