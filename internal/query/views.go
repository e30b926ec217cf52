package query

import (
	"fmt"
	"time"

	"github.com/sadopc/taskpulse/internal/calendar"
)

// View names a task listing.
type View string

const (
	ViewToday     View = "today"
	ViewInbox     View = "inbox"
	ViewUpcoming  View = "upcoming"
	ViewCompleted View = "completed"
	ViewOverdue   View = "overdue"
	ViewPending   View = "pending"
	ViewAll       View = "all"
)

// Views lists every named task view in display order.
var Views = []View{ViewToday, ViewInbox, ViewUpcoming, ViewOverdue, ViewCompleted, ViewPending, ViewAll}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", invalid("view", fmt.Sprintf("unknown view %q", s))
}

// ForView builds the listing set of a named view as seen at now.
func ForView(v View, userID string, now time.Time) (Set, error) {
	today := calendar.DayWindow(now)
	switch v {
	case ViewToday:
		return TodayTasks(userID, today)
	case ViewInbox:
		return InboxTasks(userID)
	case ViewUpcoming:
		return UpcomingTasks(userID, today.Start)
	case ViewOverdue:
		return OverdueTasks(userID, today.Start)
	case ViewCompleted:
		return CompletedTasks(userID)
	case ViewPending:
		return PendingTasks(userID)
	case ViewAll:
		return AllTasks(userID)
	}
	return nil, invalid("view", fmt.Sprintf("unknown view %q", v))
}

// CountForView builds the counting set of a named view.
func CountForView(v View, userID string, now time.Time) (Set, error) {
	return CountOf(ForView(v, userID, now))
}
