package query

import (
	"slices"
	"strings"
	"time"

	"github.com/sadopc/taskpulse/internal/calendar"
)

// Atomic builders.

func Select(fields ...string) (Predicate, error) {
	if len(fields) == 0 {
		return Predicate{}, invalid("select", "at least one field is required")
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return Predicate{}, invalid("select", "field names must not be empty")
		}
	}
	return Predicate{Kind: KindSelect, Fields: slices.Clone(fields)}, nil
}

func Equal(field string, value any) Predicate {
	return Predicate{Kind: KindEqual, Field: field, Value: value}
}

func IsNull(field string) Predicate {
	return Predicate{Kind: KindIsNull, Field: field}
}

func IsNotNull(field string) Predicate {
	return Predicate{Kind: KindIsNotNull, Field: field}
}

// GreaterOrEqual matches documents whose field is at or after value.
func GreaterOrEqual(field string, value any) Predicate {
	return Predicate{Kind: KindGreaterOrEqual, Field: field, Value: value}
}

// LessThan matches documents whose field is strictly before value.
func LessThan(field string, value any) Predicate {
	return Predicate{Kind: KindLessThan, Field: field, Value: value}
}

// Contains matches documents whose string field contains the substring,
// case-insensitively.
func Contains(field, substr string) Predicate {
	return Predicate{Kind: KindContains, Field: field, Value: substr}
}

func And(children ...Predicate) Predicate {
	return Predicate{Kind: KindAnd, Children: slices.Clone(children)}
}

func OrderAsc(field string) Predicate {
	return Predicate{Kind: KindOrderAsc, Field: field}
}

func OrderDesc(field string) Predicate {
	return Predicate{Kind: KindOrderDesc, Field: field}
}

func Limit(n int) (Predicate, error) {
	if n <= 0 {
		return Predicate{}, invalid("limit", "must be a positive integer")
	}
	return Predicate{Kind: KindLimit, N: n}, nil
}

// Composite builders.

func ownedBy(userID string) (Predicate, error) {
	if strings.TrimSpace(userID) == "" {
		return Predicate{}, invalid("userId", "must not be empty")
	}
	return Equal(FieldUserID, userID), nil
}

// TodayTasks lists open tasks due inside today's window.
func TodayTasks(userID string, today calendar.Window) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	return Set{
		owner,
		Equal(FieldCompleted, false),
		GreaterOrEqual(FieldDueDate, today.Start),
		LessThan(FieldDueDate, today.End),
	}, nil
}

// InboxTasks lists open tasks not filed under any project.
func InboxTasks(userID string) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	return Set{
		owner,
		Equal(FieldCompleted, false),
		IsNull(FieldProjectID),
	}, nil
}

// UpcomingTasks lists open tasks due today or later, soonest first.
func UpcomingTasks(userID string, todayStart time.Time) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	return Set{
		owner,
		Equal(FieldCompleted, false),
		IsNotNull(FieldDueDate),
		GreaterOrEqual(FieldDueDate, todayStart),
		OrderAsc(FieldDueDate),
	}, nil
}

// OverdueTasks lists open tasks due before today, oldest first.
func OverdueTasks(userID string, todayStart time.Time) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	return Set{
		owner,
		Equal(FieldCompleted, false),
		IsNotNull(FieldDueDate),
		LessThan(FieldDueDate, todayStart),
		OrderAsc(FieldDueDate),
	}, nil
}

// CompletedTasks lists finished tasks, most recently updated first.
func CompletedTasks(userID string) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	return Set{
		owner,
		Equal(FieldCompleted, true),
		OrderDesc(FieldUpdatedAt),
	}, nil
}

// PendingTasks lists every open task regardless of due date.
func PendingTasks(userID string) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	return Set{
		owner,
		Equal(FieldCompleted, false),
		OrderDesc(FieldCreatedAt),
	}, nil
}

// AllTasks lists every task of the user, newest first.
func AllTasks(userID string) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	return Set{owner, OrderDesc(FieldCreatedAt)}, nil
}

// SearchTasks lists the user's tasks whose content contains term. An empty
// term yields the unfiltered list.
func SearchTasks(userID, term string) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	set := Set{owner}
	if term = strings.TrimSpace(term); term != "" {
		set = append(set, Contains(FieldContent, term))
	}
	return append(set, OrderDesc(FieldUpdatedAt)), nil
}

// ProjectListOptions narrows UserProjects. Zero values mean no search and
// no limit.
type ProjectListOptions struct {
	Search string
	Limit  int
}

// UserProjects lists the user's projects, newest first.
func UserProjects(userID string, opts ProjectListOptions) (Set, error) {
	owner, err := ownedBy(userID)
	if err != nil {
		return nil, err
	}
	set := Set{owner}
	if search := strings.TrimSpace(opts.Search); search != "" {
		set = append(set, Contains(FieldName, search))
	}
	set = append(set, OrderDesc(FieldCreatedAt))
	if opts.Limit != 0 {
		limit, err := Limit(opts.Limit)
		if err != nil {
			return nil, err
		}
		set = append(set, limit)
	}
	return set, nil
}

// Count turns a listing set into its counting variant: the same filters,
// a projection down to the id, and limit(1). The store's total carries
// the count, so no full documents are transferred.
func Count(list Set) Set {
	sel, _ := Select(FieldID)
	one, _ := Limit(1)
	out := append(list.Filters(), sel, one)
	return out
}

// CountOf builds a listing set and converts it with Count.
func CountOf(list Set, err error) (Set, error) {
	if err != nil {
		return nil, err
	}
	return Count(list), nil
}
