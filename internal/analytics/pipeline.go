package analytics

import (
	"math"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/task"
)

const ellipsis = "..."

// Pipeline runs the dashboard transforms. It is stateless; every call
// builds fresh results from its inputs.
type Pipeline struct {
	cfg Config
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// MonthlyCompletion returns one point per month of the trailing window
// ending with now's month, oldest first. Tasks are bucketed by creation
// month and status; tasks created outside the window are ignored.
func (p *Pipeline) MonthlyCompletion(tasks []task.Task, now time.Time) []TaskCompletionPoint {
	months := p.cfg.Months
	first := calendar.AddMonths(calendar.MonthStart(now), -(months - 1))

	points := make([]TaskCompletionPoint, months)
	for i := range points {
		points[i].Month = calendar.MonthLabel(calendar.AddMonths(first, i))
	}

	loc := now.Location()
	for _, t := range tasks {
		if t.CreatedAt.IsZero() {
			continue
		}
		created := calendar.MonthStart(t.CreatedAt.In(loc))
		idx := monthsBetween(first, created)
		if idx < 0 || idx >= months {
			continue
		}
		switch task.Classify(t, now) {
		case task.StatusCompleted:
			points[idx].Completed++
		case task.StatusOverdue:
			points[idx].Overdue++
		default:
			points[idx].Pending++
		}
	}
	return points
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// ProjectDistribution counts tasks per project and keeps the busiest
// projects. Projects without tasks are dropped; ties keep input order.
func (p *Pipeline) ProjectDistribution(tasks []task.Task, projects []task.Project) []DistributionSlice {
	counts := make(map[string]int, len(projects))
	for _, t := range tasks {
		if t.ProjectID != nil {
			counts[*t.ProjectID]++
		}
	}

	type ranked struct {
		project task.Project
		count   int
	}
	var rows []ranked
	for _, pr := range projects {
		if n := counts[pr.ID]; n > 0 {
			rows = append(rows, ranked{project: pr, count: n})
		}
	}
	slices.SortStableFunc(rows, func(a, b ranked) int {
		return b.count - a.count
	})
	if len(rows) > p.cfg.TopN {
		rows = rows[:p.cfg.TopN]
	}

	out := make([]DistributionSlice, len(rows))
	for i, r := range rows {
		out[i] = DistributionSlice{
			Category:  CategoryKey(r.project.Name),
			Label:     r.project.Name,
			TaskCount: r.count,
			FillColor: p.cfg.fill(i, r.project.ColorHex),
		}
	}
	return out
}

// ProjectProgress reports completion for projects that carry tasks, in
// input order.
func (p *Pipeline) ProjectProgress(projects []task.Project) []ProgressEntry {
	var out []ProgressEntry
	for _, pr := range projects {
		if len(pr.Tasks) == 0 {
			continue
		}
		if len(out) == p.cfg.TopN {
			break
		}
		done := 0
		for _, t := range pr.Tasks {
			if t.Completed {
				done++
			}
		}
		out = append(out, ProgressEntry{
			ProjectLabel:    Truncate(pr.Name, p.cfg.LabelMaxLen),
			ProgressPercent: Percent(done, len(pr.Tasks)),
			FillColor:       p.cfg.fill(len(out), pr.ColorHex),
		})
	}
	return out
}

// WeekdayActivity counts completed tasks by the weekday they were last
// updated, in loc. Tasks without an update timestamp are skipped.
func (p *Pipeline) WeekdayActivity(tasks []task.Task, loc *time.Location) []ActivityPoint {
	var byDay [7]int
	for _, t := range tasks {
		if !t.Completed || t.UpdatedAt.IsZero() {
			continue
		}
		byDay[t.UpdatedAt.In(loc).Weekday()]++
	}

	order := calendar.WeekdayOrder(p.cfg.WeekStart)
	out := make([]ActivityPoint, len(order))
	for i, d := range order {
		out[i] = ActivityPoint{Weekday: calendar.WeekdayName(d), CompletedCount: byDay[d]}
	}
	return out
}

// Percent returns round(part/total*100), or 0 when total is not positive.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Truncate shortens s to n runes followed by an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + ellipsis
}

// CategoryKey derives a stable chart category from a project name, e.g.
// "Side Project #2" becomes "side-project-2".
func CategoryKey(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "project"
	}
	return b.String()
}
