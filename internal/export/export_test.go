package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/taskpulse/internal/analytics"
)

func sampleDashboard() *analytics.Dashboard {
	return &analytics.Dashboard{
		GeneratedAt: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
		Window:      "this month",
		Summary: analytics.SummaryMetrics(analytics.Counts{Total: 10, Completed: 4, Pending: 6, Overdue: 2}, "this month"),
		MonthlyCompletion: []analytics.TaskCompletionPoint{
			{Month: "Feb 2024", Completed: 1, Pending: 2},
			{Month: "Mar 2024", Completed: 3, Pending: 2, Overdue: 2},
		},
		Distribution: []analytics.DistributionSlice{
			{Category: "work", Label: "Work", TaskCount: 6, FillColor: "#FF0000"},
			{Category: "home-chores", Label: `Home "Chores", misc`, TaskCount: 4, FillColor: "#00FF00"},
		},
		Progress: []analytics.ProgressEntry{
			{ProjectLabel: "Work", ProgressPercent: 50, FillColor: "#FF0000"},
		},
		Activity: []analytics.ActivityPoint{
			{Weekday: "Sun"}, {Weekday: "Mon", CompletedCount: 2}, {Weekday: "Tue"},
			{Weekday: "Wed"}, {Weekday: "Thu", CompletedCount: 2}, {Weekday: "Fri"}, {Weekday: "Sat"},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	return records
}

// sectionRows returns the data rows following the title row of a section.
func sectionRows(records [][]string, title string) [][]string {
	for i, rec := range records {
		if rec[0] != "# "+title {
			continue
		}
		var rows [][]string
		for _, r := range records[i+2:] {
			if strings.HasPrefix(r[0], "# ") {
				break
			}
			rows = append(rows, r)
		}
		return rows
	}
	return nil
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleDashboard(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	records := readCSV(t, path)

	// 5 sections, each with title + header, then 4+2+2+1+7 data rows
	if len(records) != 10+16 {
		t.Fatalf("expected 26 rows, got %d", len(records))
	}

	summary := sectionRows(records, "Summary")
	if len(summary) != 4 {
		t.Fatalf("summary rows = %d, want 4", len(summary))
	}
	if summary[1][0] != "Completed" || summary[1][1] != "4" || summary[1][2] != "40% completion rate" {
		t.Fatalf("completed row = %v", summary[1])
	}

	monthly := sectionRows(records, "Monthly Completion")
	if monthly[1][0] != "Mar 2024" || monthly[1][4] != "7" {
		t.Fatalf("monthly row = %v, want total 7", monthly[1])
	}

	activity := sectionRows(records, "Weekday Activity")
	if len(activity) != 7 || activity[1][1] != "2" {
		t.Fatalf("activity = %v", activity)
	}
}

func TestToCSVHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headers.csv")
	if err := ToCSV(sampleDashboard(), path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)

	want := map[string][]string{
		"# Summary":              {"Metric", "Value", "Change"},
		"# Monthly Completion":   {"Month", "Completed", "Pending", "Overdue", "Total"},
		"# Project Distribution": {"Category", "Project", "Tasks", "Color"},
		"# Project Progress":     {"Project", "Progress (%)", "Color"},
		"# Weekday Activity":     {"Weekday", "Completed"},
	}
	found := 0
	for i, rec := range records {
		header, ok := want[rec[0]]
		if !ok {
			continue
		}
		found++
		got := records[i+1]
		if strings.Join(got, ",") != strings.Join(header, ",") {
			t.Fatalf("%s header = %v, want %v", rec[0], got, header)
		}
	}
	if found != len(want) {
		t.Fatalf("found %d sections, want %d", found, len(want))
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(&analytics.Dashboard{}, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if len(records) != 10 {
		t.Fatalf("expected 10 rows (titles and headers only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(sampleDashboard(), "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "special.csv")
	if err := ToCSV(sampleDashboard(), path); err != nil {
		t.Fatal(err)
	}

	dist := sectionRows(readCSV(t, path), "Project Distribution")
	if dist[1][1] != `Home "Chores", misc` {
		t.Fatalf("project name mangled: %q", dist[1][1])
	}
}

func TestWriteCSVMatchesFile(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleDashboard()); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "same.csv")
	if err := ToCSV(sampleDashboard(), path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if buf.String() != string(data) {
		t.Fatal("WriteCSV and ToCSV output differ")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleDashboard(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Window != "this month" {
		t.Fatalf("window = %q", result.Window)
	}
	if result.CompletionRate != 40 || result.InProgress != 4 {
		t.Fatalf("rate = %d, in progress = %d", result.CompletionRate, result.InProgress)
	}
	if len(result.Metrics) != 4 {
		t.Fatalf("metrics = %d, want 4", len(result.Metrics))
	}
	if len(result.MonthlyCompletion) != 2 || result.MonthlyCompletion[1].Overdue != 2 {
		t.Fatalf("monthly = %+v", result.MonthlyCompletion)
	}
	if result.Distribution[0].FillColor != "#FF0000" {
		t.Fatalf("fill = %q", result.Distribution[0].FillColor)
	}
	if len(result.Activity) != 7 {
		t.Fatalf("activity = %d, want 7", len(result.Activity))
	}
}

func TestToJSONKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	if err := ToJSON(sampleDashboard(), path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"exported_at", "generated_at", "window", "completion_rate", "in_progress", "metrics", "monthly_completion", "distribution", "progress", "activity"} {
		if _, ok := raw[k]; !ok {
			t.Fatalf("missing key %q", k)
		}
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(sampleDashboard(), "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	if err := ToJSON(sampleDashboard(), path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleDashboard()); err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatal(err)
	}

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	if result.GeneratedAt != "2024-03-15T12:00:00Z" {
		t.Fatalf("generated_at = %q", result.GeneratedAt)
	}
}
