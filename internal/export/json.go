package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/taskpulse/internal/analytics"
)

type jsonExport struct {
	ExportedAt  string `json:"exported_at"`
	GeneratedAt string `json:"generated_at"`
	Window      string `json:"window"`

	CompletionRate    int                             `json:"completion_rate"`
	InProgress        int                             `json:"in_progress"`
	Metrics           []analytics.StatMetric          `json:"metrics"`
	MonthlyCompletion []analytics.TaskCompletionPoint `json:"monthly_completion"`
	Distribution      []analytics.DistributionSlice   `json:"distribution"`
	Progress          []analytics.ProgressEntry       `json:"progress"`
	Activity          []analytics.ActivityPoint       `json:"activity"`
}

func newJSONExport(d *analytics.Dashboard, exportedAt time.Time) jsonExport {
	return jsonExport{
		ExportedAt:        exportedAt.UTC().Format(time.RFC3339),
		GeneratedAt:       d.GeneratedAt.UTC().Format(time.RFC3339),
		Window:            d.Window,
		CompletionRate:    d.Summary.CompletionRate,
		InProgress:        d.Summary.InProgress,
		Metrics:           d.Summary.Metrics,
		MonthlyCompletion: d.MonthlyCompletion,
		Distribution:      d.Distribution,
		Progress:          d.Progress,
		Activity:          d.Activity,
	}
}

// ToJSON writes the dashboard to path as indented JSON.
func ToJSON(d *analytics.Dashboard, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, d); err != nil {
		return err
	}
	return f.Close()
}

// WriteJSON writes d to w as indented JSON.
func WriteJSON(w io.Writer, d *analytics.Dashboard) error {
	data, err := json.MarshalIndent(newJSONExport(d, time.Now()), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
