package repository

import (
	"fmt"
	"time"

	"github.com/sadopc/taskpulse/internal/docstore"
	"github.com/sadopc/taskpulse/internal/task"
)

func decodeTask(doc docstore.Document) (task.Task, error) {
	t := task.Task{
		ID:        doc.ID,
		UserID:    str(doc.Data["userId"]),
		Content:   str(doc.Data["content"]),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if b, ok := doc.Data["completed"].(bool); ok {
		t.Completed = b
	}
	if s := str(doc.Data["dueDate"]); s != "" {
		due, err := docstore.ParseTime(s)
		if err != nil {
			return task.Task{}, fmt.Errorf("task %s: due date: %w", doc.ID, err)
		}
		t.DueDate = &due
	}
	if s := str(doc.Data["projectId"]); s != "" {
		t.ProjectID = &s
	}
	return t, nil
}

func decodeProject(doc docstore.Document) task.Project {
	return task.Project{
		ID:        doc.ID,
		UserID:    str(doc.Data["userId"]),
		Name:      str(doc.Data["name"]),
		ColorName: str(doc.Data["colorName"]),
		ColorHex:  str(doc.Data["colorHex"]),
		CreatedAt: doc.CreatedAt,
	}
}

func decodeTasks(docs []docstore.Document) ([]task.Task, error) {
	out := make([]task.Task, 0, len(docs))
	for _, d := range docs {
		t, err := decodeTask(d)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func timeOrNil(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func strOrNil(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
