// Package docstore defines the document store the repository layer talks to
// and provides a SQLite implementation of it.
package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/sadopc/taskpulse/internal/query"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Document is one stored record. Data holds the JSON payload decoded into
// generic values; timestamps live outside it.
type Document struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentList is a page of matches. Total counts every match and ignores
// any limit in the predicate set.
type DocumentList struct {
	Documents []Document
	Total     int
}

// Store is a collection-oriented document database.
type Store interface {
	GetDocument(ctx context.Context, database, collection, id string) (Document, error)
	ListDocuments(ctx context.Context, database, collection string, set query.Set) (DocumentList, error)
	// CreateDocument stores data under id, or under a fresh id when id is
	// empty.
	CreateDocument(ctx context.Context, database, collection, id string, data map[string]any) (Document, error)
	// UpdateDocument merges data into the stored payload. Nil values remove
	// the key.
	UpdateDocument(ctx context.Context, database, collection, id string, data map[string]any) (Document, error)
	DeleteDocument(ctx context.Context, database, collection, id string) error
}

// TimeLayout is the stored form of every timestamp. It is fixed width and
// always UTC, so string order matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a TimeLayout string. RFC 3339 input is accepted too.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
