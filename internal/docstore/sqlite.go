package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/query"
)

const currentVersion = 2

// SQLite is a Store backed by a single SQLite table of JSON documents.
type SQLite struct {
	db    *sql.DB
	clock calendar.Clock
	log   zerolog.Logger
}

var _ Store = (*SQLite)(nil)

// Option configures a SQLite store.
type Option func(*SQLite)

// WithClock sets the clock used for document timestamps.
func WithClock(c calendar.Clock) Option {
	return func(s *SQLite) { s.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *SQLite) { s.log = l }
}

// Open opens (or creates) the SQLite database at dbPath and runs migrations.
func Open(dbPath string, opts ...Option) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db, clock: calendar.SystemClock{}, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store for testing.
func OpenMemory(opts ...Option) (*SQLite, error) {
	return Open(":memory:", opts...)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	steps := []func() error{s.migrateV1, s.migrateV2}
	for v := version; v < currentVersion; v++ {
		if err := steps[v](); err != nil {
			return fmt.Errorf("migration v%d: %w", v+1, err)
		}
		s.log.Debug().Int("version", v+1).Msg("migration applied")
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *SQLite) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS documents (
		database_id    TEXT NOT NULL,
		collection_id  TEXT NOT NULL,
		id             TEXT NOT NULL,
		data           TEXT NOT NULL DEFAULT '{}',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		PRIMARY KEY (database_id, collection_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(database_id, collection_id, created_at);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// migrateV2 indexes the owner field every user-scoped query filters on.
func (s *SQLite) migrateV2() error {
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_documents_user
		ON documents(database_id, collection_id, json_extract(data, '$.userId'))`)
	return err
}

// DefaultPath returns ~/.config/taskpulse/taskpulse.db
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "taskpulse", "taskpulse.db"), nil
}

func (s *SQLite) GetDocument(ctx context.Context, database, collection, id string) (Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM documents
		 WHERE database_id = ? AND collection_id = ? AND id = ?`,
		database, collection, id,
	)
	doc, err := scanDocument(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (s *SQLite) ListDocuments(ctx context.Context, database, collection string, set query.Set) (DocumentList, error) {
	st, err := translate(set)
	if err != nil {
		return DocumentList{}, fmt.Errorf("list %s: %w", collection, err)
	}

	var b strings.Builder
	b.WriteString(`SELECT id, data, created_at, updated_at, COUNT(*) OVER () FROM documents
		WHERE database_id = ? AND collection_id = ?`)
	args := []any{database, collection}
	if st.where != "" {
		b.WriteString(" AND ")
		b.WriteString(st.where)
		args = append(args, st.args...)
	}
	// rowid keeps ties in insertion order.
	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(append(st.orderBy, "rowid ASC"), ", "))
	if st.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", st.limit)
	}

	s.log.Debug().Str("collection", collection).Stringer("query", set).Msg("list documents")

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return DocumentList{}, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var list DocumentList
	for rows.Next() {
		var total int
		doc, err := scanDocument(func(dest ...any) error {
			return rows.Scan(append(dest, &total)...)
		})
		if err != nil {
			return DocumentList{}, fmt.Errorf("scan %s: %w", collection, err)
		}
		list.Total = total
		list.Documents = append(list.Documents, project(doc, st.fields))
	}
	if err := rows.Err(); err != nil {
		return DocumentList{}, fmt.Errorf("list %s: %w", collection, err)
	}
	return list, nil
}

func (s *SQLite) CreateDocument(ctx context.Context, database, collection, id string, data map[string]any) (Document, error) {
	if id == "" {
		id = uuid.NewString()
	}
	payload, err := json.Marshal(encodeData(data))
	if err != nil {
		return Document{}, fmt.Errorf("encode %s: %w", collection, err)
	}
	now := FormatTime(s.clock.Now())
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (database_id, collection_id, id, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		database, collection, id, string(payload), now, now,
	)
	if err != nil {
		return Document{}, fmt.Errorf("insert %s: %w", collection, err)
	}
	return s.GetDocument(ctx, database, collection, id)
}

func (s *SQLite) UpdateDocument(ctx context.Context, database, collection, id string, data map[string]any) (Document, error) {
	patch, err := json.Marshal(encodeData(data))
	if err != nil {
		return Document{}, fmt.Errorf("encode %s: %w", collection, err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET data = json_patch(data, ?), updated_at = ?
		 WHERE database_id = ? AND collection_id = ? AND id = ?`,
		string(patch), FormatTime(s.clock.Now()), database, collection, id,
	)
	if err != nil {
		return Document{}, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Document{}, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return Document{}, fmt.Errorf("update %s/%s: %w", collection, id, ErrNotFound)
	}
	return s.GetDocument(ctx, database, collection, id)
}

func (s *SQLite) DeleteDocument(ctx context.Context, database, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE database_id = ? AND collection_id = ? AND id = ?`,
		database, collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func scanDocument(scan func(dest ...any) error) (Document, error) {
	var doc Document
	var data, createdAt, updatedAt string
	if err := scan(&doc.ID, &data, &createdAt, &updatedAt); err != nil {
		return Document{}, err
	}
	if err := json.Unmarshal([]byte(data), &doc.Data); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", doc.ID, err)
	}
	var err error
	if doc.CreatedAt, err = ParseTime(createdAt); err != nil {
		return Document{}, fmt.Errorf("decode %s created_at: %w", doc.ID, err)
	}
	if doc.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return Document{}, fmt.Errorf("decode %s updated_at: %w", doc.ID, err)
	}
	return doc, nil
}

// project keeps only the selected payload fields. No selection keeps all.
func project(doc Document, fields []string) Document {
	if len(fields) == 0 {
		return doc
	}
	kept := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := doc.Data[f]; ok {
			kept[f] = v
		}
	}
	doc.Data = kept
	return doc
}
