// Package index records each generated persona in a SQLite ledger.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	username    TEXT NOT NULL,
	provider    TEXT NOT NULL,
	model       TEXT NOT NULL,
	posts       INTEGER NOT NULL,
	comments    INTEGER NOT NULL,
	output_path TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_username ON runs(username, created_at);
`

// Entry is one completed run.
type Entry struct {
	ID         string
	Username   string
	Provider   string
	Model      string
	Posts      int
	Comments   int
	OutputPath string
	CreatedAt  time.Time
}

// Index wraps the ledger database.
type Index struct {
	db *sql.DB
}

// Path returns the ledger location inside stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, "index.db")
}

// Open opens or creates the ledger at path.
func Open(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Record stores e, assigning an ID and timestamp when they are unset.
// Returns the stored entry.
func (idx *Index) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := idx.db.ExecContext(ctx,
		`INSERT INTO runs (id, username, provider, model, posts, comments, output_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Username, e.Provider, e.Model, e.Posts, e.Comments, e.OutputPath, e.CreatedAt.UnixNano())
	if err != nil {
		return e, fmt.Errorf("insert run: %w", err)
	}
	return e, nil
}

// History returns the runs for username, newest first.
func (idx *Index) History(ctx context.Context, username string) ([]Entry, error) {
	rows, err := idx.db.QueryContext(ctx,
		`SELECT id, username, provider, model, posts, comments, output_path, created_at
		 FROM runs WHERE username = ? ORDER BY created_at DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Username, &e.Provider, &e.Model, &e.Posts, &e.Comments, &e.OutputPath, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.CreatedAt = time.Unix(0, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
