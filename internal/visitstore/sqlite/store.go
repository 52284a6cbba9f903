package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"worldmark/internal/model"
	"worldmark/internal/visitstore"
)

// Store persists participants and their visit sequences in a single
// SQLite file. Participants carry the colour and created attributes;
// visits live in an append-only table, so appending a code is one row
// insert regardless of how large the visit sequence has grown.
//
// The file is opened and closed per logical operation. That keeps the
// backing file free between requests (it can be downloaded, replaced or
// deleted while the server runs) at the cost of concurrent-writer
// safety: the store is single-writer and provides no cross-process
// locking.
type Store struct {
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS participants (
	id      TEXT PRIMARY KEY,
	colour  TEXT NOT NULL,
	created TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS visits (
	participant_id TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
	code           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_participant ON visits(participant_id);
`

// New creates a store backed by the SQLite file at path.
// The file itself is not created until Init or the first write.
func New(path string) *Store {
	if path == "" {
		path = "worldmark.db"
	}
	return &Store{path: path}
}

// Ensure Store implements the interface
var _ visitstore.Store = (*Store)(nil)

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// open opens the backing file for one operation, creating schema on
// first use. Callers must close the returned handle.
func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// Serialise access through a single connection per operation.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create store schema: %w", err)
	}
	return db, nil
}

func (s *Store) Init(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// Overwrite semantics: an existing store is emptied, not preserved.
	if _, err := db.ExecContext(ctx, `DELETE FROM visits`); err != nil {
		return fmt.Errorf("truncate visits: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM participants`); err != nil {
		return fmt.Errorf("truncate participants: %w", err)
	}
	return nil
}

func (s *Store) AddParticipant(ctx context.Context, id model.ParticipantID, colour string, created time.Time) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, `
		INSERT INTO participants (id, colour, created) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET colour = excluded.colour, created = excluded.created`,
		string(id), colour, created.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (s *Store) AppendVisits(ctx context.Context, id model.ParticipantID, codes []model.CountryCode) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var exists int
	err = db.QueryRowContext(ctx, `SELECT COUNT(1) FROM participants WHERE id = ?`, string(id)).Scan(&exists)
	if err != nil {
		return fmt.Errorf("lookup participant: %w", err)
	}
	if exists == 0 {
		return model.ErrParticipantNotFound
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append visits: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO visits (participant_id, code) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("append visits: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, code := range codes {
		if _, err := stmt.ExecContext(ctx, string(id), string(code)); err != nil {
			return fmt.Errorf("append visit %s: %w", code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append visits: %w", err)
	}
	return nil
}

func (s *Store) ClearVisits(ctx context.Context, id model.ParticipantID) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, `DELETE FROM visits WHERE participant_id = ?`, string(id)); err != nil {
		return fmt.Errorf("clear visits: %w", err)
	}
	return nil
}

func (s *Store) DeleteParticipant(ctx context.Context, id model.ParticipantID) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, string(id)); err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}

func (s *Store) ListParticipants(ctx context.Context) (map[model.ParticipantID]*model.Participant, error) {
	// A missing backing file is an empty store, not an error.
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return map[model.ParticipantID]*model.Participant{}, nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	result := make(map[model.ParticipantID]*model.Participant)

	rows, err := db.QueryContext(ctx, `SELECT id, colour, created FROM participants`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, colour, created string
		if err := rows.Scan(&id, &colour, &created); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		createdAt, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("parse created for %s: %w", id, err)
		}
		result[model.ParticipantID(id)] = &model.Participant{
			ID:        model.ParticipantID(id),
			Colour:    colour,
			CreatedAt: createdAt,
			Visited:   []model.CountryCode{},
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	visitRows, err := db.QueryContext(ctx, `SELECT participant_id, code FROM visits ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer func() { _ = visitRows.Close() }()

	for visitRows.Next() {
		var pid, code string
		if err := visitRows.Scan(&pid, &code); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		if p, ok := result[model.ParticipantID(pid)]; ok {
			p.Visited = append(p.Visited, model.CountryCode(code))
		}
	}
	if err := visitRows.Err(); err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}

	return result, nil
}
