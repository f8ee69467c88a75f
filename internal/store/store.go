// Package store keeps hand records in a SQLite database so a hand can be
// resumed across processes.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"github.com/lox/holdem-engine/internal/record"
)

// ErrNotFound is returned when no hand has the requested id.
var ErrNotFound = errors.New("hand not found")

// Summary describes a stored hand without decoding it.
type Summary struct {
	ID        string    `json:"id"`
	Structure string    `json:"structure"`
	Complete  bool      `json:"complete"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store struct {
	db    *sql.DB
	clock quartz.Clock
}

type Option func(*Store)

// WithClock sets the clock used for update times.
func WithClock(c quartz.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Open opens or creates the database at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	s := &Store{db: db, clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS hands (
			id TEXT PRIMARY KEY,
			structure TEXT NOT NULL,
			complete INTEGER NOT NULL DEFAULT 0,
			record TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

// Save inserts or replaces the record under its id.
func (s *Store) Save(ctx context.Context, rec *record.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: record has no id", record.ErrInvalid)
	}
	var buf bytes.Buffer
	if err := record.Encode(&buf, rec); err != nil {
		return fmt.Errorf("encode hand %s: %w", rec.ID, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hands (id, structure, complete, record, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			structure = excluded.structure,
			complete = excluded.complete,
			record = excluded.record,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Structure, len(rec.Winners) > 0, buf.String(), s.clock.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("save hand %s: %w", rec.ID, err)
	}
	return nil
}

// Load returns the stored record for id.
func (s *Store) Load(ctx context.Context, id string) (*record.Record, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT record FROM hands WHERE id = ?", id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load hand %s: %w", id, err)
	}
	rec, err := record.Decode(bytes.NewBufferString(body))
	if err != nil {
		return nil, fmt.Errorf("decode hand %s: %w", id, err)
	}
	return rec, nil
}

// List returns every stored hand, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, structure, complete, updated_at FROM hands
		ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list hands: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated int64
		)
		if err := rows.Scan(&sum.ID, &sum.Structure, &sum.Complete, &updated); err != nil {
			return nil, fmt.Errorf("list hands: %w", err)
		}
		sum.UpdatedAt = time.Unix(0, updated).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the hand with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM hands WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete hand %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
