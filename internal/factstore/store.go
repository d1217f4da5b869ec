// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package factstore persists extracted facts by theme in SQLite and
// writes them as TSV. Both outputs implement the extraction sink.
package factstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

const dbFile = "facts.db"

// Store manages the fact database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the fact database at cfg.OutputDir/facts.db
// and creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	dbPath := filepath.Join(cfg.OutputDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		dir:        cfg.OutputDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS facts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			theme TEXT NOT NULL,
			subject TEXT NOT NULL,
			relation TEXT NOT NULL,
			object TEXT NOT NULL,
			UNIQUE(theme, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_facts_subject ON facts(theme, subject)`,
		`CREATE INDEX IF NOT EXISTS idx_facts_relation ON facts(theme, relation)`,
		`CREATE INDEX IF NOT EXISTS idx_facts_id ON facts(id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Batch writes facts inside one transaction. It implements the
// extraction sink; nothing is visible to queries until Commit.
type Batch struct {
	ctx     context.Context
	tx      *sql.Tx
	stmt    *sql.Stmt
	written map[string]int
}

// Begin starts a batch.
func (s *Store) Begin(ctx context.Context) (*Batch, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO facts (id, theme, subject, relation, object) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	return &Batch{ctx: ctx, tx: tx, stmt: stmt, written: make(map[string]int)}, nil
}

// Write stores f under theme. A fact already stored under the theme is
// ignored.
func (b *Batch) Write(theme types.Theme, f types.Fact) error {
	if f.ID == "" {
		f = types.NewFact(f.Subject, f.Relation, f.Object)
	}
	res, err := b.stmt.ExecContext(b.ctx, f.ID, theme.Name, f.Subject, f.Relation, f.Object)
	if err != nil {
		return fmt.Errorf("inserting fact %s: %w", f.ID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		b.written[theme.Name]++
	}
	return nil
}

// Written returns the number of new facts per theme name.
func (b *Batch) Written() map[string]int { return b.written }

// Commit makes the batch visible.
func (b *Batch) Commit() error {
	b.stmt.Close()
	if err := b.tx.Commit(); err != nil {
		return fmt.Errorf("committing facts: %w", err)
	}
	return nil
}

// Rollback discards the batch. It is a no-op after Commit.
func (b *Batch) Rollback() error {
	b.stmt.Close()
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back facts: %w", err)
	}
	return nil
}

// ThemeCount is the number of stored facts in one theme.
type ThemeCount struct {
	Theme string `json:"theme" yaml:"theme"`
	Facts int    `json:"facts" yaml:"facts"`
}

// Counts returns the number of facts per theme, ordered by theme name.
func (s *Store) Counts(ctx context.Context) ([]ThemeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT theme, count(*) FROM facts GROUP BY theme ORDER BY theme`)
	if err != nil {
		return nil, fmt.Errorf("counting facts: %w", err)
	}
	defer rows.Close()

	var counts []ThemeCount
	for rows.Next() {
		var c ThemeCount
		if err := rows.Scan(&c.Theme, &c.Facts); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
