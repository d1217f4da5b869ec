// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package factstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

// QueryOptions holds fact query filters. Empty fields do not filter.
type QueryOptions struct {
	Theme    string
	Subject  string
	Relation string

	// Object matches facts whose object contains the text.
	Object string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Theme == "" && q.Subject == "" && q.Relation == "" && q.Object == ""
}

// Record is a stored fact with its theme.
type Record struct {
	Theme string `json:"theme" yaml:"theme"`

	types.Fact `yaml:",inline"`
}

// Query returns the facts matching opts in insertion order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT theme, id, subject, relation, object FROM facts WHERE 1=1`)

	if opts.Theme != "" {
		qb.WriteString(` AND theme = ?`)
		args = append(args, opts.Theme)
	}
	if opts.Subject != "" {
		qb.WriteString(` AND subject = ?`)
		args = append(args, opts.Subject)
	}
	if opts.Relation != "" {
		qb.WriteString(` AND relation = ?`)
		args = append(args, opts.Relation)
	}
	if opts.Object != "" {
		qb.WriteString(` AND instr(object, ?) > 0`)
		args = append(args, opts.Object)
	}

	qb.WriteString(` ORDER BY rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying facts: %w", err)
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Theme, &r.ID, &r.Subject, &r.Relation, &r.Object); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Trace returns the source records of a fact: where it was extracted
// from and how.
func (s *Store) Trace(ctx context.Context, factID string) ([]types.Fact, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM facts WHERE id = ? AND theme != ?`, factID, types.InfoboxSources.Name,
	).Scan(&n); err != nil {
		return nil, fmt.Errorf("looking up fact: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("fact %s not found", factID)
	}

	records, err := s.Query(ctx, QueryOptions{
		Theme:      types.InfoboxSources.Name,
		Subject:    factID,
		MaxResults: 1000,
	})
	if err != nil {
		return nil, err
	}
	facts := make([]types.Fact, len(records))
	for i, r := range records {
		facts[i] = r.Fact
	}
	return facts, nil
}
