/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package sqlitestore answers association lookups from a SQLite database.
//
// Each entity maps to a table named by its plural ("author" -> "authors")
// whose "id" column holds the valid identifiers.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	// Pure Go driver; no cgo needed.
	_ "modernc.org/sqlite"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/association"
)

// DriverName is the database/sql driver used by Open.
const DriverName = "sqlite"

// ErrInvalidTable is returned when an entity maps to a table name that is
// not a plain identifier.
var ErrInvalidTable = errors.New("ffx(sqlitestore): invalid table name")

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is an apis.IDSource over a *sql.DB.
type Store struct {
	db     *sql.DB
	table  func(entity string) string
	column string
}

// Ensure Store implements apis.IDSource.
var _ apis.IDSource = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTableNamer overrides the entity-to-table mapping (default Plural).
func WithTableNamer(fn func(entity string) string) Option {
	return func(s *Store) {
		if fn != nil {
			s.table = fn
		}
	}
}

// WithIDColumn overrides the identifier column (default "id").
func WithIDColumn(col string) Option {
	return func(s *Store) {
		if col != "" {
			s.column = col
		}
	}
}

// New wraps an open database. The caller keeps ownership of db.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, table: Plural, column: "id"}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open opens the SQLite database at dsn (a path or "file:" URI, or
// ":memory:") and returns a Store that owns it.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("ffx(sqlitestore): open %q: %w", dsn, err)
	}
	// A single connection keeps ":memory:" databases shared between calls.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ffx(sqlitestore): ping %q: %w", dsn, err)
	}
	return New(db, opts...), nil
}

// DB returns the underlying database.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// IDs returns every identifier of entity's table, in rowid order.
func (s *Store) IDs(ctx context.Context, entity string) ([]apis.Value, error) {
	table := s.table(entity)
	if !identRE.MatchString(table) || !identRE.MatchString(s.column) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s (table %s)", association.ErrUnknownEntity, entity, table)
	}
	if err != nil {
		return nil, fmt.Errorf("ffx(sqlitestore): lookup table %s: %w", table, err)
	}

	// Identifiers were validated above.
	q := fmt.Sprintf(`SELECT "%s" FROM "%s" ORDER BY rowid`, s.column, table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ffx(sqlitestore): query %s: %w", table, err)
	}
	defer rows.Close()

	var ids []apis.Value
	for rows.Next() {
		var id any
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ffx(sqlitestore): scan %s: %w", table, err)
		}
		if b, ok := id.([]byte); ok {
			id = string(b)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ffx(sqlitestore): iterate %s: %w", table, err)
	}
	return ids, nil
}

// Plural is a small English pluralizer covering table naming conventions:
// "author" -> "authors", "category" -> "categories", "box" -> "boxes".
func Plural(word string) string {
	if word == "" {
		return word
	}
	lw := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lw, "s"), strings.HasSuffix(lw, "x"), strings.HasSuffix(lw, "z"),
		strings.HasSuffix(lw, "ch"), strings.HasSuffix(lw, "sh"):
		return word + "es"
	case strings.HasSuffix(lw, "y") && len(lw) > 1 && !strings.ContainsRune("aeiou", rune(lw[len(lw)-2])):
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}
