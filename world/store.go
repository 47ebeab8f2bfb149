// Package world implements the transactional world state store backing an
// evaluation session. Each store is a private in-memory SQLite database
// bootstrapped from a domain schema and seed dataset; domain entities are
// only ever mutated through explicit transactions and never deleted, only
// status-transitioned.
package world

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/logging"
)

// Row is one table row keyed by column name.
type Row = map[string]any

// Options holds optional overrides passed to Open().
type Options struct {
	// Logger receives store diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Store owns one in-memory SQLite database for the lifetime of a session.
// The connection pool is pinned to a single connection: SQLite has a single
// writer, and a :memory: DSN would otherwise hand every pooled connection a
// different empty database.
type Store struct {
	db     *sql.DB
	tables []string
	logger logging.Logger
}

// Open creates a fresh in-memory store and bootstraps it with the given
// schema (CREATE TABLE statements plus seed INSERTs). The tables slice names
// every table the schema creates; it drives Snapshot and Reset.
func Open(schema string, tables []string, optFns ...func(o *Options)) (*Store, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, &core.StorageError{Op: "bootstrap", Err: err}
	}

	tablesCopy := make([]string, len(tables))
	copy(tablesCopy, tables)

	return &Store{db: db, tables: tablesCopy, logger: opts.Logger}, nil
}

// Tables returns the table names known to this store.
func (s *Store) Tables() []string {
	tables := make([]string, len(s.tables))
	copy(tables, s.tables)
	return tables
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Query runs a read-only statement and returns all matching rows.
func (s *Store) Query(query string, args ...any) ([]Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, &core.StorageError{Op: "query", Err: err}
	}
	defer func() { _ = rows.Close() }()
	return scanRows(rows)
}

// QueryRow runs a read-only statement and returns the first matching row, or
// nil when nothing matched.
func (s *Store) QueryRow(query string, args ...any) (Row, error) {
	result, err := s.Query(query, args...)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// Transact runs fn inside a single transaction with explicit
// begin/commit/rollback scoping. Any error from fn rolls the whole
// transaction back, so a multi-table mutation either applies completely or
// not at all.
func (s *Store) Transact(fn func(tx *Tx) error) error {
	sqlTx, err := s.db.Begin()
	if err != nil {
		return &core.StorageError{Op: "begin", Err: err}
	}
	if err := fn(&Tx{tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return &core.StorageError{Op: "commit", Err: err}
	}
	return nil
}

// Snapshot returns every row of every known table keyed by table name.
func (s *Store) Snapshot() (map[string][]Row, error) {
	snapshot := make(map[string][]Row, len(s.tables))
	for _, table := range s.tables {
		rows, err := s.Query("SELECT * FROM " + table)
		if err != nil {
			return nil, err
		}
		snapshot[table] = rows
	}
	return snapshot, nil
}

// Reset clears every known table then bulk-inserts the caller-provided rows.
// Unknown tables are skipped with a warning, not a fatal error. The whole
// reset applies in one transaction.
func (s *Store) Reset(rowsByTable map[string][]Row) error {
	known := make(map[string]bool, len(s.tables))
	for _, t := range s.tables {
		known[t] = true
	}

	return s.Transact(func(tx *Tx) error {
		for _, table := range s.tables {
			if err := tx.Exec("DELETE FROM " + table); err != nil {
				return err
			}
		}
		for table, rows := range rowsByTable {
			if !known[table] {
				s.logger.Warn("Table not found in database, skipping", "table", table)
				continue
			}
			for _, row := range rows {
				if err := tx.insertRow(table, row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Tx is a thin wrapper over *sql.Tx exposing the statement helpers tool
// handlers need.
type Tx struct {
	tx *sql.Tx
}

// Exec runs a mutation statement.
func (t *Tx) Exec(query string, args ...any) error {
	if _, err := t.tx.Exec(query, args...); err != nil {
		return &core.StorageError{Op: "exec", Err: err}
	}
	return nil
}

// Insert runs an INSERT statement and returns the new row id.
func (t *Tx) Insert(query string, args ...any) (int64, error) {
	result, err := t.tx.Exec(query, args...)
	if err != nil {
		return 0, &core.StorageError{Op: "insert", Err: err}
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, &core.StorageError{Op: "insert", Err: err}
	}
	return id, nil
}

// Query runs a read statement inside the transaction.
func (t *Tx) Query(query string, args ...any) ([]Row, error) {
	rows, err := t.tx.Query(query, args...)
	if err != nil {
		return nil, &core.StorageError{Op: "query", Err: err}
	}
	defer func() { _ = rows.Close() }()
	return scanRows(rows)
}

// QueryRow runs a read statement inside the transaction and returns the
// first matching row, or nil when nothing matched.
func (t *Tx) QueryRow(query string, args ...any) (Row, error) {
	result, err := t.Query(query, args...)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// insertRow builds an INSERT from a row map with a deterministic column
// order so statements are stable across runs.
func (t *Tx) insertRow(table string, row Row) error {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	placeholders := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = "?"
		values[i] = row[col]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ","), strings.Join(placeholders, ","),
	)
	return t.Exec(query, values...)
}

// scanRows materializes sql rows into []Row. SQLite hands back int64,
// float64, string, []byte or nil; []byte is normalized to string so
// snapshots are JSON-friendly.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, &core.StorageError{Op: "scan", Err: err}
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, &core.StorageError{Op: "scan", Err: err}
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "scan", Err: err}
	}
	return result, nil
}
