package freq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// SetupSchema initializes the stats database tables. It is idempotent and
// safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaTables = `
CREATE TABLE IF NOT EXISTS freq_tables (
    table_name TEXT NOT NULL,
    symbol TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (table_name, symbol)
);
`
		schemaMeta = `
CREATE TABLE IF NOT EXISTS freq_meta (
    table_name TEXT PRIMARY KEY,
    total INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaTables); err != nil {
		return fmt.Errorf("could not create freq_tables schema: %w", err)
	}
	if _, err = tx.Exec(schemaMeta); err != nil {
		return fmt.Errorf("could not create freq_meta schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store persists ranked frequency tables in a SQLite database. It holds the
// connection and pre-compiled statements for the hot paths.
type Store struct {
	db             *sql.DB
	stmtDeleteRows *sql.Stmt
	stmtInsertRow  *sql.Stmt
	stmtUpsertMeta *sql.Stmt
	stmtGetRows    *sql.Stmt
	stmtGetMeta    *sql.Stmt
	stmtListMeta   *sql.Stmt
	logger         *slog.Logger
}

// NewStore prepares all statements against db and returns a ready Store.
func NewStore(db *sql.DB) (*Store, error) {
	stmtDeleteRows, err := db.Prepare(`DELETE FROM freq_tables WHERE table_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtInsertRow, err := db.Prepare(`INSERT INTO freq_tables (table_name, symbol, count) VALUES (?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtUpsertMeta, err := db.Prepare(`INSERT INTO freq_meta (table_name, total, updated_at) VALUES (?, ?, ?) ON CONFLICT(table_name) DO UPDATE SET total = excluded.total, updated_at = excluded.updated_at;`)
	if err != nil {
		return nil, err
	}

	stmtGetRows, err := db.Prepare(`SELECT symbol, count FROM freq_tables WHERE table_name = ? ORDER BY count DESC, symbol ASC;`)
	if err != nil {
		return nil, err
	}

	stmtGetMeta, err := db.Prepare(`SELECT total FROM freq_meta WHERE table_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtListMeta, err := db.Prepare(`SELECT table_name, total, updated_at FROM freq_meta ORDER BY table_name;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:             db,
		stmtDeleteRows: stmtDeleteRows,
		stmtInsertRow:  stmtInsertRow,
		stmtUpsertMeta: stmtUpsertMeta,
		stmtGetRows:    stmtGetRows,
		stmtGetMeta:    stmtGetMeta,
		stmtListMeta:   stmtListMeta,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases the prepared statements. The caller owns the *sql.DB.
func (s *Store) Close() {
	_ = s.stmtDeleteRows.Close()
	_ = s.stmtInsertRow.Close()
	_ = s.stmtUpsertMeta.Close()
	_ = s.stmtGetRows.Close()
	_ = s.stmtGetMeta.Close()
	_ = s.stmtListMeta.Close()
}

// SetLogger sets the logger for the Store. By default all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SaveTable replaces the stored rows for t.Name with t's entries and updates
// the table's metadata. The operation is transactional, so re-running an
// analysis overwrites the old table atomically.
func (s *Store) SaveTable(ctx context.Context, t Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.StmtContext(ctx, s.stmtDeleteRows).ExecContext(ctx, t.Name); err != nil {
		return fmt.Errorf("failed to clear table '%s': %w", t.Name, err)
	}

	insert := tx.StmtContext(ctx, s.stmtInsertRow)
	for _, e := range t.Entries {
		if _, err = insert.ExecContext(ctx, t.Name, e.Symbol, e.Count); err != nil {
			return fmt.Errorf("failed to insert row (%s, %q): %w", t.Name, e.Symbol, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err = tx.StmtContext(ctx, s.stmtUpsertMeta).ExecContext(ctx, t.Name, t.Total, now); err != nil {
		return fmt.Errorf("failed to upsert metadata for '%s': %w", t.Name, err)
	}

	s.logger.InfoContext(ctx, "Frequency table saved",
		slog.String("table", t.Name),
		slog.Int("symbols", len(t.Entries)),
		slog.Int("total", t.Total),
	)

	return tx.Commit()
}

// LoadTable reads a stored table back, re-ranking rows by descending count
// with lexicographic tie-breaks and recomputing ratios against the stored
// total. ErrEmpty is returned for an unknown or empty table.
func (s *Store) LoadTable(ctx context.Context, name string) (Table, error) {
	var total int
	err := s.stmtGetMeta.QueryRowContext(ctx, name).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return Table{}, fmt.Errorf("%w: no stored table named '%s'", ErrEmpty, name)
	}
	if err != nil {
		return Table{}, fmt.Errorf("failed to read metadata for '%s': %w", name, err)
	}

	rows, err := s.stmtGetRows.QueryContext(ctx, name)
	if err != nil {
		return Table{}, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	t := Table{Name: name, Total: total}
	for rows.Next() {
		var e Entry
		if err = rows.Scan(&e.Symbol, &e.Count); err != nil {
			return Table{}, err
		}
		e.Rank = len(t.Entries) + 1
		if total > 0 {
			e.Ratio = float64(e.Count) / float64(total)
		}
		t.Entries = append(t.Entries, e)
	}
	if err = rows.Err(); err != nil {
		return Table{}, err
	}
	if len(t.Entries) == 0 {
		return Table{}, fmt.Errorf("%w: stored table '%s' has no rows", ErrEmpty, name)
	}
	return t, nil
}

// TableMeta describes one stored table.
type TableMeta struct {
	Name      string
	Total     int
	UpdatedAt string
}

// ListTables returns metadata for every stored table, sorted by name.
func (s *Store) ListTables(ctx context.Context) ([]TableMeta, error) {
	rows, err := s.stmtListMeta.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var metas []TableMeta
	for rows.Next() {
		var m TableMeta
		if err = rows.Scan(&m.Name, &m.Total, &m.UpdatedAt); err != nil {
			return nil, err
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}
