//go:build !cgo_sqlite

package freq

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenDB opens the stats database with the pure-Go SQLite driver.
func OpenDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite", dataSource)
}
