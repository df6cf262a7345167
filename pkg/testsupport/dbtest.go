package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var memoryDBSeq atomic.Int64

// NewSQLiteMemoryDB opens a private shared-cache in-memory database. Each call
// gets its own database so tests never observe each other's rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:sections_test_%d?mode=memory&cache=shared&_foreign_keys=on", memoryDBSeq.Add(1))
	return sql.Open("sqlite3", name)
}
