// Package sqlite opens docset indexes with github.com/ncruces/go-sqlite3
// and implements zealdoc.Docset on top of them.
package sqlite

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB is a single connection to a docset index. It holds at most one active
// statement: Execute finalizes the previous statement before preparing the
// next one, so callers must drain a result set before issuing another query.
//
// Calls are serialized with a mutex, so a DB may be shared between
// goroutines, but interleaving Execute/Next from two goroutines still
// steps a single cursor.
type DB struct {
	mu      sync.Mutex
	conn    *sqlite3.Conn
	stmt    *sqlite3.Stmt
	lastErr string
	path    string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database read-write without creating it and registers
// the zealScore function on the connection.
func (db *DB) Open() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	flags := sqlite3.OPEN_READWRITE
	if db.path == ":memory:" {
		flags |= sqlite3.OPEN_CREATE
	}

	conn, err := sqlite3.OpenFlags(db.path, flags)
	if err != nil {
		db.lastErr = err.Error()
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := registerScore(conn); err != nil {
		conn.Close()
		db.lastErr = err.Error()
		return fmt.Errorf("failed to register score function: %w", err)
	}

	db.conn = conn
	return nil
}

// IsOpen reports whether the connection is open.
func (db *DB) IsOpen() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn != nil
}

// Close finalizes the active statement and closes the connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.finalize()
	if db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	return err
}

// Execute prepares query as the active statement, binding args to its
// positional parameters. It fails if query holds more than one statement.
// The failure is also recorded in LastError.
func (db *DB) Execute(query string, args ...any) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.conn == nil {
		return fmt.Errorf("database is not open")
	}
	db.finalize()
	db.lastErr = ""

	stmt, tail, err := db.conn.Prepare(query)
	if err != nil {
		db.lastErr = err.Error()
		return err
	}
	if stmt == nil {
		db.lastErr = "empty statement"
		return fmt.Errorf("%s: %q", db.lastErr, query)
	}
	if strings.TrimSpace(tail) != "" {
		stmt.Close()
		db.lastErr = "multiple statements are not allowed"
		return fmt.Errorf("%s: %q", db.lastErr, tail)
	}
	if err := bind(stmt, args); err != nil {
		stmt.Close()
		db.lastErr = err.Error()
		return err
	}

	db.stmt = stmt
	return nil
}

// Next advances the active statement to its next row. It returns false
// when the rows are exhausted or stepping failed; a failure is reported
// by LastError.
func (db *DB) Next() bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.stmt == nil {
		return false
	}
	if db.stmt.Step() {
		return true
	}
	if err := db.stmt.Err(); err != nil {
		db.lastErr = err.Error()
	}
	return false
}

// Value returns column i of the current row. An out of range column yields
// the zero Value.
func (db *DB) Value(i int) Value {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.stmt == nil || i < 0 || i >= db.stmt.ColumnCount() {
		return Value{}
	}

	switch db.stmt.ColumnType(i) {
	case sqlite3.INTEGER:
		return Value{kind: KindInteger, i: db.stmt.ColumnInt64(i)}
	case sqlite3.NULL:
		return Value{kind: KindNull}
	default:
		return Value{kind: KindText, s: db.stmt.ColumnText(i)}
	}
}

// LastError returns the message of the most recent failure, or "" if the
// last Execute succeeded and no step has failed since.
func (db *DB) LastError() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.lastErr
}

// Tables returns the names of all tables, including temporary ones.
func (db *DB) Tables() ([]string, error) {
	if err := db.Execute(`
		SELECT name FROM sqlite_master WHERE type = 'table'
		UNION ALL
		SELECT name FROM sqlite_temp_master WHERE type = 'table'
	`); err != nil {
		return nil, err
	}
	var tables []string
	for db.Next() {
		tables = append(tables, db.Value(0).String())
	}
	return tables, db.err()
}

// err converts a step failure recorded during iteration into an error.
func (db *DB) err() error {
	if msg := db.LastError(); msg != "" {
		return fmt.Errorf("sqlite: %s", msg)
	}
	return nil
}

// finalize closes the active statement. Callers hold db.mu.
func (db *DB) finalize() {
	if db.stmt != nil {
		db.stmt.Close()
		db.stmt = nil
	}
}

func bind(stmt *sqlite3.Stmt, args []any) error {
	for i, arg := range args {
		param := i + 1
		var err error
		switch v := arg.(type) {
		case nil:
			err = stmt.BindNull(param)
		case string:
			err = stmt.BindText(param, v)
		case int:
			err = stmt.BindInt64(param, int64(v))
		case int64:
			err = stmt.BindInt64(param, v)
		case bool:
			err = stmt.BindBool(param, v)
		default:
			err = fmt.Errorf("unsupported argument type %T", arg)
		}
		if err != nil {
			return fmt.Errorf("binding parameter %d: %w", param, err)
		}
	}
	return nil
}
