package db

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var (
	db   *sql.DB
	once sync.Once
)

const schema = `
CREATE TABLE IF NOT EXISTS Session (
	id          TEXT PRIMARY KEY,
	token       TEXT NOT NULL,
	user_id     INTEGER NOT NULL,
	username    TEXT NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	first_name  TEXT NOT NULL DEFAULT '',
	last_name   TEXT NOT NULL DEFAULT '',
	role        TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	expires_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_session_expires_at ON Session(expires_at);
`

// Init opens the session database and creates the schema
func Init(databaseURL string) error {
	var err error
	once.Do(func() {
		db, err = sql.Open("sqlite3", databaseURL)
		if err != nil {
			zap.S().Errorf("[DB] failed to open database: %v", err)
			return
		}
		// sqlite serializes writers; one connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)

		if err = db.Ping(); err != nil {
			zap.S().Errorf("[DB] failed to ping database: %v", err)
			return
		}

		if err = Migrate(db); err != nil {
			zap.S().Errorf("[DB] failed to create schema: %v", err)
			return
		}

		zap.S().Infof("[DB] database initialized: %s", databaseURL)
	})
	return err
}

// Migrate creates the tables the site needs. It is idempotent.
func Migrate(conn *sql.DB) error {
	_, err := conn.Exec(schema)
	return err
}

// Get returns the database connection
func Get() *sql.DB {
	if db == nil {
		panic("Database not initialized. Call db.Init() first.")
	}
	return db
}

// SetForTesting sets the database connection for testing
func SetForTesting(database *sql.DB) {
	db = database
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
