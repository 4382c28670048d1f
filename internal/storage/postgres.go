package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

var postgresMigrations = []string{
	migrationPostgresKV,
}

const migrationPostgresKV = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

var postgresQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = $1`,
	set: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	del:   `DELETE FROM kv_store WHERE key = $1`,
	keys:  `SELECT key FROM kv_store ORDER BY key`,
	clear: `DELETE FROM kv_store`,
}

// OpenPostgres connects to the database at dsn and creates the kv_store table
func OpenPostgres(dsn string, timeout time.Duration) (KV, error) {
	if dsn == "" {
		return nil, errors.New("postgres storage requires a dsn")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db, postgresMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &sqlKV{db: db, q: postgresQueries, timeout: timeout}, nil
}
