package storage

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"
)

const postgresPath = "postgres:fountain_log"

// PostgresStorage mirrors log entries into a Postgres table
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new postgres storage instance
// dsn format: "user=username password=pass dbname=fountain host=localhost port=5432 sslmode=disable"
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	ps := &PostgresStorage{db: db}
	if err := ps.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Connected to Postgres database")
	return ps, nil
}

func (ps *PostgresStorage) createTables() error {
	tableSQL := `
	CREATE TABLE IF NOT EXISTS fountain_log (
		id UUID PRIMARY KEY,
		received_at TIMESTAMPTZ NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := ps.db.Exec(tableSQL); err != nil {
		return err
	}

	indexSQL := `CREATE INDEX IF NOT EXISTS idx_fountain_log_received_at ON fountain_log(received_at);`
	if _, err := ps.db.Exec(indexSQL); err != nil {
		return err
	}
	return nil
}

// Append inserts one row. Rows whose id already exists are left untouched,
// so re-importing the same entries is harmless.
func (ps *PostgresStorage) Append(entry Entry) error {
	id := entry.ID
	if id == "" {
		id = NewID()
	}

	_, err := ps.db.Exec(
		`INSERT INTO fountain_log (id, received_at, message)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		id,
		entry.Time,
		entry.Message,
	)
	if err != nil {
		return &LogWriteError{Path: postgresPath, Err: err}
	}
	return nil
}

// Count returns the number of stored entries.
func (ps *PostgresStorage) Count() (int, error) {
	var n int
	err := ps.db.QueryRow(`SELECT COUNT(*) FROM fountain_log`).Scan(&n)
	return n, err
}

// Close closes the database connection
func (ps *PostgresStorage) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
