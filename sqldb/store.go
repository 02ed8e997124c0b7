package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL,
	whatsapp TEXT NOT NULL,
	hens_count INTEGER NOT NULL,
	delivery_time TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	special_instructions TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS orders_status_created ON orders (status, created_at DESC);

CREATE TABLE IF NOT EXISTS site_content (
	id TEXT PRIMARY KEY,
	body TEXT NOT NULL
);
`

type Store struct {
	DB *sql.DB
}

// Open opens the SQLite database at path and creates the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open sqlite %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection keeps conditional
	// updates strictly ordered.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open sqlite %s: %w", path, err)
	}

	s := &Store{DB: db}
	if err := s.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("sqldb: using %s", path)
	return s, nil
}

func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
