// Package postgres implements the store driver on PostgreSQL, the
// backend for multi-user deployments.
package postgres

import (
	"context"
	"database/sql"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/internal/profile"
	"github.com/praka2hb/synergi/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{db: db, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS conversation (
	id SERIAL PRIMARY KEY,
	uid TEXT NOT NULL UNIQUE,
	creator_id INTEGER NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	agent_id TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS message (
	id SERIAL PRIMARY KEY,
	uid TEXT NOT NULL UNIQUE,
	conversation_id INTEGER NOT NULL REFERENCES conversation (id) ON DELETE CASCADE,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	metadata TEXT NOT NULL DEFAULT '{}',
	created_ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_conversation_creator ON conversation (creator_id);
CREATE INDEX IF NOT EXISTS idx_message_conversation ON message (conversation_id);
`

func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
