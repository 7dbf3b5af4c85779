// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/soundtrail/internal/config"
	"github.com/tomtom215/soundtrail/internal/logging"
)

const schema = `CREATE TABLE IF NOT EXISTS plays (
	seq               BIGINT PRIMARY KEY,
	day               INTEGER NOT NULL,
	ts_ns             BIGINT NOT NULL,
	ms_played         BIGINT NOT NULL,
	platform          VARCHAR,
	country           VARCHAR,
	artist            VARCHAR,
	track             VARCHAR,
	album             VARCHAR,
	episode_name      VARCHAR,
	episode_show      VARCHAR,
	audiobook_title   VARCHAR,
	audiobook_chapter VARCHAR,
	reason_start      VARCHAR,
	reason_end        VARCHAR,
	skipped           BOOLEAN,
	shuffle           BOOLEAN
)`

const dayIndex = `CREATE INDEX IF NOT EXISTS idx_plays_day ON plays(day)`

// DB wraps the DuckDB connection holding the mirrored records.
type DB struct {
	conn *sql.DB
	cfg  config.StoreConfig
	loc  *time.Location

	mu     sync.RWMutex
	rows   int
	closed bool
}

// New opens the DuckDB database described by cfg and creates the schema.
// An empty path opens an in-memory database.
func New(cfg config.StoreConfig, loc *time.Location) (*DB, error) {
	if loc == nil {
		loc = time.Local
	}
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg, loc: loc}
	if err := db.initialize(context.Background()); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func (db *DB) initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create plays table: %w", err)
	}
	if _, err := db.conn.ExecContext(ctx, dayIndex); err != nil {
		logging.Warn().Err(err).Msg("Failed to create day index, window queries will scan")
	}
	return nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return ErrClosed
	}
	return db.conn.PingContext(ctx)
}

// Rows returns the number of mirrored records.
func (db *DB) Rows() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.rows
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil
	}
	db.closed = true
	return db.conn.Close()
}
