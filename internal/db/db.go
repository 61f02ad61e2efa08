// Package db provides PostgreSQL access for the portfolio records: companies,
// founders, and investments. The database itself is a managed service; this
// layer is plain SQL over a pgx pool.
package db

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName lowercases and strips punctuation so "Acme, Inc." and
// "acme inc" resolve to the same company.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, ", inc.")
	n = strings.TrimSuffix(n, " inc.")
	n = strings.TrimSuffix(n, " inc")
	n = strings.TrimSuffix(n, " llc")
	n = strings.TrimSuffix(n, " ltd")
	n = nonAlnumRe.ReplaceAllString(n, " ")
	return strings.Join(strings.Fields(n), " ")
}
