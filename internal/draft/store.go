// Package draft implements the persistence controller for in-progress
// investment wizard forms: debounced auto-save, restore on mount, and a
// pluggable durable key-value store.
package draft

import "context"

// Store is the durable key-value backend for draft snapshots. No
// transactions and no multi-key atomicity: a single writer per form key is
// assumed (one admin session per form). Concurrent sessions on the same key
// silently overwrite each other.
type Store interface {
	// Get returns the stored snapshot bytes for key, with ok=false when no
	// snapshot exists.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set overwrites the snapshot for key.
	Set(ctx context.Context, key string, data []byte) error
	// Remove deletes the snapshot for key. Removing an absent key is not an
	// error.
	Remove(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
