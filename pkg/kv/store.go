// Package kv defines the durable key-value port the data layer persists
// through, along with file, Redis, Postgres and in-memory backends.
package kv

import "context"

// Store persists opaque string blobs under named slot keys. Writes are
// durable once the call returns without error; Get reports absence
// separately from failure.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
