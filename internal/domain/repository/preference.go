// Package repository defines persistence interfaces for the domain layer.
package repository

import "context"

// PreferenceRepository defines durable storage for profile preferences:
// integer scalars and ordered string lists, each addressed by a key.
// Writes replace the whole stored value; the preference layer above keeps
// the authoritative in-memory copy and flushes through this interface.
type PreferenceRepository interface {
	// LoadInt returns the stored scalar for key. found is false when the key
	// has never been written.
	LoadInt(ctx context.Context, key string) (value int64, found bool, err error)

	// SaveInt stores the scalar for key, overwriting any previous value.
	SaveInt(ctx context.Context, key string, value int64) error

	// LoadList returns the stored list for key, empty when never written.
	LoadList(ctx context.Context, key string) ([]string, error)

	// SaveList replaces the stored list for key with values, preserving order.
	SaveList(ctx context.Context, key string, values []string) error
}
