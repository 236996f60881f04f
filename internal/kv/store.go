// Package kv is the flat key-value persistence contract the profile, body-fat
// and photo components write their JSON blobs through, plus its backends.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys owned or read by this service.
const (
	KeyUserProfile    = "userProfile"
	KeyBodyFatHistory = "bodyFatHistory"
	KeyProgressPhotos = "progressPhotos"
)

var (
	// ErrNotFound is returned by Get for a key that has never been written or
	// has been removed.
	ErrNotFound = errors.New("kv: key not found")
	// ErrMalformed wraps a decode failure of a stored value.
	ErrMalformed = errors.New("kv: malformed value")
)

// Store is a flat blob store. Put overwrites atomically from the caller's
// point of view; Remove is idempotent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Closer is implemented by backends that hold connections.
type Closer interface {
	Close(ctx context.Context) error
}

// GetJSON decodes the value at key into dst. A missing key returns
// (false, nil); a value that does not decode returns ErrMalformed.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w at %q: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// PutJSON encodes v and writes it at key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %q: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}
