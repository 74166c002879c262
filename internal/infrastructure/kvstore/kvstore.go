// Package kvstore holds the JSON codec and mirrored-write helper shared by
// every store that persists through the repository.Storage port.
package kvstore

import (
	"context"
	"encoding/json"

	"marketplace/internal/domain/repository"
	"marketplace/pkg/logger"
)

// LoadJSON decodes the value under key into dst. Absent keys, storage errors
// and malformed payloads all leave dst untouched and report false; the
// failures are logged, never returned.
func LoadJSON[T any](ctx context.Context, s repository.Storage, key string, dst *T) bool {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to read key %s: %v", key, err)
		return false
	}
	if !found || raw == "" {
		return false
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Error("Malformed data under key %s, treating as empty: %v", key, err)
		return false
	}
	*dst = v
	return true
}

// SaveJSON encodes v and writes it under key. Errors are logged and returned
// so callers can decide whether to care; stores never surface them.
func SaveJSON(ctx context.Context, s repository.Storage, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode value for key %s: %v", key, err)
		return err
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		logger.Error("Failed to write key %s: %v", key, err)
		return err
	}
	return nil
}

// MirrorWrite applies mutate to the list persisted under another user's
// partition key and writes the result back. It is a plain read-modify-write:
// there is no transaction and no conflict detection, so two sessions writing
// the same partition race and the last write wins. Failures are logged and
// reported as false, never raised.
func MirrorWrite[T any](ctx context.Context, s repository.Storage, key string, mutate func([]T) []T) bool {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		logger.LogMirrorError(key, "read", err)
		return false
	}

	var items []T
	if found && raw != "" {
		// A corrupt partition is left as is rather than overwritten.
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			logger.LogMirrorError(key, "decode", err)
			return false
		}
	}

	items = mutate(items)

	data, err := json.Marshal(items)
	if err != nil {
		logger.LogMirrorError(key, "encode", err)
		return false
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		logger.LogMirrorError(key, "write", err)
		return false
	}
	return true
}
