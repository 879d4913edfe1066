// Package kv defines the key-value persistence contract the voucher core
// is built against. Backends (file, redis, postgres) live in sibling
// packages; the core only ever sees Load and Save on logical store names.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Load when no record exists for the key.
	// First runs are expected to hit this; callers fall back to defaults.
	ErrNotFound = errors.New("kv: key not found")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = errors.New("kv: store unavailable")

	// ErrEmptyKey is returned when an empty key is provided.
	ErrEmptyKey = errors.New("kv: key cannot be empty")
)

// Store is the durable key-value contract. Values are opaque serialized
// documents keyed by logical store name ("roster", "voucherLog").
type Store interface {
	// Load returns the stored document, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores the document under the key, replacing any prior value.
	Save(ctx context.Context, key string, data []byte) error
}

// Memory is an in-memory Store used for tests and for degraded sessions
// where no durable backend is reachable.
type Memory struct {
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[key] = stored
	return nil
}
