// Package memory provides an in-memory key-value store for development and tests
package memory

import (
	"context"
	"sync"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

// KVRepository implements outbound.KeyValueStore in process memory
type KVRepository struct {
	data  map[string]string
	mutex sync.RWMutex
}

// NewKVRepository creates an empty store
func NewKVRepository() *KVRepository {
	return &KVRepository{data: make(map[string]string)}
}

// Get retrieves a value
func (r *KVRepository) Get(_ context.Context, key string) (string, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return "", outbound.ErrKeyNotFound
	}
	return value, nil
}

// Set stores a value
func (r *KVRepository) Set(_ context.Context, key, value string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[key] = value
	return nil
}

// Delete removes a value
func (r *KVRepository) Delete(_ context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

func (r *KVRepository) Ping(context.Context) error { return nil }
func (r *KVRepository) Close() error               { return nil }
