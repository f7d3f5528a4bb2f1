// Package storage holds helpers shared by the key-value store adapters.
package storage

import (
	"context"

	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Namespaced prefixes every key before delegating to the wrapped store.
// One shared backend can hold many sessions this way.
type Namespaced struct {
	store  ports.KeyValueStore
	prefix string
}

// NewNamespaced wraps store so that every key is stored as prefix+key.
func NewNamespaced(store ports.KeyValueStore, prefix string) *Namespaced {
	if store == nil {
		panic("storage: Namespaced requires a store")
	}

	return &Namespaced{store: store, prefix: prefix}
}

// SessionPrefix returns the key prefix used for one session.
func SessionPrefix(sessionID string) string {
	return "session:" + sessionID + ":"
}

// ForSession wraps store for the session identified by sessionID.
func ForSession(store ports.KeyValueStore, sessionID string) *Namespaced {
	return NewNamespaced(store, SessionPrefix(sessionID))
}

// Get returns the value stored under the prefixed key.
func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.prefix+key)
}

// Set overwrites the value stored under the prefixed key.
func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

// Delete removes the prefixed key.
func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.prefix+key)
}

var _ ports.KeyValueStore = (*Namespaced)(nil)
