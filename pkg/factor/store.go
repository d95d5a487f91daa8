package factor

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrFactorNotFound indicates no factor is stored under the requested ID.
var ErrFactorNotFound = errors.New("factor: not found")

// Factor is an enrolled TOTP secret.
type Factor struct {
	ID        string
	Account   string
	Issuer    string
	Secret    string
	CreatedAt time.Time
}

// Store persists factors. Implementations must be safe for concurrent use
// and return ErrFactorNotFound for unknown IDs.
type Store interface {
	Save(ctx context.Context, f Factor) error
	Load(ctx context.Context, id string) (Factor, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	factors map[string]Factor
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{factors: make(map[string]Factor)}
}

// Save stores f, replacing any factor with the same ID.
func (m *MemoryStore) Save(ctx context.Context, f Factor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factors[f.ID] = f
	return nil
}

// Load returns the factor stored under id.
func (m *MemoryStore) Load(ctx context.Context, id string) (Factor, error) {
	if err := ctx.Err(); err != nil {
		return Factor{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.factors[id]
	if !ok {
		return Factor{}, ErrFactorNotFound
	}
	return f, nil
}

// Delete removes the factor stored under id.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.factors[id]; !ok {
		return ErrFactorNotFound
	}
	delete(m.factors, id)
	return nil
}
