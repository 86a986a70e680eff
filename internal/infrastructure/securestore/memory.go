package securestore

import (
	"context"
	"sync"

	"keep/internal/domain/vault"
)

// MemoryBackend хранит блобы в памяти процесса
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func addr(service, key string) string {
	return service + "\x00" + key
}

func (m *MemoryBackend) Get(_ context.Context, service, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.data[addr(service, key)]
	if !ok {
		return nil, vault.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *MemoryBackend) Insert(_ context.Context, service, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[addr(service, key)]; ok {
		return vault.ErrDuplicateKey
	}
	m.data[addr(service, key)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Put(_ context.Context, service, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[addr(service, key)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, service, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[addr(service, key)]; !ok {
		return vault.ErrNotFound
	}
	delete(m.data, addr(service, key))
	return nil
}
