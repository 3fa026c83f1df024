package service

import (
	"context"
	"sync"
)

// memState is an in-memory StateRepository used across the service tests.
type memState struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMemState() *memState {
	return &memState{values: map[string]string{}}
}

func (m *memState) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memState) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memState) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
