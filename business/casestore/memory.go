package casestore

import (
	"context"
	"sync"

	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

// MemoryStore keeps cases in a map. Values are copied in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	cases map[string]fraudcase.FraudCase
}

func NewMemoryStore(cases ...fraudcase.FraudCase) *MemoryStore {
	m := MemoryStore{
		cases: make(map[string]fraudcase.FraudCase, len(cases)),
	}
	for _, c := range cases {
		m.cases[c.Key()] = c.Clone()
	}
	return &m
}

func (m *MemoryStore) Find(ctx context.Context, customerName string) (fraudcase.FraudCase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cases[fraudcase.Key(customerName)]
	if !ok {
		return fraudcase.FraudCase{}, fraudcase.ErrNotFound
	}
	return c.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, c fraudcase.FraudCase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cases[c.Key()] = c.Clone()
	return nil
}
