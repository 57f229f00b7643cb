package casestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

// JSONStore keeps the whole collection as one JSON array document on disk.
// Every Save replaces the document atomically, so a reader of the file sees
// either the old or the new collection, never a partial write.
type JSONStore struct {
	path string

	mu    sync.RWMutex
	cases []fraudcase.FraudCase
	index map[string]int
}

// OpenJSON loads the document at path. A missing file starts an empty
// collection that is created on the first Save.
func OpenJSON(path string) (*JSONStore, error) {
	s := JSONStore{
		path:  path,
		index: make(map[string]int),
	}

	cases, err := LoadDocument(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, unavailable("open json store", err)
	}

	for _, c := range cases {
		if i, exists := s.index[c.Key()]; exists {
			return nil, fmt.Errorf("open json store: duplicate case[%s] at %d", c.CustomerName, i)
		}
		s.index[c.Key()] = len(s.cases)
		s.cases = append(s.cases, c)
	}

	return &s, nil
}

func (s *JSONStore) Find(ctx context.Context, customerName string) (fraudcase.FraudCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[fraudcase.Key(customerName)]
	if !ok {
		return fraudcase.FraudCase{}, fraudcase.ErrNotFound
	}
	return s.cases[i].Clone(), nil
}

func (s *JSONStore) Save(ctx context.Context, c fraudcase.FraudCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]fraudcase.FraudCase, len(s.cases), len(s.cases)+1)
	copy(next, s.cases)

	i, exists := s.index[c.Key()]
	if exists {
		next[i] = c.Clone()
	} else {
		i = len(next)
		next = append(next, c.Clone())
	}

	if err := s.write(next); err != nil {
		return err
	}

	s.cases = next
	s.index[c.Key()] = i

	return nil
}

// Path returns the document location.
func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) write(cases []fraudcase.FraudCase) error {
	b, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return unavailable("encode case document", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cases-*.json")
	if err != nil {
		return unavailable("write case document", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return unavailable("write case document", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return unavailable("sync case document", err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("close case document", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return unavailable("replace case document", err)
	}

	return nil
}
