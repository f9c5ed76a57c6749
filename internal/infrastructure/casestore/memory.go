// Package casestore provides the in-memory caselaw.Repository used by
// single-node deployments and tests. The corpus is loaded once at
// startup from dataset files, so a map plus an insertion-order slice
// covers the whole contract.
package casestore

import (
	"context"
	"sort"
	"sync"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// Memory implements caselaw.Repository in process. Safe for concurrent
// use.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]int
	cases []caselaw.CaseRecord
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]int)}
}

func (m *Memory) Save(_ context.Context, rec *caselaw.CaseRecord) error {
	if rec == nil || rec.ID == "" {
		return errors.Validation("case record requires an id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.byID[rec.ID]; ok {
		m.cases[i] = *rec
		return nil
	}
	m.byID[rec.ID] = len(m.cases)
	m.cases = append(m.cases, *rec)
	return nil
}

func (m *Memory) ByID(_ context.Context, id string) (*caselaw.CaseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeCaseNotFound, "case not found").WithDetail(id)
	}
	rec := m.cases[i]
	return &rec, nil
}

// List returns the corpus sorted by case ID so successive calls agree
// on ordinals, matching the postgres store's ORDER BY id.
func (m *Memory) List(_ context.Context) ([]caselaw.CaseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]caselaw.CaseRecord, len(m.cases))
	copy(out, m.cases)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cases), nil
}
