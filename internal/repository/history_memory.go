package repository

import (
	"context"
	"sync"
)

// HistoryMemory is an in-memory implementation of HistoryRepository.
type HistoryMemory struct {
	mu   sync.RWMutex
	data []HistoryRecord
}

func NewHistoryMemory() *HistoryMemory {
	return &HistoryMemory{
		data: []HistoryRecord{},
	}
}

func (r *HistoryMemory) Save(_ context.Context, rec HistoryRecord) error {
	r.mu.Lock()
	r.data = append(r.data, rec)
	r.mu.Unlock()
	return nil
}

func (r *HistoryMemory) List(_ context.Context, tenantID string, limit int) ([]HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []HistoryRecord{}
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		if tenantID == "" || r.data[i].TenantID == tenantID {
			out = append(out, r.data[i])
		}
	}
	return out, nil
}
