package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jewelsoft/estima-api/internal/domain/entity"
)

// PendingStore holds each operator's pending line-item set between
// entry capture and submission. State is in-memory and scoped per
// operator: a crash loses only unsubmitted entries.
type PendingStore struct {
	mu   sync.Mutex
	sets map[uuid.UUID][]entity.LineItem
}

// NewPendingStore creates an empty pending store.
func NewPendingStore() *PendingStore {
	return &PendingStore{sets: make(map[uuid.UUID][]entity.LineItem)}
}

// Items returns a copy of the operator's pending set.
func (p *PendingStore) Items(userID uuid.UUID) []entity.LineItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := p.sets[userID]
	out := make([]entity.LineItem, len(items))
	copy(out, items)
	return out
}

// Append adds line items to the operator's pending set.
func (p *PendingStore) Append(userID uuid.UUID, items []entity.LineItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sets[userID] = append(p.sets[userID], items...)
}

// HasKey reports whether any pending line item carries the given
// item/tag/employee key.
func (p *PendingStore) HasKey(userID uuid.UUID, key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, li := range p.sets[userID] {
		if li.Key() == key {
			return true
		}
	}
	return false
}

// RemoveKey drops every line item carrying the given key and reports
// how many were removed.
func (p *PendingStore) RemoveKey(userID uuid.UUID, key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := p.sets[userID]
	kept := items[:0]
	removed := 0
	for _, li := range items {
		if li.Key() == key {
			removed++
			continue
		}
		kept = append(kept, li)
	}
	p.sets[userID] = kept
	return removed
}

// Clear empties the operator's pending set.
func (p *PendingStore) Clear(userID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sets, userID)
}

// Len returns the number of pending line items for the operator.
func (p *PendingStore) Len(userID uuid.UUID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sets[userID])
}
