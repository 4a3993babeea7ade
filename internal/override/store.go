// Package override keeps the session-scoped set of orders an operator has
// marked as rerouted. Entries live for the lifetime of the process.
package override

import (
	"fmt"
	"sync"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

// MitigationPercent is the risk reduction quoted back to the caller on reroute.
const MitigationPercent = 45

type Store struct {
	mu        sync.RWMutex
	recovered map[int64]bool
}

func NewStore() *Store {
	return &Store{recovered: make(map[int64]bool)}
}

// Reroute marks orderID as recovered. Repeated calls leave the same state.
func (s *Store) Reroute(orderID int64) contracts.Message {
	s.mu.Lock()
	s.recovered[orderID] = true
	s.mu.Unlock()

	return contracts.Message{Msg: fmt.Sprintf("Order %d rerouted. Risk mitigated by %d%%.", orderID, MitigationPercent)}
}

func (s *Store) IsRecovered(orderID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recovered[orderID]
}

// Snapshot returns a copy of the recovered set. Readers compute a whole
// response against one snapshot so counts and labels never disagree.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[int64]struct{}, len(s.recovered))
	for id := range s.recovered {
		ids[id] = struct{}{}
	}
	return Snapshot{ids: ids}
}

type Snapshot struct {
	ids map[int64]struct{}
}

func (s Snapshot) Has(orderID int64) bool {
	_, ok := s.ids[orderID]
	return ok
}

func (s Snapshot) Len() int {
	return len(s.ids)
}

// Apply returns a copy of orders with the delayed flag cleared on every
// recovered order. The input slice is not modified.
func (s Snapshot) Apply(orders []contracts.Order) []contracts.Order {
	out := make([]contracts.Order, len(orders))
	copy(out, orders)
	if len(s.ids) == 0 {
		return out
	}
	for i := range out {
		if s.Has(out[i].ID) {
			out[i].Delayed = false
		}
	}
	return out
}
