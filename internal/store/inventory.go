package store

import (
	"sort"
	"sync"

	"github.com/efreitasn/resexchange/internal/buffer"
	"github.com/efreitasn/resexchange/internal/domain"
)

// Inventory is one named buffer owned by an agent. Buffers are not safe
// for concurrent use, so callers hold Mu around every buffer operation.
type Inventory struct {
	AgentID string
	Name    string
	Buffer  *buffer.ResMap[string, *domain.Product]
	Mu      sync.Mutex
}

// InventoryStore is a thread-safe in-memory store for inventories,
// indexed by agent_id and then buffer name.
type InventoryStore struct {
	mu      sync.RWMutex
	byAgent map[string]map[string]*Inventory // agent_id → name → inventory
}

// NewInventoryStore creates an empty InventoryStore.
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{
		byAgent: make(map[string]map[string]*Inventory),
	}
}

// Create adds an inventory. It returns domain.ErrBufferExists if the agent
// already has a buffer with the same name.
func (s *InventoryStore) Create(inv *Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.byAgent[inv.AgentID]
	if names == nil {
		names = make(map[string]*Inventory)
		s.byAgent[inv.AgentID] = names
	}
	if _, exists := names[inv.Name]; exists {
		return domain.ErrBufferExists
	}
	names[inv.Name] = inv
	return nil
}

// Get retrieves an agent's inventory by name. It returns
// domain.ErrBufferNotFound if it does not exist.
func (s *InventoryStore) Get(agentID, name string) (*Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.byAgent[agentID][name]
	if !ok {
		return nil, domain.ErrBufferNotFound
	}
	return inv, nil
}

// ListByAgent returns the agent's inventories sorted by name.
// Returns an empty slice if the agent has none.
func (s *InventoryStore) ListByAgent(agentID string) []*Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.byAgent[agentID]
	result := make([]*Inventory, 0, len(names))
	for _, inv := range names {
		result = append(result, inv)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
