package store

import (
	"sync"

	"github.com/efreitasn/resexchange/internal/domain"
)

// AgentStore is a thread-safe in-memory store for agents,
// keyed by agent_id.
type AgentStore struct {
	mu     sync.RWMutex
	agents map[string]*domain.Agent
}

// NewAgentStore creates an empty AgentStore.
func NewAgentStore() *AgentStore {
	return &AgentStore{
		agents: make(map[string]*domain.Agent),
	}
}

// Create adds an agent to the store, keyed by its ID.
func (s *AgentStore) Create(a *domain.Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agents[a.AgentID] = a
}

// Get retrieves an agent by ID. It returns
// domain.ErrAgentNotFound if the agent does not exist.
func (s *AgentStore) Get(id string) (*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[id]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	return a, nil
}

// Exists returns true if an agent with the given ID exists.
func (s *AgentStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.agents[id]
	return ok
}
