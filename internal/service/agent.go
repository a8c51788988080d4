package service

import (
	"log/slog"
	"regexp"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/efreitasn/resexchange/internal/store"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// RegisterAgentRequest represents the input for agent registration.
type RegisterAgentRequest struct {
	Name string
}

// AgentService handles agent registration and lookup.
type AgentService struct {
	store  *store.AgentStore
	logger *slog.Logger
}

// NewAgentService creates a new AgentService.
func NewAgentService(store *store.AgentStore, logger *slog.Logger) *AgentService {
	return &AgentService{
		store:  store,
		logger: logger,
	}
}

// Register validates the request and creates an agent with a fresh id.
func (s *AgentService) Register(req RegisterAgentRequest) (*domain.Agent, error) {
	if !nameRegex.MatchString(req.Name) {
		return nil, &domain.ValidationError{
			Message: "name must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}

	agent := domain.NewAgent(req.Name)
	s.store.Create(agent)

	s.logger.Info("agent registered",
		slog.String("agent_id", agent.AgentID),
		slog.String("name", agent.Name),
	)
	return agent, nil
}

// Get retrieves an agent by ID.
func (s *AgentService) Get(agentID string) (*domain.Agent, error) {
	return s.store.Get(agentID)
}
