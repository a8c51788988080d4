package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent represents a registered participant of the exchange. Agents are
// compared by pointer, so one *Agent is one requester identity.
type Agent struct {
	AgentID   string
	Name      string
	CreatedAt time.Time
}

// NewAgent creates an agent with a fresh id.
func NewAgent(name string) *Agent {
	return &Agent{
		AgentID:   uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// TraderID returns the agent id.
func (a *Agent) TraderID() string {
	return a.AgentID
}
