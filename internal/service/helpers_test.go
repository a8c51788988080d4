package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/efreitasn/resexchange/internal/store"
)

// testEnv bundles the services with shared stores.
type testEnv struct {
	agentSvc     *AgentService
	inventorySvc *InventoryService
	exchangeSvc  *ExchangeService
	portfolios   *store.PortfolioStore
}

func newTestEnv(defaultCapacity float64) *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	agents := store.NewAgentStore()
	inventories := store.NewInventoryStore()
	portfolios := store.NewPortfolioStore()

	inventorySvc := NewInventoryService(agents, inventories, defaultCapacity, logger)
	return &testEnv{
		agentSvc:     NewAgentService(agents, logger),
		inventorySvc: inventorySvc,
		exchangeSvc:  NewExchangeService(agents, inventorySvc, portfolios, logger),
		portfolios:   portfolios,
	}
}

func (env *testEnv) registerAgent(t *testing.T, name string) *domain.Agent {
	t.Helper()
	a, err := env.agentSvc.Register(RegisterAgentRequest{Name: name})
	if err != nil {
		t.Fatalf("register agent %s: %v", name, err)
	}
	return a
}

func (env *testEnv) createBuffer(t *testing.T, agentID, name string, capacity *float64) {
	t.Helper()
	if _, err := env.inventorySvc.CreateBuffer(agentID, CreateBufferRequest{Name: name, Capacity: capacity}); err != nil {
		t.Fatalf("create buffer %s: %v", name, err)
	}
}

func (env *testEnv) deposit(t *testing.T, agentID, name string, qty float64) *domain.Product {
	t.Helper()
	p, err := env.inventorySvc.Deposit(agentID, name, DepositRequest{Quality: "q", Quantity: qty})
	if err != nil {
		t.Fatalf("deposit %v into %s: %v", qty, name, err)
	}
	return p
}

func ptr[T any](v T) *T {
	return &v
}
