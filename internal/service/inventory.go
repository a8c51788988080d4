package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/efreitasn/resexchange/internal/buffer"
	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/efreitasn/resexchange/internal/store"
)

// CreateBufferRequest represents the input for creating an agent buffer.
// A nil Capacity falls back to the service default.
type CreateBufferRequest struct {
	Name     string
	Capacity *float64
}

// DepositRequest describes a new product pushed onto a buffer.
type DepositRequest struct {
	Quality  string
	Quantity float64
}

// BufferSummary is a point-in-time view of a buffer.
type BufferSummary struct {
	AgentID  string
	Name     string
	Size     int
	Quantity float64
	Capacity float64 // +Inf when unbounded
	Space    float64
	Entries  []EntrySummary
}

// EntrySummary describes a single buffer entry.
type EntrySummary struct {
	Key       string
	ProductID string
	Quality   string
	Quantity  float64
}

// InventoryService manages the buffers agents hold as physical inventory.
type InventoryService struct {
	agents          *store.AgentStore
	inventories     *store.InventoryStore
	defaultCapacity float64
	logger          *slog.Logger
}

// NewInventoryService creates a new InventoryService. A defaultCapacity of
// zero or less means new buffers are unbounded unless a capacity is given.
func NewInventoryService(
	agents *store.AgentStore,
	inventories *store.InventoryStore,
	defaultCapacity float64,
	logger *slog.Logger,
) *InventoryService {
	if defaultCapacity <= 0 {
		defaultCapacity = math.Inf(1)
	}
	return &InventoryService{
		agents:          agents,
		inventories:     inventories,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// CreateBuffer adds a named buffer to an agent.
func (s *InventoryService) CreateBuffer(agentID string, req CreateBufferRequest) (*BufferSummary, error) {
	if !s.agents.Exists(agentID) {
		return nil, domain.ErrAgentNotFound
	}
	if !nameRegex.MatchString(req.Name) {
		return nil, &domain.ValidationError{
			Message: "buffer name must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}

	capacity := s.defaultCapacity
	if req.Capacity != nil {
		if math.IsNaN(*req.Capacity) || *req.Capacity < 0 {
			return nil, &domain.ValidationError{Message: "capacity must be >= 0"}
		}
		capacity = *req.Capacity
	}

	buf := buffer.New[string, *domain.Product]()
	if err := buf.SetCapacity(capacity); err != nil {
		return nil, err
	}
	inv := &store.Inventory{
		AgentID: agentID,
		Name:    req.Name,
		Buffer:  buf,
	}
	if err := s.inventories.Create(inv); err != nil {
		return nil, err
	}

	s.logger.Info("buffer created",
		slog.String("agent_id", agentID),
		slog.String("buffer", req.Name),
		slog.Float64("capacity", capacity),
	)
	return summarize(inv), nil
}

// GetBuffer returns a summary of the named buffer.
func (s *InventoryService) GetBuffer(agentID, name string) (*BufferSummary, error) {
	inv, err := s.inventory(agentID, name)
	if err != nil {
		return nil, err
	}

	inv.Mu.Lock()
	defer inv.Mu.Unlock()
	return summarize(inv), nil
}

// ListBuffers returns summaries of all the agent's buffers sorted by name.
func (s *InventoryService) ListBuffers(agentID string) ([]*BufferSummary, error) {
	if !s.agents.Exists(agentID) {
		return nil, domain.ErrAgentNotFound
	}

	invs := s.inventories.ListByAgent(agentID)
	result := make([]*BufferSummary, len(invs))
	for i, inv := range invs {
		inv.Mu.Lock()
		result[i] = summarize(inv)
		inv.Mu.Unlock()
	}
	return result, nil
}

// SetCapacity changes a buffer's ceiling. It returns an error wrapping
// domain.ErrCapacityViolation if the buffer already holds more.
func (s *InventoryService) SetCapacity(agentID, name string, capacity float64) (*BufferSummary, error) {
	if math.IsNaN(capacity) || capacity < 0 {
		return nil, &domain.ValidationError{Message: "capacity must be >= 0"}
	}
	inv, err := s.inventory(agentID, name)
	if err != nil {
		return nil, err
	}

	inv.Mu.Lock()
	defer inv.Mu.Unlock()

	if err := inv.Buffer.SetCapacity(capacity); err != nil {
		s.logger.Debug("capacity change rejected",
			slog.String("agent_id", agentID),
			slog.String("buffer", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("capacity changed",
		slog.String("agent_id", agentID),
		slog.String("buffer", name),
		slog.Float64("capacity", capacity),
	)
	return summarize(inv), nil
}

// Deposit creates a product and pushes it onto the buffer, keyed by the
// product id.
func (s *InventoryService) Deposit(agentID, name string, req DepositRequest) (*domain.Product, error) {
	if math.IsNaN(req.Quantity) || math.IsInf(req.Quantity, 0) || req.Quantity < 0 {
		return nil, &domain.ValidationError{Message: "quantity must be a finite number >= 0"}
	}
	inv, err := s.inventory(agentID, name)
	if err != nil {
		return nil, err
	}

	p := domain.NewProduct(req.Quality, req.Quantity)

	inv.Mu.Lock()
	defer inv.Mu.Unlock()

	if err := inv.Buffer.Push(p.ID, p); err != nil {
		return nil, err
	}

	s.logger.Debug("product deposited",
		slog.String("agent_id", agentID),
		slog.String("buffer", name),
		slog.String("product_id", p.ID),
		slog.Float64("quantity", p.Qty),
	)
	return p, nil
}

// Withdraw removes a product from the buffer. With an empty key the oldest
// deposit is taken; otherwise the entry under key.
func (s *InventoryService) Withdraw(agentID, name, key string) (*domain.Product, error) {
	inv, err := s.inventory(agentID, name)
	if err != nil {
		return nil, err
	}

	inv.Mu.Lock()
	defer inv.Mu.Unlock()

	var p *domain.Product
	if key == "" {
		_, p, err = inv.Buffer.Pop()
	} else {
		p, err = inv.Buffer.PopKey(key)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("product withdrawn",
		slog.String("agent_id", agentID),
		slog.String("buffer", name),
		slog.String("product_id", p.ID),
	)
	return p, nil
}

// Erase discards the entry under key.
func (s *InventoryService) Erase(agentID, name, key string) error {
	inv, err := s.inventory(agentID, name)
	if err != nil {
		return err
	}

	inv.Mu.Lock()
	defer inv.Mu.Unlock()

	if inv.Buffer.Erase(key) == 0 {
		return fmt.Errorf("%w: key %s", domain.ErrResourceNotFound, key)
	}
	return nil
}

// Target returns the handle stored under key without removing it. The
// handle is shared: a request targeting it sees later quantity changes.
func (s *InventoryService) Target(agentID, name, key string) (*domain.Product, error) {
	inv, err := s.inventory(agentID, name)
	if err != nil {
		return nil, err
	}

	inv.Mu.Lock()
	defer inv.Mu.Unlock()

	p, ok := inv.Buffer.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: key %s", domain.ErrResourceNotFound, key)
	}
	return p, nil
}

func (s *InventoryService) inventory(agentID, name string) (*store.Inventory, error) {
	if !s.agents.Exists(agentID) {
		return nil, domain.ErrAgentNotFound
	}
	inv, err := s.inventories.Get(agentID, name)
	if errors.Is(err, domain.ErrBufferNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBufferNotFound, name)
	}
	return inv, err
}

// summarize must be called with inv.Mu held.
func summarize(inv *store.Inventory) *BufferSummary {
	buf := inv.Buffer
	entries := make([]EntrySummary, 0, buf.Size())
	buf.View(func(k string, p *domain.Product) bool {
		if p == nil {
			entries = append(entries, EntrySummary{Key: k})
			return true
		}
		entries = append(entries, EntrySummary{
			Key:       k,
			ProductID: p.ID,
			Quality:   p.Quality,
			Quantity:  p.Quantity(),
		})
		return true
	})

	return &BufferSummary{
		AgentID:  inv.AgentID,
		Name:     inv.Name,
		Size:     buf.Size(),
		Quantity: buf.Quantity(),
		Capacity: buf.Capacity(),
		Space:    buf.Space(),
		Entries:  entries,
	}
}
