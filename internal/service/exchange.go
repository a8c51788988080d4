package service

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/efreitasn/resexchange/internal/exchange"
	"github.com/efreitasn/resexchange/internal/store"
)

// RequestInput describes one request of a portfolio. The target is either
// an existing buffer entry (Buffer and Key set), which the request then
// shares with the buffer, or a new product described by Quality and
// Quantity.
type RequestInput struct {
	Commodity  string
	Preference float64
	Buffer     string
	Key        string
	Quality    string
	Quantity   float64
}

// ConstraintInput describes one capacity constraint.
type ConstraintInput struct {
	Capacity  float64
	Converter string
}

// SubmitPortfolioRequest represents the input for submitting a portfolio.
type SubmitPortfolioRequest struct {
	RequesterID string
	Requests    []RequestInput
	Constraints []ConstraintInput
}

// AddRequestsRequest represents the input for adding requests to an
// already submitted portfolio.
type AddRequestsRequest struct {
	RequesterID string
	Requests    []RequestInput
}

// PortfolioView is a point-in-time view of a portfolio.
type PortfolioView struct {
	PortfolioID int64
	RequesterID string // empty when the portfolio has no requests
	Quantity    float64
	Requests    []RequestView
	Constraints []exchange.CapacityConstraint
}

// RequestView describes a single request of a portfolio.
type RequestView struct {
	RequestID      int64
	Commodity      string
	Preference     float64
	RequesterID    string
	TargetID       string
	TargetQuality  string
	TargetQuantity float64
}

// ExchangeService builds request portfolios for agents and collects them
// for the current exchange cycle. Portfolio mutation is serialized by the
// service lock.
type ExchangeService struct {
	mu         sync.Mutex
	agents     *store.AgentStore
	inventory  *InventoryService
	portfolios *store.PortfolioStore
	requests   *exchange.RequestFactory[*domain.Product]
	logger     *slog.Logger
}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService(
	agents *store.AgentStore,
	inventory *InventoryService,
	portfolios *store.PortfolioStore,
	logger *slog.Logger,
) *ExchangeService {
	return &ExchangeService{
		agents:     agents,
		inventory:  inventory,
		portfolios: portfolios,
		requests:   exchange.NewRequestFactory[*domain.Product](),
		logger:     logger,
	}
}

// SubmitPortfolio builds a portfolio from the request and submits it to the
// current cycle. Nothing is submitted if any input is invalid.
func (s *ExchangeService) SubmitPortfolio(req SubmitPortfolioRequest) (*PortfolioView, error) {
	requester, err := s.agents.Get(req.RequesterID)
	if err != nil {
		return nil, err
	}
	if len(req.Requests) == 0 {
		return nil, &domain.ValidationError{Message: "requests must not be empty"}
	}
	for _, c := range req.Constraints {
		if math.IsNaN(c.Capacity) || c.Capacity < 0 {
			return nil, &domain.ValidationError{Message: "constraint capacity must be >= 0"}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reqs, err := s.buildRequests(requester, req.Requests)
	if err != nil {
		return nil, err
	}

	p := exchange.NewRequestPortfolio[*domain.Product]()
	for _, r := range reqs {
		if err := p.AddRequest(r); err != nil {
			return nil, err
		}
	}
	for _, c := range req.Constraints {
		p.AddConstraint(exchange.CapacityConstraint{
			Capacity:  c.Capacity,
			Converter: c.Converter,
		})
	}
	if err := s.portfolios.Submit(p); err != nil {
		return nil, err
	}

	s.logger.Info("portfolio submitted",
		slog.Int64("portfolio_id", p.ID()),
		slog.String("requester_id", requester.AgentID),
		slog.Int("requests", p.Len()),
		slog.Int("constraints", len(req.Constraints)),
	)
	return viewPortfolio(p), nil
}

// AddRequests appends requests to a submitted portfolio. A requester other
// than the portfolio's yields an error wrapping domain.ErrInvariantViolation
// and leaves the portfolio unchanged.
func (s *ExchangeService) AddRequests(portfolioID int64, req AddRequestsRequest) (*PortfolioView, error) {
	requester, err := s.agents.Get(req.RequesterID)
	if err != nil {
		return nil, err
	}
	if len(req.Requests) == 0 {
		return nil, &domain.ValidationError{Message: "requests must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.portfolios.Get(portfolioID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.buildRequests(requester, req.Requests)
	if err != nil {
		return nil, err
	}

	// Every request in the batch shares one requester, so either the first
	// add fails and nothing changes or all of them succeed.
	for _, r := range reqs {
		if err := p.AddRequest(r); err != nil {
			s.logger.Debug("request rejected",
				slog.Int64("portfolio_id", portfolioID),
				slog.String("requester_id", requester.AgentID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
	}

	s.logger.Info("requests added",
		slog.Int64("portfolio_id", portfolioID),
		slog.Int("added", len(reqs)),
		slog.Int("requests", p.Len()),
	)
	return viewPortfolio(p), nil
}

// GetPortfolio returns a view of a submitted portfolio.
func (s *ExchangeService) GetPortfolio(portfolioID int64) (*PortfolioView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.portfolios.Get(portfolioID)
	if err != nil {
		return nil, err
	}
	return viewPortfolio(p), nil
}

// ListPortfolios returns views of the submitted portfolios in id order. A
// non-empty requesterID restricts the result to that requester.
func (s *ExchangeService) ListPortfolios(requesterID string) []*PortfolioView {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ps []*store.ProductPortfolio
	if requesterID == "" {
		ps = s.portfolios.List()
	} else {
		ps = s.portfolios.ListByRequester(requesterID)
	}

	result := make([]*PortfolioView, len(ps))
	for i, p := range ps {
		result[i] = viewPortfolio(p)
	}
	return result
}

// ResolveCycle releases every portfolio of the current cycle and returns how
// many were released. The solver is expected to have consumed them.
func (s *ExchangeService) ResolveCycle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.portfolios.Clear()
	s.logger.Info("cycle resolved", slog.Int("portfolios", n))
	return n
}

// buildRequests validates every input before constructing any request, so
// request ids are only consumed for valid batches.
func (s *ExchangeService) buildRequests(requester *domain.Agent, inputs []RequestInput) ([]*exchange.Request[*domain.Product], error) {
	targets := make([]*domain.Product, len(inputs))
	for i, in := range inputs {
		if in.Commodity == "" {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("requests[%d]: commodity is required", i),
			}
		}
		if math.IsNaN(in.Preference) || math.IsInf(in.Preference, 0) {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("requests[%d]: preference must be finite", i),
			}
		}

		if in.Buffer != "" || in.Key != "" {
			if in.Buffer == "" || in.Key == "" {
				return nil, &domain.ValidationError{
					Message: fmt.Sprintf("requests[%d]: buffer and key must be given together", i),
				}
			}
			target, err := s.inventory.Target(requester.AgentID, in.Buffer, in.Key)
			if err != nil {
				return nil, err
			}
			targets[i] = target
			continue
		}

		if math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) || in.Quantity < 0 {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("requests[%d]: quantity must be a finite number >= 0", i),
			}
		}
		targets[i] = domain.NewProduct(in.Quality, in.Quantity)
	}

	reqs := make([]*exchange.Request[*domain.Product], len(inputs))
	for i, in := range inputs {
		reqs[i] = s.requests.New(in.Commodity, targets[i], in.Preference, requester)
	}
	return reqs, nil
}

func viewPortfolio(p *store.ProductPortfolio) *PortfolioView {
	v := &PortfolioView{
		PortfolioID: p.ID(),
		Quantity:    p.Quantity(),
		Constraints: p.Constraints(),
	}
	if r := p.Requester(); r != nil {
		v.RequesterID = r.TraderID()
	}

	reqs := p.Requests()
	v.Requests = make([]RequestView, len(reqs))
	for i, r := range reqs {
		rv := RequestView{
			RequestID:      r.ID(),
			Commodity:      r.Commodity,
			Preference:     r.Preference,
			TargetQuantity: r.Target.Quantity(),
		}
		if r.Requester != nil {
			rv.RequesterID = r.Requester.TraderID()
		}
		if r.Target != nil {
			rv.TargetID = r.Target.ID
			rv.TargetQuality = r.Target.Quality
		}
		v.Requests[i] = rv
	}
	return v
}
