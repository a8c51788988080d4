package store

import (
	"sync"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/efreitasn/resexchange/internal/exchange"
	"github.com/google/btree"
)

// ProductPortfolio is a portfolio of requests for products.
type ProductPortfolio = exchange.RequestPortfolio[*domain.Product]

// PortfolioStore holds the portfolios submitted during the current exchange
// cycle. Portfolios are kept in a B-tree ordered by portfolio id, so two
// portfolios with identical content occupy separate slots.
type PortfolioStore struct {
	mu         sync.RWMutex
	portfolios *btree.BTreeG[*ProductPortfolio]
	index      map[int64]*ProductPortfolio // portfolio_id → portfolio
}

// NewPortfolioStore creates an empty PortfolioStore.
func NewPortfolioStore() *PortfolioStore {
	const degree = 16
	return &PortfolioStore{
		portfolios: btree.NewG[*ProductPortfolio](degree, func(a, b *ProductPortfolio) bool {
			return a.Less(b)
		}),
		index: make(map[int64]*ProductPortfolio),
	}
}

// Submit adds p to the cycle. It returns domain.ErrPortfolioExists if a
// portfolio with the same id was already submitted.
func (s *PortfolioStore) Submit(p *ProductPortfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[p.ID()]; exists {
		return domain.ErrPortfolioExists
	}
	s.portfolios.ReplaceOrInsert(p)
	s.index[p.ID()] = p
	return nil
}

// Get retrieves a submitted portfolio by ID. It returns
// domain.ErrPortfolioNotFound if it is not part of the current cycle.
func (s *PortfolioStore) Get(id int64) (*ProductPortfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.index[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	return p, nil
}

// List returns all submitted portfolios in ascending id order.
func (s *PortfolioStore) List() []*ProductPortfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*ProductPortfolio, 0, s.portfolios.Len())
	s.portfolios.Ascend(func(p *ProductPortfolio) bool {
		result = append(result, p)
		return true
	})
	return result
}

// ListByRequester returns the portfolios whose requester has the given
// trader id, in ascending id order.
func (s *PortfolioStore) ListByRequester(traderID string) []*ProductPortfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*ProductPortfolio, 0)
	s.portfolios.Ascend(func(p *ProductPortfolio) bool {
		if r := p.Requester(); r != nil && r.TraderID() == traderID {
			result = append(result, p)
		}
		return true
	})
	return result
}

// Len returns the number of submitted portfolios.
func (s *PortfolioStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.portfolios.Len()
}

// Clear discards every portfolio of the cycle and returns how many were
// held.
func (s *PortfolioStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.portfolios.Len()
	s.portfolios.Clear(false)
	s.index = make(map[int64]*ProductPortfolio)
	return n
}
