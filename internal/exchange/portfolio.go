package exchange

import (
	"fmt"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/google/btree"
)

// portfolioIDs is shared by every resource kind so portfolio ids are unique
// across the process.
var portfolioIDs domain.Counter

// RequestPortfolio groups the requests of a single requester with a set of
// capacity constraints into one submittable unit. Portfolios compare by id,
// never by content.
type RequestPortfolio[R Handle] struct {
	id          int64
	requests    []*Request[R]
	constraints *btree.BTreeG[CapacityConstraint]
	requester   Trader
}

// NewRequestPortfolio creates an empty portfolio with a fresh id.
func NewRequestPortfolio[R Handle]() *RequestPortfolio[R] {
	const degree = 8
	return &RequestPortfolio[R]{
		id:          portfolioIDs.Next(),
		constraints: btree.NewG[CapacityConstraint](degree, constraintLess),
	}
}

// ID returns the portfolio id.
func (p *RequestPortfolio[R]) ID() int64 {
	return p.id
}

// AddRequest appends req and takes ownership of it. The first request fixes
// the portfolio's requester; a request from any other requester is rejected
// with domain.ErrInvariantViolation and the portfolio is left untouched.
func (p *RequestPortfolio[R]) AddRequest(req *Request[R]) error {
	if p.requester != nil && !sameTrader(req.Requester, p.requester) {
		return fmt.Errorf("%w: request %d has requester %s, portfolio %d belongs to %s",
			domain.ErrInvariantViolation, req.id, traderID(req.Requester), p.id, traderID(p.requester))
	}

	p.requests = append(p.requests, req)
	if p.requester == nil {
		p.requester = req.Requester
	}
	req.portfolio = p
	return nil
}

// AddConstraint inserts c. Adding a constraint equal to one already present
// is a no-op.
func (p *RequestPortfolio[R]) AddConstraint(c CapacityConstraint) {
	p.constraints.ReplaceOrInsert(c)
}

// HasConstraint reports whether a constraint equal to c is present.
func (p *RequestPortfolio[R]) HasConstraint(c CapacityConstraint) bool {
	return p.constraints.Has(c)
}

// Requester returns the established requester, or nil before the first
// request is added.
func (p *RequestPortfolio[R]) Requester() Trader {
	return p.requester
}

// Requests returns the requests in insertion order. The slice is a copy.
func (p *RequestPortfolio[R]) Requests() []*Request[R] {
	out := make([]*Request[R], len(p.requests))
	copy(out, p.requests)
	return out
}

// Len returns the number of requests.
func (p *RequestPortfolio[R]) Len() int {
	return len(p.requests)
}

// Constraints returns the unique constraints in ascending order.
func (p *RequestPortfolio[R]) Constraints() []CapacityConstraint {
	out := make([]CapacityConstraint, 0, p.constraints.Len())
	p.constraints.Ascend(func(c CapacityConstraint) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Quantity returns the stable sum of the target quantities of all requests.
func (p *RequestPortfolio[R]) Quantity() float64 {
	qtys := make([]float64, len(p.requests))
	for i, r := range p.requests {
		qtys[i] = r.Target.Quantity()
	}
	return domain.StableSum(qtys)
}

// Equal reports whether p and o are the same portfolio.
func (p *RequestPortfolio[R]) Equal(o *RequestPortfolio[R]) bool {
	return p.id == o.id
}

// Less orders portfolios by id.
func (p *RequestPortfolio[R]) Less(o *RequestPortfolio[R]) bool {
	return p.id < o.id
}

func traderID(t Trader) string {
	if t == nil {
		return "<none>"
	}
	return t.TraderID()
}
