// Package exchange holds the demand side of the resource exchange: requests
// for a commodity, the single-requester portfolios that group them for
// submission, and the opaque capacity constraints attached to portfolios.
//
// Nothing in this package is safe for concurrent use except
// RequestFactory.New, and nothing here decides which requests are
// satisfiable; that belongs to the solver consuming the portfolios.
package exchange

import (
	"github.com/efreitasn/resexchange/internal/domain"
)

// Trader is the opaque identity of a requester. Two traders are the same
// requester when their TraderIDs match.
type Trader interface {
	TraderID() string
}

// Handle constrains request targets. Targets are compared by ==, so value
// types must be comparable; pointer types give identity semantics.
type Handle interface {
	comparable
	domain.Resource
}

func sameTrader(a, b Trader) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.TraderID() == b.TraderID()
}

// Request expresses one agent's demand for a commodity during one exchange
// cycle. Target is a shared handle: it may alias an entry of the buffer it
// was drawn from.
type Request[R Handle] struct {
	Commodity  string
	Target     R
	Preference float64 // higher is more desired
	Requester  Trader

	id        int64
	portfolio *RequestPortfolio[R]
}

// ID returns the id assigned at construction.
func (r *Request[R]) ID() int64 {
	return r.id
}

// Portfolio returns the portfolio the request was added to, or nil.
func (r *Request[R]) Portfolio() *RequestPortfolio[R] {
	return r.portfolio
}

// Equal reports structural equality: commodity, target handle, preference
// within domain.Eps and requester. The id is ignored, so two distinct
// requests can be Equal while Less still orders them.
func (r *Request[R]) Equal(o *Request[R]) bool {
	return r.Commodity == o.Commodity &&
		r.Target == o.Target &&
		domain.DoubleEq(r.Preference, o.Preference) &&
		sameTrader(r.Requester, o.Requester)
}

// Less orders requests by id only.
func (r *Request[R]) Less(o *Request[R]) bool {
	return r.id < o.id
}

// RequestFactory constructs requests of one resource kind. Each factory
// owns its own id counter, so ids are strictly increasing in construction
// order within a kind and independent across kinds.
type RequestFactory[R Handle] struct {
	ids domain.Counter
}

// NewRequestFactory creates a factory whose first request gets id 0.
func NewRequestFactory[R Handle]() *RequestFactory[R] {
	return &RequestFactory[R]{}
}

// New creates a request with the next id. It never fails.
func (f *RequestFactory[R]) New(commodity string, target R, preference float64, requester Trader) *Request[R] {
	return &Request[R]{
		Commodity:  commodity,
		Target:     target,
		Preference: preference,
		Requester:  requester,
		id:         f.ids.Next(),
	}
}
