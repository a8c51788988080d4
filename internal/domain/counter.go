package domain

import "sync/atomic"

// Counter hands out strictly increasing ids starting at zero. One Counter
// is one id space: callers that need ids scoped per resource kind keep one
// Counter per kind. Safe for concurrent use.
type Counter struct {
	next atomic.Int64
}

// Next returns the next id and advances the counter.
func (c *Counter) Next() int64 {
	return c.next.Add(1) - 1
}

// Peek returns the id the next call to Next will return.
func (c *Counter) Peek() int64 {
	return c.next.Load()
}
