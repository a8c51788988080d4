// Package buffer provides ResMap, a keyed, capacity-bounded store of
// resource handles used as agent inventory.
//
// A ResMap caches its aggregate quantity. Handles are shared pointers, so a
// holder outside the map can change a handle's quantity without the map
// noticing; every entry point that hands out mutable access therefore marks
// the cache dirty, and the next Quantity call recomputes it with a
// compensated, order-independent sum. Erasures recompute eagerly.
//
// ResMap is not safe for concurrent use.
package buffer

import (
	"cmp"
	"fmt"
	"math"
	"strconv"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/google/btree"
)

// entry is one slot of the map. seq records insertion order for FIFO
// extraction.
type entry[K cmp.Ordered, R domain.Resource] struct {
	key K
	seq uint64
	res R
}

type seqKey[K cmp.Ordered] struct {
	seq uint64
	key K
}

// ResMap maps ordered keys to resource handles. The zero value is not
// usable; create one with New.
//
// The zero value of R must report a quantity of 0 (nil-safe pointer
// receivers), since At creates default entries for unknown keys.
type ResMap[K cmp.Ordered, R domain.Resource] struct {
	capacity float64
	dirty    bool
	quantity float64
	nextSeq  uint64

	byKey *btree.BTreeG[entry[K, R]]
	bySeq *btree.BTreeG[seqKey[K]]
}

// New creates an empty map with unbounded capacity.
func New[K cmp.Ordered, R domain.Resource]() *ResMap[K, R] {
	const degree = 16
	return &ResMap[K, R]{
		capacity: math.Inf(1),
		byKey: btree.NewG[entry[K, R]](degree, func(a, b entry[K, R]) bool {
			return a.key < b.key
		}),
		bySeq: btree.NewG[seqKey[K]](degree, func(a, b seqKey[K]) bool {
			return a.seq < b.seq
		}),
	}
}

// Capacity returns the maximum quantity the map may hold.
func (m *ResMap[K, R]) Capacity() float64 {
	return m.capacity
}

// SetCapacity changes the ceiling. It fails with domain.ErrCapacityViolation
// if capacity is NaN or lower than the current quantity by more than
// domain.EpsRsrc, in which case the ceiling is left unchanged.
func (m *ResMap[K, R]) SetCapacity(capacity float64) error {
	if math.IsNaN(capacity) {
		return fmt.Errorf("%w: capacity is NaN", domain.ErrCapacityViolation)
	}
	if qty := m.Quantity(); qty-capacity > domain.EpsRsrc {
		return fmt.Errorf("%w: new capacity %s lower than existing quantity %s",
			domain.ErrCapacityViolation, formatQty(capacity), formatQty(qty))
	}
	m.capacity = capacity
	return nil
}

// Size returns the number of entries.
func (m *ResMap[K, R]) Size() int {
	return m.byKey.Len()
}

// Quantity returns the total quantity of all handles, recomputing the
// cached value if it is dirty.
func (m *ResMap[K, R]) Quantity() float64 {
	if m.dirty {
		m.updateQuantity()
	}
	return m.quantity
}

// Space returns the quantity that still fits under the ceiling. It is
// never negative.
func (m *ResMap[K, R]) Space() float64 {
	return math.Max(0, m.capacity-m.Quantity())
}

// Empty reports whether the map has no entries.
func (m *ResMap[K, R]) Empty() bool {
	return m.byKey.Len() == 0
}

// At returns the handle stored under k, creating a default entry if k is
// new. The returned handle may be mutated, so the cache is marked dirty.
func (m *ResMap[K, R]) At(k K) R {
	m.dirty = true
	if e, ok := m.byKey.Get(entry[K, R]{key: k}); ok {
		return e.res
	}
	var zero R
	m.insert(k, zero)
	return zero
}

// Set stores r under k, replacing any existing handle. A replaced entry
// keeps its place in extraction order.
func (m *ResMap[K, R]) Set(k K, r R) {
	m.dirty = true
	if e, ok := m.byKey.Get(entry[K, R]{key: k}); ok {
		e.res = r
		m.byKey.ReplaceOrInsert(e)
		return
	}
	m.insert(k, r)
}

// Get looks up k without creating an entry. The returned handle is shared
// and may be mutated, so the cache is marked dirty.
func (m *ResMap[K, R]) Get(k K) (R, bool) {
	m.dirty = true
	e, ok := m.byKey.Get(entry[K, R]{key: k})
	return e.res, ok
}

// Has reports whether k is present.
func (m *ResMap[K, R]) Has(k K) bool {
	return m.byKey.Has(entry[K, R]{key: k})
}

// Range calls fn for each entry in ascending key order until fn returns
// false. fn may mutate the handles it receives, so Range marks the cache
// dirty whether or not anything changes. fn must not modify the map itself
// (At, Set, Push, Erase, Pop) while Range is walking it.
func (m *ResMap[K, R]) Range(fn func(k K, r R) bool) {
	m.dirty = true
	m.byKey.Ascend(func(e entry[K, R]) bool {
		return fn(e.key, e.res)
	})
}

// View is the read-only counterpart of Range. Callers must not change
// handle quantities from fn.
func (m *ResMap[K, R]) View(fn func(k K, r R) bool) {
	m.byKey.Ascend(func(e entry[K, R]) bool {
		return fn(e.key, e.res)
	})
}

// Keys returns all keys in ascending order.
func (m *ResMap[K, R]) Keys() []K {
	keys := make([]K, 0, m.byKey.Len())
	m.byKey.Ascend(func(e entry[K, R]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// Erase removes k and returns the number of entries removed (0 or 1). The
// quantity is recomputed immediately.
func (m *ResMap[K, R]) Erase(k K) int {
	n := 0
	if e, ok := m.byKey.Delete(entry[K, R]{key: k}); ok {
		m.bySeq.Delete(seqKey[K]{seq: e.seq})
		n = 1
	}
	m.updateQuantity()
	return n
}

// EraseRange removes every key in [first, last) and returns the number of
// entries removed. The quantity is recomputed immediately.
func (m *ResMap[K, R]) EraseRange(first, last K) int {
	var doomed []entry[K, R]
	m.byKey.AscendRange(entry[K, R]{key: first}, entry[K, R]{key: last}, func(e entry[K, R]) bool {
		doomed = append(doomed, e)
		return true
	})
	for _, e := range doomed {
		m.byKey.Delete(e)
		m.bySeq.Delete(seqKey[K]{seq: e.seq})
	}
	m.updateQuantity()
	return len(doomed)
}

// Push adds r under a new key k. It fails with domain.ErrKeyExists if k is
// taken and with domain.ErrCapacityViolation if r would push the quantity
// over capacity by more than domain.EpsRsrc. On failure nothing changes.
func (m *ResMap[K, R]) Push(k K, r R) error {
	if m.Has(k) {
		return fmt.Errorf("%w: key %v already present", domain.ErrKeyExists, k)
	}
	qty := m.Quantity()
	if add := r.Quantity(); add-(m.capacity-qty) > domain.EpsRsrc {
		return fmt.Errorf("%w: pushing %s onto quantity %s exceeds capacity %s",
			domain.ErrCapacityViolation, formatQty(add), formatQty(qty), formatQty(m.capacity))
	}
	m.insert(k, r)
	m.dirty = true
	return nil
}

// Pop removes and returns the oldest inserted entry. It fails with
// domain.ErrBufferEmpty when the map is empty.
func (m *ResMap[K, R]) Pop() (K, R, error) {
	oldest, ok := m.bySeq.DeleteMin()
	if !ok {
		var (
			k K
			r R
		)
		return k, r, domain.ErrBufferEmpty
	}
	e, _ := m.byKey.Delete(entry[K, R]{key: oldest.key})
	m.updateQuantity()
	return e.key, e.res, nil
}

// PopKey removes and returns the entry stored under k. It fails with
// domain.ErrResourceNotFound if k is absent.
func (m *ResMap[K, R]) PopKey(k K) (R, error) {
	e, ok := m.byKey.Delete(entry[K, R]{key: k})
	if !ok {
		var r R
		return r, fmt.Errorf("%w: key %v", domain.ErrResourceNotFound, k)
	}
	m.bySeq.Delete(seqKey[K]{seq: e.seq})
	m.updateQuantity()
	return e.res, nil
}

func (m *ResMap[K, R]) insert(k K, r R) {
	seq := m.nextSeq
	m.nextSeq++
	m.byKey.ReplaceOrInsert(entry[K, R]{key: k, seq: seq, res: r})
	m.bySeq.ReplaceOrInsert(seqKey[K]{seq: seq, key: k})
}

func (m *ResMap[K, R]) updateQuantity() {
	qtys := make([]float64, 0, m.byKey.Len())
	m.byKey.Ascend(func(e entry[K, R]) bool {
		qtys = append(qtys, e.res.Quantity())
		return true
	})
	m.quantity = domain.StableSum(qtys)
	m.dirty = false
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}
