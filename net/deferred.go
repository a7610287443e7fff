package net

import (
	"github.com/gammazero/deque"

	"hpetri/token"
)

// queuedFire is one parked Fire request. removed is set once the request
// has been picked up by the cascade so that the lazily-cleaned order
// deque can skip it without an O(n) splice.
type queuedFire struct {
	fire    Fire
	removed bool
}

// transitionQueue is the deferred multimap for a single transition: every
// outstanding parked Fire for that transition, indexed both by requesting
// token (FIFO per token) and in overall insertion order (FIFO across all
// tokens, for "any waiting token" lookups triggered by capacity-freed
// candidates). The upstream C++ source uses an unordered_multimap whose
// iteration order is unspecified; FIFO-per-transition is the deterministic
// order pinned here (see DESIGN.md).
type transitionQueue struct {
	order   *deque.Deque
	byToken map[*token.Node][]*queuedFire
	live    int
}

func newTransitionQueue() *transitionQueue {
	return &transitionQueue{
		order:   deque.New(),
		byToken: make(map[*token.Node][]*queuedFire),
	}
}

// insert parks f.
func (q *transitionQueue) insert(f Fire) {
	qf := &queuedFire{fire: f}
	q.order.PushBack(qf)
	key := f.Token.Node()
	q.byToken[key] = append(q.byToken[key], qf)
	q.live++
}

// lookupToken returns the oldest still-parked request for the exact token,
// or nil if none is parked.
func (q *transitionQueue) lookupToken(key *token.Node) *queuedFire {
	for _, qf := range q.byToken[key] {
		if !qf.removed {
			return qf
		}
	}
	return nil
}

// lookupAny returns the globally oldest still-parked request for this
// transition, regardless of which token it was requested for.
func (q *transitionQueue) lookupAny() *queuedFire {
	for q.order.Len() > 0 {
		front := q.order.Front().(*queuedFire)
		if front.removed {
			q.order.PopFront()
			continue
		}
		return front
	}
	return nil
}

// remove takes qf out of the deferred store. The entry never fires again.
func (q *transitionQueue) remove(qf *queuedFire) {
	qf.removed = true
	q.live--
	key := qf.fire.Token.Node()
	lst := q.byToken[key]
	for i, e := range lst {
		if e == qf {
			q.byToken[key] = append(lst[:i:i], lst[i+1:]...)
			break
		}
	}
	if len(q.byToken[key]) == 0 {
		delete(q.byToken, key)
	}
}

// reserve pre-grows the internal order deque; a pure optimization.
func (q *transitionQueue) reserve(hint int) {
	cap := uint(1)
	for (1 << cap) < hint {
		cap++
	}
	q.order.SetMinCapacity(cap)
}
