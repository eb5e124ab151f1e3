package graph

import "sync"

type keyedEdge interface {
	key() NodeID
}

// edgeList is an insertion-ordered set of edges keyed by the id of the
// node at the other end. Check-and-insert and check-and-remove are atomic.
type edgeList[E keyedEdge] struct {
	mu    sync.RWMutex
	items []E
}

func (l *edgeList[E]) add(edge E) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.items {
		if e.key() == edge.key() {
			return false
		}
	}
	l.items = append(l.items, edge)
	return true
}

func (l *edgeList[E]) remove(id NodeID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.items {
		if e.key() == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *edgeList[E]) contains(id NodeID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.items {
		if e.key() == id {
			return true
		}
	}
	return false
}

// snapshot returns a copy so walks never hold the list lock while firing.
func (l *edgeList[E]) snapshot() []E {
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]E, len(l.items))
	copy(items, l.items)
	return items
}
