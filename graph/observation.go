package graph

import (
	"sync/atomic"
	"time"
)

// observation is a pull edge reference -> mutable owned by the mutable node.
// seen holds the reference version the edge last fired for. It is written
// only under the mutable node's lock and read atomically elsewhere.
type observation[T any] struct {
	reference *Node[T]
	mutable   *Node[T]
	transform Transform[T]
	seen      atomic.Uint64
}

func newObservation[T any](reference, mutable *Node[T], transform Transform[T]) *observation[T] {
	e := &observation[T]{
		reference: reference,
		mutable:   mutable,
		transform: transform,
	}
	e.seen.Store(reference.Version())
	return e
}

func (e *observation[T]) key() NodeID { return e.reference.core.id }

func (e *observation[T]) info() EdgeInfo {
	return EdgeInfo{
		Kind:        EdgeObservation,
		From:        e.reference.core.id,
		To:          e.mutable.core.id,
		FromName:    e.reference.core.name,
		ToName:      e.mutable.core.name,
		SeenVersion: e.seen.Load(),
	}
}

// check fires the transform once if the reference version moved since the
// last fire.
func (e *observation[T]) check(w *walk) error {
	ref, live := e.reference.core.cell.Snapshot()
	if e.seen.Load() >= live {
		return nil
	}
	return e.fire(w, ref, live)
}

// fire applies ref, read at reference version live. The seen version is
// checked and advanced under the mutable node's lock, so a poll holding an
// older snapshot can never overwrite a newer one.
func (e *observation[T]) fire(w *walk, ref T, live uint64) error {
	start := time.Now()
	var fired bool
	changed := e.mutable.core.cell.Mutate(func(mutable *T) bool {
		if e.seen.Load() >= live {
			return false
		}
		e.seen.Store(live)
		fired = true
		return e.transform(ref, mutable)
	})
	if !fired {
		return nil
	}

	e.mutable.core.tracer.record(w, &TraceSpan{
		Event:            TraceEventObservationFired,
		FromNode:         e.reference.core.name,
		ToNode:           e.mutable.core.name,
		ReferenceVersion: live,
		MutableVersion:   e.mutable.Version(),
		Changed:          changed,
		StartTime:        start,
		Duration:         time.Since(start),
	})
	e.mutable.logger().Debug("observation %s -> %s fired for v%d (changed=%t)",
		e.reference.core.name, e.mutable.core.name, live, changed)

	if !changed {
		return nil
	}
	return e.mutable.notify(w, w.rootPolicy())
}
