package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/smallnest/nodegraph/log"
)

// NodeID is the stable identity of a logical node. Every handle returned by
// Clone carries the same id, and edge bookkeeping is keyed by it.
type NodeID uuid.UUID

func (id NodeID) String() string {
	return uuid.UUID(id).String()
}

// Transform is invoked by an edge with the reference payload and a pointer
// to the mutable payload. It reports whether the mutable payload changed,
// which decides whether the mutable node broadcasts in turn.
type Transform[T any] func(reference T, mutable *T) bool

// nodeCore is the state shared by every handle of one logical node.
type nodeCore[T any] struct {
	id            NodeID
	name          string
	cell          *Cell[T]
	notifications edgeList[*notification[T]]
	observations  edgeList[*observation[T]]
	logger        log.Logger
	tracer        *Tracer
}

// Node is a handle to a versioned value taking part in a propagation graph.
// All handles obtained through Clone share the value, the version and the
// edge lists.
type Node[T any] struct {
	core *nodeCore[T]
}

// NewNode wraps value in a new logical node at version 0 with no edges.
func NewNode[T any](value T, opts ...NodeOption) *Node[T] {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	id := NodeID(uuid.New())
	name := o.name
	if name == "" {
		name = id.String()[:8]
	}

	return &Node[T]{core: &nodeCore[T]{
		id:     id,
		name:   name,
		cell:   NewCell(value),
		logger: o.logger,
		tracer: o.tracer,
	}}
}

// ID returns the node identity.
func (n *Node[T]) ID() NodeID { return n.core.id }

// Name returns the node label.
func (n *Node[T]) Name() string { return n.core.name }

// Get returns the current payload. Reference types inside T are shared with
// the node, not copied.
func (n *Node[T]) Get() T { return n.core.cell.Load() }

// Version returns how many broadcasts this node has made.
func (n *Node[T]) Version() uint64 { return n.core.cell.Version() }

// Clone returns a new handle to the same logical node.
func (n *Node[T]) Clone() *Node[T] {
	return &Node[T]{core: n.core}
}

// Is reports whether n and other are handles to the same logical node.
func (n *Node[T]) Is(other *Node[T]) bool {
	return other != nil && n.core.id == other.core.id
}

func (n *Node[T]) String() string {
	value, version := n.core.cell.Snapshot()
	return fmt.Sprintf("%s@v%d(%v)", n.core.name, version, value)
}

func (n *Node[T]) logger() log.Logger {
	if n.core.logger != nil {
		return n.core.logger
	}
	return log.GetDefaultLogger()
}

// Equal reports whether two nodes currently hold equal payloads. It says
// nothing about identity; use Is for that.
func Equal[T comparable](a, b *Node[T]) bool {
	return a.Get() == b.Get()
}

// Update calls SetAndNotify unless value equals the current payload.
func Update[T comparable](n *Node[T], value T) {
	n.UpdateFunc(value, func(current, next T) bool { return current == next })
}

// UpdateFunc calls SetAndNotify unless equal reports value as unchanged.
// It serves payload types that are not comparable.
func (n *Node[T]) UpdateFunc(value T, equal func(current, next T) bool) {
	if equal(n.Get(), value) {
		return
	}
	n.SetAndNotify(value)
}

// Set replaces the payload without advancing the version or propagating.
// Use it to batch several writes before one NotifyToNeighbors.
func (n *Node[T]) Set(value T) {
	n.core.cell.Store(value)
}

// SetAndNotify replaces the payload and calls NotifyToNeighbors.
func (n *Node[T]) SetAndNotify(value T) {
	n.Set(value)
	n.NotifyToNeighbors()
}

// NotifyToNeighbors advances the version by one and sends every notification
// edge in insertion order with the edge's own policy. Propagation is
// synchronous, depth-first and unbounded.
func (n *Node[T]) NotifyToNeighbors() {
	_ = n.notify(unguardedWalk(), nil)
}

// NotifyToNeighborsWithPolicy is NotifyToNeighbors with policy replacing the
// default policy of each of this node's edges for this broadcast only.
func (n *Node[T]) NotifyToNeighborsWithPolicy(policy NotificationPolicy) {
	_ = n.notify(unguardedWalk(), &policy)
}

// Propagate is NotifyToNeighbors under the limits of cfg. It stops at the
// first limit reached or when ctx is done; writes made before that stay.
func (n *Node[T]) Propagate(ctx context.Context, cfg *PropagationConfig) error {
	w := guardedWalk(ctx, cfg, n.core.id)
	if err := w.ctx.Err(); err != nil {
		return err
	}
	return n.notify(w, w.rootPolicy())
}

// SetAndPropagate replaces the payload and calls Propagate.
func (n *Node[T]) SetAndPropagate(ctx context.Context, value T, cfg *PropagationConfig) error {
	n.Set(value)
	return n.Propagate(ctx, cfg)
}

func (n *Node[T]) notify(w *walk, override *NotificationPolicy) error {
	version := n.core.cell.Bump()

	span := n.core.tracer.startSpan(w, &TraceSpan{
		Event:            TraceEventNotify,
		NodeName:         n.core.name,
		ReferenceVersion: version,
	})
	parent := w.parent
	if span != nil {
		w.parent = span.ID
	}

	var err error
	for _, edge := range n.core.notifications.snapshot() {
		if override != nil {
			err = edge.send(w, *override)
		} else {
			err = edge.sendWithDefaultPolicy(w)
		}
		if err != nil {
			break
		}
	}

	w.parent = parent
	n.core.tracer.endSpan(w, span, err)
	return err
}

// TryMarkForNotification adds a notification edge n -> other. transform runs
// whenever n broadcasts and policy passes.
func (n *Node[T]) TryMarkForNotification(other *Node[T], transform Transform[T], policy NotificationPolicy) error {
	edge := &notification[T]{
		reference: n.Clone(),
		mutable:   other.Clone(),
		transform: transform,
		policy:    policy,
	}
	if !n.core.notifications.add(edge) {
		return fmt.Errorf("notification %s -> %s: %w", n.core.name, other.core.name, ErrAlreadyExists)
	}
	n.logger().Debug("marked notification %s -> %s (%s)", n.core.name, other.core.name, policy)
	return nil
}

// TryMarkOffNotification removes the notification edge n -> other.
func (n *Node[T]) TryMarkOffNotification(other *Node[T]) error {
	if !n.core.notifications.remove(other.core.id) {
		return fmt.Errorf("notification %s -> %s: %w", n.core.name, other.core.name, ErrDoesNotExist)
	}
	n.logger().Debug("marked off notification %s -> %s", n.core.name, other.core.name)
	return nil
}

// TryMarkForObservation makes n observe other: the edge other -> n is stored
// on n and fires only when n polls with WatchForUpdates or Poll.
func (n *Node[T]) TryMarkForObservation(other *Node[T], transform Transform[T]) error {
	edge := newObservation(other.Clone(), n.Clone(), transform)
	if !n.core.observations.add(edge) {
		return fmt.Errorf("observation %s -> %s: %w", other.core.name, n.core.name, ErrAlreadyExists)
	}
	n.logger().Debug("marked observation %s -> %s at v%d", other.core.name, n.core.name, edge.seen.Load())
	return nil
}

// TryMarkOffObservation removes the observation of other held by n.
func (n *Node[T]) TryMarkOffObservation(other *Node[T]) error {
	if !n.core.observations.remove(other.core.id) {
		return fmt.Errorf("observation %s -> %s: %w", other.core.name, n.core.name, ErrDoesNotExist)
	}
	n.logger().Debug("marked off observation %s -> %s", other.core.name, n.core.name)
	return nil
}

// HasNotification reports whether n notifies other.
func (n *Node[T]) HasNotification(other *Node[T]) bool {
	return n.core.notifications.contains(other.core.id)
}

// HasObservation reports whether n observes other.
func (n *Node[T]) HasObservation(other *Node[T]) bool {
	return n.core.observations.contains(other.core.id)
}

// WatchForUpdates checks every observation of n in insertion order. Each
// one whose reference moved since the last check runs its transform once.
func (n *Node[T]) WatchForUpdates() {
	w := unguardedWalk()
	for _, edge := range n.core.observations.snapshot() {
		_ = edge.check(w)
	}
}

// Poll is WatchForUpdates with the broadcasts it causes guarded by cfg.
func (n *Node[T]) Poll(ctx context.Context, cfg *PropagationConfig) error {
	w := guardedWalk(ctx, cfg, n.core.id)
	if err := w.ctx.Err(); err != nil {
		return err
	}
	for _, edge := range n.core.observations.snapshot() {
		if err := edge.check(w); err != nil {
			return err
		}
		if err := w.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Notifications returns a snapshot of the outgoing notification edges.
func (n *Node[T]) Notifications() []EdgeInfo {
	edges := n.core.notifications.snapshot()
	infos := make([]EdgeInfo, len(edges))
	for i, e := range edges {
		infos[i] = e.info()
	}
	return infos
}

// Observations returns a snapshot of the observation edges held by n.
func (n *Node[T]) Observations() []EdgeInfo {
	edges := n.core.observations.snapshot()
	infos := make([]EdgeInfo, len(edges))
	for i, e := range edges {
		infos[i] = e.info()
	}
	return infos
}
