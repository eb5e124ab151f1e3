// Package graph provides versioned nodes wired together by push and pull
// edges, so that writing one node can update others.
//
// # Core Concepts
//
// ## Node
// A Node[T] wraps a payload in a shared Cell together with a version counter.
// Clone returns another handle to the same logical node: value, version and
// edges are shared, and both handles report the same ID.
//
// ## Notification edges (push)
// a.TryMarkForNotification(b, fn, policy) makes every broadcast of a run fn
// on b's payload when policy passes. A broadcast is NotifyToNeighbors (or
// SetAndNotify, Update, Propagate): it bumps a's version, then sends each
// edge in insertion order. If fn reports a change, b broadcasts in turn.
// The walk is synchronous and depth-first on the caller's goroutine.
//
// ## Observation edges (pull)
// b.TryMarkForObservation(a, fn) stores the edge on b. Nothing happens when
// a changes; b.WatchForUpdates() runs fn once for every observation whose
// reference version moved since the last check. A change made by fn makes b
// broadcast.
//
// ## Policies
// NotificationPolicy compares the reference version with the mutable
// version. PolicyAll always fires; PolicyLessUpdated fires only for
// consumers that are behind, and so on.
//
// ## Identity
// Edges are keyed by NodeID. Two nodes holding equal payloads are still
// different edge targets. Equal compares payloads and Update uses payload
// equality to skip no-op writes.
//
// # Example Usage
//
//	a := graph.NewNode(5, graph.WithName("a"))
//	b := graph.NewNode(10, graph.WithName("b"))
//
//	_ = a.TryMarkForNotification(b, func(ref int, mut *int) bool {
//		*mut += ref
//		return true
//	}, graph.PolicyAll)
//
//	graph.Update(a, 11) // b is now 21
//
// # Guarded propagation
//
// The plain broadcast is unbounded: a cycle of edges whose transforms always
// report a change recurses until the stack runs out. Propagate and Poll
// carry a PropagationConfig and a context instead:
//
//	err := a.Propagate(ctx, graph.WithMaxDepth(16).Merge(graph.WithCycleDetection()))
//	if errors.Is(err, graph.ErrCycleDetected) {
//		// ...
//	}
//
// # Concurrency
//
// Payload and version live behind a sync.RWMutex. A transform runs holding
// only the mutable node's write lock; the reference payload is copied before
// that, so walks in opposite directions do not deadlock. A transform must
// not call back into the node it is writing. Edge lists are copied before a
// walk, so edges added during a walk take part in the next one.
//
// WatchAll and PollAll fan polling out over goroutines when the caller asks
// for it; the package never schedules work by itself.
//
// # Observability
//
// WithLogger routes edge bookkeeping and guard trips to a log.Logger.
// WithTracer records a TraceSpan for every broadcast and edge, and
// NewExporter renders the reachable graph as Mermaid or DOT.
package graph
