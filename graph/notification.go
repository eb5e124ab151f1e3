package graph

import "time"

// EdgeKind distinguishes push edges from pull edges.
type EdgeKind string

const (
	// EdgeNotification fires when its reference broadcasts.
	EdgeNotification EdgeKind = "notification"

	// EdgeObservation fires when its owner polls.
	EdgeObservation EdgeKind = "observation"
)

// EdgeInfo describes an edge without exposing its transform.
type EdgeInfo struct {
	Kind EdgeKind

	// From is the reference node, To the node the transform writes to.
	From     NodeID
	To       NodeID
	FromName string
	ToName   string

	// Policy is the default policy of a notification edge.
	Policy NotificationPolicy

	// SeenVersion is the reference version an observation last fired for.
	SeenVersion uint64
}

// notification is a push edge reference -> mutable owned by the reference.
type notification[T any] struct {
	reference *Node[T]
	mutable   *Node[T]
	transform Transform[T]
	policy    NotificationPolicy
}

func (e *notification[T]) key() NodeID { return e.mutable.core.id }

func (e *notification[T]) info() EdgeInfo {
	return EdgeInfo{
		Kind:     EdgeNotification,
		From:     e.reference.core.id,
		To:       e.mutable.core.id,
		FromName: e.reference.core.name,
		ToName:   e.mutable.core.name,
		Policy:   e.policy,
	}
}

// send fires the edge if policy passes for the current versions of both
// endpoints, and continues the walk into the mutable node when the
// transform reports a change.
func (e *notification[T]) send(w *walk, policy NotificationPolicy) error {
	ref, refVersion := e.reference.core.cell.Snapshot()
	mutVersion := e.mutable.Version()

	span := &TraceSpan{
		FromNode:         e.reference.core.name,
		ToNode:           e.mutable.core.name,
		ReferenceVersion: refVersion,
		MutableVersion:   mutVersion,
		Policy:           policy,
	}

	if !policy.ShouldNotify(refVersion, mutVersion) {
		span.Event = TraceEventNotificationSkipped
		e.reference.core.tracer.record(w, span)
		return nil
	}

	if err := w.admit(e.reference.core.name, e.mutable.core.name, e.mutable.core.id); err != nil {
		e.reference.logger().Warn("propagation stopped: %v", err)
		span.Event = TraceEventGuardTripped
		span.Error = err
		e.reference.core.tracer.record(w, span)
		return err
	}

	start := time.Now()
	changed := e.mutable.core.cell.Mutate(func(mutable *T) bool {
		return e.transform(ref, mutable)
	})
	span.Event = TraceEventNotificationFired
	span.Changed = changed
	span.StartTime = start
	span.Duration = time.Since(start)
	e.reference.core.tracer.record(w, span)
	e.reference.logger().Debug("notification %s -> %s fired (%s, changed=%t)",
		e.reference.core.name, e.mutable.core.name, policy, changed)

	if !changed {
		return nil
	}

	w.descend(e.mutable.core.id)
	defer w.ascend(e.mutable.core.id)
	return e.mutable.notify(w, nil)
}

// sendWithDefaultPolicy fires the edge with its own policy.
func (e *notification[T]) sendWithDefaultPolicy(w *walk) error {
	return e.send(w, e.policy)
}
