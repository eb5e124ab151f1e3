package graph

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smallnest/nodegraph/log"
)

// TraceEvent represents the kind of propagation step a span records
type TraceEvent string

const (
	// TraceEventNotify is a node broadcast: version bump plus edge walk
	TraceEventNotify TraceEvent = "notify"

	// TraceEventNotificationFired is a notification edge whose transform ran
	TraceEventNotificationFired TraceEvent = "notification_fired"

	// TraceEventNotificationSkipped is a notification edge rejected by its policy
	TraceEventNotificationSkipped TraceEvent = "notification_skipped"

	// TraceEventObservationFired is an observation edge whose transform ran
	TraceEventObservationFired TraceEvent = "observation_fired"

	// TraceEventGuardTripped is a guarded walk stopping at a limit
	TraceEventGuardTripped TraceEvent = "guard_tripped"
)

// TraceSpan represents one propagation step
type TraceSpan struct {
	// ID is a unique identifier for this span
	ID string

	// ParentID is the broadcast span that caused this one (empty at the root)
	ParentID string

	// Event indicates the type of step
	Event TraceEvent

	// NodeName is the broadcasting node for TraceEventNotify
	NodeName string

	// FromNode and ToNode are the reference and mutable ends of an edge
	FromNode string
	ToNode   string

	// ReferenceVersion and MutableVersion are the versions the step saw
	ReferenceVersion uint64
	MutableVersion   uint64

	// Policy is the policy a notification edge was evaluated with
	Policy NotificationPolicy

	// Changed is the transform result
	Changed bool

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Error is set when a guarded walk stopped here
	Error error
}

// TraceHook defines the interface for trace event handlers
type TraceHook interface {
	// OnEvent is called for every recorded span. Broadcast spans are
	// delivered twice: once when started and once when ended.
	OnEvent(ctx context.Context, span *TraceSpan)
}

// TraceHookFunc is a function adapter for TraceHook
type TraceHookFunc func(ctx context.Context, span *TraceSpan)

// OnEvent implements the TraceHook interface
func (f TraceHookFunc) OnEvent(ctx context.Context, span *TraceSpan) {
	f(ctx, span)
}

// Tracer collects propagation spans and forwards them to hooks. A nil
// *Tracer records nothing. It is safe for concurrent use; spans handed out
// by Spans or to hooks are never modified afterwards.
type Tracer struct {
	mu    sync.Mutex
	hooks []TraceHook
	spans []*TraceSpan
}

// NewTracer creates a new tracer instance
func NewTracer() *Tracer {
	return &Tracer{}
}

// AddHook registers a new trace hook
func (t *Tracer) AddHook(hook TraceHook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, hook)
}

// Spans returns the collected spans in recording order
func (t *Tracer) Spans() []*TraceSpan {
	t.mu.Lock()
	defer t.mu.Unlock()

	spans := make([]*TraceSpan, len(t.spans))
	copy(spans, t.spans)
	return spans
}

// Clear removes all collected spans
func (t *Tracer) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = nil
}

// startSpan records an open broadcast span.
func (t *Tracer) startSpan(w *walk, span *TraceSpan) *TraceSpan {
	if t == nil {
		return nil
	}
	span.StartTime = time.Now()
	t.record(w, span)
	return span
}

// endSpan closes a span opened by startSpan. The started span is never
// written again: a finished copy replaces it in the collection and is
// delivered instead.
func (t *Tracer) endSpan(w *walk, span *TraceSpan, err error) {
	if t == nil || span == nil {
		return
	}
	done := *span
	done.EndTime = time.Now()
	done.Duration = done.EndTime.Sub(done.StartTime)
	done.Error = err

	t.mu.Lock()
	for i := len(t.spans) - 1; i >= 0; i-- {
		if t.spans[i] == span {
			t.spans[i] = &done
			break
		}
	}
	t.mu.Unlock()

	t.deliver(w.ctx, &done)
}

// record stores span under the walk's current parent and delivers it.
func (t *Tracer) record(w *walk, span *TraceSpan) {
	if t == nil {
		return
	}
	span.ID = uuid.NewString()
	span.ParentID = w.parent
	if span.StartTime.IsZero() {
		span.StartTime = time.Now()
	}
	if span.Event != TraceEventNotify && span.EndTime.IsZero() {
		span.EndTime = span.StartTime.Add(span.Duration)
	}

	t.mu.Lock()
	t.spans = append(t.spans, span)
	t.mu.Unlock()

	t.deliver(w.ctx, span)
}

func (t *Tracer) deliver(ctx context.Context, span *TraceSpan) {
	t.mu.Lock()
	hooks := make([]TraceHook, len(t.hooks))
	copy(hooks, t.hooks)
	t.mu.Unlock()

	for _, hook := range hooks {
		hook.OnEvent(ctx, span)
	}
}

// NewLoggingHook returns a hook writing each finished span to logger at
// debug level, and guard trips at warn level.
func NewLoggingHook(logger log.Logger) TraceHook {
	return TraceHookFunc(func(_ context.Context, span *TraceSpan) {
		switch span.Event {
		case TraceEventNotify:
			if !span.EndTime.IsZero() {
				logger.Debug("notify %s v%d took %s", span.NodeName, span.ReferenceVersion, span.Duration)
			}
		case TraceEventGuardTripped:
			logger.Warn("guard tripped %s -> %s: %v", span.FromNode, span.ToNode, span.Error)
		default:
			logger.Debug("%s %s(v%d) -> %s(v%d) policy=%s changed=%t",
				span.Event, span.FromNode, span.ReferenceVersion, span.ToNode, span.MutableVersion, span.Policy, span.Changed)
		}
	})
}
