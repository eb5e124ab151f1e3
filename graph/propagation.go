package graph

import (
	"context"
	"fmt"
)

// PropagationConfig bounds a guarded walk started by Propagate or Poll.
// The zero value imposes no limit but still honours context cancellation.
type PropagationConfig struct {
	// MaxDepth is the number of edges a walk may descend from its root
	// before it stops with ErrMaxDepthExceeded. Zero means unlimited.
	MaxDepth int

	// DetectCycles stops the walk with ErrCycleDetected when an edge would
	// mutate a node that is already on the current path.
	DetectCycles bool

	// Policy, when set, replaces the default policy of every edge of the
	// root broadcast. Downstream broadcasts keep their edges' own policies.
	Policy *NotificationPolicy
}

// WithMaxDepth creates a PropagationConfig limited to depth edges.
//
// Example:
//
//	err := node.Propagate(ctx, graph.WithMaxDepth(8))
func WithMaxDepth(depth int) *PropagationConfig {
	return &PropagationConfig{MaxDepth: depth}
}

// WithCycleDetection creates a PropagationConfig that refuses to re-enter nodes.
func WithCycleDetection() *PropagationConfig {
	return &PropagationConfig{DetectCycles: true}
}

// WithPolicy creates a PropagationConfig overriding the root broadcast policy.
func WithPolicy(policy NotificationPolicy) *PropagationConfig {
	return &PropagationConfig{Policy: &policy}
}

// Merge returns a new config with the fields set in other layered over c.
//
// Example:
//
//	cfg := graph.WithMaxDepth(8).Merge(graph.WithCycleDetection())
func (c *PropagationConfig) Merge(other *PropagationConfig) *PropagationConfig {
	merged := &PropagationConfig{}
	if c != nil {
		*merged = *c
	}
	if other == nil {
		return merged
	}
	if other.MaxDepth != 0 {
		merged.MaxDepth = other.MaxDepth
	}
	if other.DetectCycles {
		merged.DetectCycles = true
	}
	if other.Policy != nil {
		p := *other.Policy
		merged.Policy = &p
	}
	return merged
}

// walk is the state carried through one depth-first propagation. The
// unguarded walk only tracks depth and the parent trace span.
type walk struct {
	ctx     context.Context
	cfg     PropagationConfig
	guarded bool
	depth   int
	path    map[NodeID]struct{}
	parent  string
}

func unguardedWalk() *walk {
	return &walk{ctx: context.Background()}
}

func guardedWalk(ctx context.Context, cfg *PropagationConfig, root NodeID) *walk {
	if ctx == nil {
		ctx = context.Background()
	}
	w := &walk{
		ctx:     ctx,
		guarded: true,
		path:    map[NodeID]struct{}{root: {}},
	}
	if cfg != nil {
		w.cfg = *cfg
	}
	return w
}

// admit reports whether the walk may mutate target one level below the
// current depth.
func (w *walk) admit(from, to string, target NodeID) error {
	if !w.guarded {
		return nil
	}
	if err := w.ctx.Err(); err != nil {
		return fmt.Errorf("%s -> %s: %w", from, to, err)
	}
	if w.cfg.MaxDepth > 0 && w.depth+1 > w.cfg.MaxDepth {
		return fmt.Errorf("%s -> %s at depth %d: %w", from, to, w.depth+1, ErrMaxDepthExceeded)
	}
	if w.cfg.DetectCycles {
		if _, ok := w.path[target]; ok {
			return fmt.Errorf("%s -> %s: %w", from, to, ErrCycleDetected)
		}
	}
	return nil
}

func (w *walk) descend(id NodeID) {
	w.depth++
	if w.guarded {
		w.path[id] = struct{}{}
	}
}

func (w *walk) ascend(id NodeID) {
	w.depth--
	if w.guarded {
		delete(w.path, id)
	}
}

// rootPolicy returns the override for the root broadcast, if any.
func (w *walk) rootPolicy() *NotificationPolicy {
	if !w.guarded {
		return nil
	}
	return w.cfg.Policy
}
