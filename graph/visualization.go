package graph

import (
	"fmt"
	"strings"
)

// Exporter renders the part of a propagation graph reachable from a set of
// root nodes
type Exporter[T any] struct {
	nodes []*Node[T]
	index map[NodeID]int
}

// NewExporter collects, in discovery order, every node reachable from roots
// by following notification edges forward and observation edges back to
// their reference. Edges are stored on their owner, so a node that only
// notifies a root is not found unless it is a root itself.
func NewExporter[T any](roots ...*Node[T]) *Exporter[T] {
	ge := &Exporter[T]{index: make(map[NodeID]int)}

	queue := make([]*Node[T], 0, len(roots))
	for _, r := range roots {
		if r != nil && ge.visit(r) {
			queue = append(queue, r)
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, e := range n.core.notifications.snapshot() {
			if ge.visit(e.mutable) {
				queue = append(queue, e.mutable)
			}
		}
		for _, e := range n.core.observations.snapshot() {
			if ge.visit(e.reference) {
				queue = append(queue, e.reference)
			}
		}
	}

	return ge
}

func (ge *Exporter[T]) visit(n *Node[T]) bool {
	if _, ok := ge.index[n.core.id]; ok {
		return false
	}
	ge.index[n.core.id] = len(ge.nodes)
	ge.nodes = append(ge.nodes, n)
	return true
}

// Nodes returns the collected nodes in discovery order
func (ge *Exporter[T]) Nodes() []*Node[T] {
	nodes := make([]*Node[T], len(ge.nodes))
	copy(nodes, ge.nodes)
	return nodes
}

// Edges returns every edge between collected nodes: each node's
// notifications followed by its observations
func (ge *Exporter[T]) Edges() []EdgeInfo {
	var edges []EdgeInfo
	for _, n := range ge.nodes {
		edges = append(edges, n.Notifications()...)
		edges = append(edges, n.Observations()...)
	}
	return edges
}

func (ge *Exporter[T]) key(id NodeID) string {
	return fmt.Sprintf("n%d", ge.index[id])
}

func (ge *Exporter[T]) label(n *Node[T], showVersions bool) string {
	name := strings.ReplaceAll(n.core.name, `"`, `'`)
	if showVersions {
		return fmt.Sprintf("%s v%d", name, n.Version())
	}
	return name
}

func edgeLabel(e EdgeInfo) string {
	if e.Kind == EdgeObservation {
		return "observe"
	}
	return e.Policy.String()
}

// MermaidOptions defines configuration for Mermaid diagram generation
type MermaidOptions struct {
	// Direction of the flowchart (e.g., "TD", "LR")
	Direction string

	// ShowVersions appends each node's current version to its label
	ShowVersions bool
}

// DrawMermaid generates a Mermaid flowchart. Notification edges are solid and
// labelled with their policy, observation edges are dashed.
func (ge *Exporter[T]) DrawMermaid() string {
	return ge.DrawMermaidWithOptions(MermaidOptions{Direction: "TD"})
}

// DrawMermaidWithOptions generates a Mermaid diagram with custom options
func (ge *Exporter[T]) DrawMermaidWithOptions(opts MermaidOptions) string {
	var sb strings.Builder

	direction := opts.Direction
	if direction == "" {
		direction = "TD"
	}
	fmt.Fprintf(&sb, "flowchart %s\n", direction)

	for _, n := range ge.nodes {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", ge.key(n.core.id), ge.label(n, opts.ShowVersions))
	}

	for _, e := range ge.Edges() {
		arrow := "-->"
		if e.Kind == EdgeObservation {
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "    %s %s|%s| %s\n", ge.key(e.From), arrow, edgeLabel(e), ge.key(e.To))
	}

	return sb.String()
}

// DrawDOT generates a DOT (Graphviz) representation of the graph
func (ge *Exporter[T]) DrawDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString("    rankdir=TD;\n")
	sb.WriteString("    node [shape=box];\n")

	for _, n := range ge.nodes {
		fmt.Fprintf(&sb, "    %s [label=\"%s\"];\n", ge.key(n.core.id), ge.label(n, false))
	}

	for _, e := range ge.Edges() {
		if e.Kind == EdgeObservation {
			fmt.Fprintf(&sb, "    %s -> %s [style=dashed, label=\"%s\"];\n", ge.key(e.From), ge.key(e.To), edgeLabel(e))
			continue
		}
		fmt.Fprintf(&sb, "    %s -> %s [label=\"%s\"];\n", ge.key(e.From), ge.key(e.To), edgeLabel(e))
	}

	sb.WriteString("}\n")
	return sb.String()
}
