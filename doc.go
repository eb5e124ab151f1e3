// nodegraph - Reactive Versioned Nodes for Go
//
// nodegraph lets independently held values be wired into a directed graph,
// so that writing one node updates the nodes that depend on it. There is no
// scheduler: every update runs synchronously on the goroutine that caused it.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/nodegraph
//
// Basic example:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/smallnest/nodegraph/graph"
//	)
//
//	func main() {
//		a := graph.NewNode(5)
//		b := graph.NewNode(10)
//
//		// push: every broadcast of a adds a's value to b
//		_ = a.TryMarkForNotification(b, func(ref int, mut *int) bool {
//			*mut += ref
//			return true
//		}, graph.PolicyAll)
//
//		graph.Update(a, 11)
//		fmt.Println(b.Get()) // 21
//	}
//
// # Key Features
//
//   - Versioned nodes shared between goroutines through cheap handles
//   - Push edges (notifications) gated by version-comparing policies
//   - Pull edges (observations) that fire only when polled
//   - Optional guarded walks with depth limits, cycle detection and contexts
//   - Tracing hooks and Mermaid/DOT export of the reachable graph
//   - Pluggable leveled logging with a kataras/golog adapter
//
// # Packages
//
//   - graph: nodes, edges, policies, guarded propagation, tracing, export
//   - log: Logger interface, stdlib and golog implementations
//
// # Examples
//
// See the examples directory for runnable programs:
//
//   - notification_chain: derived values updated by push edges
//   - observation: dashboards refreshed on demand with WatchAll
//   - guarded_propagation: stopping a feedback loop with Propagate
//   - golog_logger: routing node logs through golog
package nodegraph
