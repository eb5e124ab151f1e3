package graph

import "github.com/smallnest/nodegraph/log"

type nodeOptions struct {
	name   string
	logger log.Logger
	tracer *Tracer
}

// NodeOption configures a node at construction.
type NodeOption func(*nodeOptions)

// WithName sets the label used in logs, traces and exports.
// Defaults to the first eight characters of the node id.
func WithName(name string) NodeOption {
	return func(opts *nodeOptions) {
		opts.name = name
	}
}

// WithLogger sets the logger for this node.
// Defaults to log.GetDefaultLogger(), resolved on every call.
func WithLogger(logger log.Logger) NodeOption {
	return func(opts *nodeOptions) {
		opts.logger = logger
	}
}

// WithTracer records propagation steps originating at this node.
func WithTracer(tracer *Tracer) NodeOption {
	return func(opts *nodeOptions) {
		opts.tracer = tracer
	}
}
