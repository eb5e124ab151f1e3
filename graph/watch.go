package graph

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WatchAll runs WatchForUpdates on every node, at most limit at a time
// (limit <= 0 means no limit). It returns once all polls finished, or with
// ctx's error if ctx ended before every poll started.
func WatchAll[T any](ctx context.Context, limit int, nodes ...*Node[T]) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, n := range nodes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n.WatchForUpdates()
			return nil
		})
	}

	return g.Wait()
}

// PollAll runs Poll with cfg on every node, at most limit at a time. The
// first error cancels polls that have not started yet and is returned.
func PollAll[T any](ctx context.Context, limit int, cfg *PropagationConfig, nodes ...*Node[T]) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, n := range nodes {
		g.Go(func() error {
			return n.Poll(gctx, cfg)
		})
	}

	return g.Wait()
}
