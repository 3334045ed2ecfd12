package audit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Multi fans an event out to several publishers concurrently and returns the
// first error, after every publisher has finished.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range m {
		if p == nil {
			continue
		}
		g.Go(func() error {
			return p.Publish(gctx, e)
		})
	}
	return g.Wait()
}
