// Package shardio reads and writes shard files concurrently. Reads and
// writes are dispatched across a bounded pool of workers pulling shard
// indices off a channel, the same worker-pool-over-a-channel shape
// used for bounded concurrent downloads, built here on an errgroup
// instead of a manual WaitGroup and error channel.
package shardio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lukechampine.com/rs/internal/rserr"
)

// maxWorkers bounds the number of shard files open concurrently during
// a single ReadAll/WriteAll call.
const maxWorkers = 32

// ShardPath returns the path of shard index i (zero-padded two-digit
// decimal) under dir.
func ShardPath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("shard_%02d.dat", i))
}

// ReadAll reads n shard files from dir concurrently. A missing file is
// not an error: its slot is left nil. Any other read error fails the
// whole call.
func ReadAll(ctx context.Context, dir string, n int) ([][]byte, error) {
	shards := make([][]byte, n)
	work := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	workers := maxWorkers
	if n < workers {
		workers = n
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range work {
				data, err := os.ReadFile(ShardPath(dir, i))
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				if err != nil {
					return errors.Wrapf(rserr.ErrIO, "reading shard %d: %v", i, err)
				}
				shards[i] = data
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(work)
		for i := 0; i < n; i++ {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shards, nil
}

// WriteAll writes every non-nil entry of shards to dir concurrently,
// creating dir first if necessary.
func WriteAll(ctx context.Context, dir string, shards [][]byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(rserr.ErrIO, "creating output directory %s: %v", dir, err)
	}

	work := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	workers := maxWorkers
	if len(shards) < workers {
		workers = len(shards)
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range work {
				if shards[i] == nil {
					continue
				}
				if err := os.WriteFile(ShardPath(dir, i), shards[i], 0o644); err != nil {
					return errors.Wrapf(rserr.ErrIO, "writing shard %d: %v", i, err)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(work)
		for i := range shards {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}
