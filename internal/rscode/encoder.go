package rscode

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lukechampine.com/rs/internal/rserr"
)

// Encode computes the Code's m parity shards from its k data shards.
// shards must have length k+m: the first k entries are the data
// shards (read-only), the last m entries are overwritten with the
// computed parity. Every data shard must have the same non-zero
// length, the length also used for the parity shards.
//
// Parity rows are independent and are computed on separate
// goroutines; within one row the inner loop is sequential, applying
// the coefficient-0 (skip) and coefficient-1 (plain XOR) fast paths
// described by the coding matrix.
func (c *Code) Encode(ctx context.Context, shards [][]byte) error {
	if len(shards) != c.K+c.M {
		return errors.Wrapf(rserr.ErrShape, "encode: got %d shards, want %d", len(shards), c.K+c.M)
	}
	data := shards[:c.K]
	parity := shards[c.K:]

	shardLen := 0
	for i, d := range data {
		if d == nil {
			return errors.Wrapf(rserr.ErrShape, "encode: data shard %d is missing", i)
		}
		if i == 0 {
			shardLen = len(d)
		}
	}
	if shardLen == 0 {
		return errors.Wrap(rserr.ErrShape, "encode: data shards are empty")
	}
	if err := checkShardLen(data, shardLen); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	for r := 0; r < c.M; r++ {
		r := r
		g.Go(func() error {
			if len(parity[r]) != shardLen {
				parity[r] = make([]byte, shardLen)
			} else {
				for i := range parity[r] {
					parity[r][i] = 0
				}
			}
			row := c.matrix[r]
			for col, d := range data {
				coef := row[col]
				if coef == 0 {
					continue
				}
				c.Field.MulSliceXor(coef, d, parity[r])
			}
			return nil
		})
	}
	return g.Wait()
}
