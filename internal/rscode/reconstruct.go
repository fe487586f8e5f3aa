package rscode

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lukechampine.com/rs/internal/matrix"
	"lukechampine.com/rs/internal/rserr"
)

// Reconstructor restores missing shard slots for one Code. It owns a
// cache of inverted k x k survivor matrices, keyed by the sorted set
// of surviving shard indices used to build them; the cache's lifetime
// is the Reconstructor's.
type Reconstructor struct {
	code  *Code
	cache sync.Map // survivor key (string) -> matrix.Matrix
}

// NewReconstructor returns a Reconstructor for code with an empty
// inverse-matrix cache.
func NewReconstructor(code *Code) *Reconstructor {
	return &Reconstructor{code: code}
}

// survivorKey renders a sorted slice of indices into a cache key.
// Indices are already sorted by the caller (present is built by a
// single ascending scan), so this just joins them.
func survivorKey(survivors []int) string {
	var b strings.Builder
	for i, s := range survivors {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s))
	}
	return b.String()
}

// survivorRow returns the row of [I_k; V] for global shard index idx.
func (c *Code) survivorRow(idx int) []byte {
	if idx < c.K {
		row := make([]byte, c.K)
		row[idx] = 1
		return row
	}
	return c.matrix[idx-c.K]
}

// invertedSurvivorMatrix returns the inverse of the k x k matrix formed
// by stacking survivorRow(i) for each i in survivors, consulting (and
// populating) the Reconstructor's cache. A failed inversion is never
// memoized.
func (r *Reconstructor) invertedSurvivorMatrix(survivors []int) (matrix.Matrix, error) {
	key := survivorKey(survivors)
	if cached, ok := r.cache.Load(key); ok {
		return cached.(matrix.Matrix), nil
	}

	a := matrix.New(len(survivors), r.code.K)
	for row, idx := range survivors {
		copy(a[row], r.code.survivorRow(idx))
	}
	inv, err := matrix.Invert(r.code.Field, a)
	if err != nil {
		return nil, err
	}

	// A duplicate compute on a concurrent miss is harmless: whichever
	// goroutine's LoadOrStore wins, both computed the same inverse.
	actual, _ := r.cache.LoadOrStore(key, inv)
	return actual.(matrix.Matrix), nil
}

// Reconstruct fills every empty slot of shards (length k+m, one slot
// per shard index) given at least k present slots. Present shards must
// all share the same length. Missing-shard recoveries run in parallel;
// a shard index j < k (data) is recovered via the jth row of the
// inverted survivor matrix, and j >= k (parity) via V[j-k] * A^-1 ---
// the same uniform recovery vector path for both, so data and parity
// recovery exercise identical code.
//
// Reconstruct is a no-op, returning nil, if every slot is already
// present.
func (r *Reconstructor) Reconstruct(ctx context.Context, shards [][]byte) error {
	n := r.code.K + r.code.M
	if len(shards) != n {
		return errors.Wrapf(rserr.ErrShape, "reconstruct: got %d shards, want %d", len(shards), n)
	}

	shardLen := 0
	present := make([]int, 0, n)
	for i, s := range shards {
		if s == nil {
			continue
		}
		if shardLen == 0 {
			shardLen = len(s)
		} else if len(s) != shardLen {
			return errors.Wrapf(rserr.ErrShape, "reconstruct: shard %d has length %d, want %d", i, len(s), shardLen)
		}
		present = append(present, i)
	}
	if len(present) == n {
		return nil
	}
	if len(present) < r.code.K {
		return errors.Wrapf(rserr.ErrInsufficient, "reconstruct: have %d shards, need at least %d", len(present), r.code.K)
	}

	survivors := present[:r.code.K]
	inv, err := r.invertedSurvivorMatrix(survivors)
	if err != nil {
		return err
	}

	survivorData := make([][]byte, r.code.K)
	for i, idx := range survivors {
		survivorData[i] = shards[idx]
	}

	missing := make([]int, 0, n-len(present))
	for i, s := range shards {
		if s == nil {
			missing = append(missing, i)
		}
	}

	g, _ := errgroup.WithContext(ctx)
	for _, j := range missing {
		j := j
		g.Go(func() error {
			var coeffs []byte
			if j < r.code.K {
				coeffs = inv[j]
			} else {
				v, err := matrix.MulVecMatrix(r.code.Field, r.code.matrix[j-r.code.K], inv)
				if err != nil {
					return err
				}
				coeffs = v
			}
			out := make([]byte, shardLen)
			for i, coef := range coeffs {
				if coef == 0 {
					continue
				}
				r.code.Field.MulSliceXor(coef, survivorData[i], out)
			}
			shards[j] = out
			return nil
		})
	}
	return g.Wait()
}
