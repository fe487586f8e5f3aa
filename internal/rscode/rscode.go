// Package rscode implements the encode and reconstruct kernels of the
// Reed-Solomon erasure code: parallel matrix-vector evaluation over
// shard-length byte vectors, and survivor-based recovery backed by a
// cache of inverted coding-matrix submatrices.
package rscode

import (
	"github.com/pkg/errors"

	"lukechampine.com/rs/internal/gf"
	"lukechampine.com/rs/internal/matrix"
	"lukechampine.com/rs/internal/rserr"
)

// Code holds the field and coding matrix for one (k, m) pair. It
// computes parity itself (Encode) and is shared with any Reconstructor
// built from it.
type Code struct {
	Field *gf.Field
	K, M  int
	// matrix is the m x k Vandermonde coding matrix; its rows are the
	// parity rows appended below the implicit k x k identity of the
	// data shards.
	matrix matrix.Matrix
}

// New validates k and m per spec (k >= 1, m >= 1, k+m <= 255) and
// builds the coding matrix.
func New(field *gf.Field, k, m int) (*Code, error) {
	if k < 1 || m < 1 || k+m > 255 {
		return nil, errors.Wrapf(rserr.ErrInvalidParameters, "k=%d m=%d: require k>=1, m>=1, k+m<=255", k, m)
	}
	return &Code{
		Field:  field,
		K:      k,
		M:      m,
		matrix: matrix.Vandermonde(field, k, m),
	}, nil
}

// checkShardLen verifies that every non-nil shard in shards has length
// shardLen, returning ErrShape on the first mismatch.
func checkShardLen(shards [][]byte, shardLen int) error {
	for i, s := range shards {
		if s != nil && len(s) != shardLen {
			return errors.Wrapf(rserr.ErrShape, "shard %d has length %d, want %d", i, len(s), shardLen)
		}
	}
	return nil
}
