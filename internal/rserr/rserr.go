// Package rserr defines the error kinds shared across the coding core
// and its driver. Every error the core returns wraps one of these
// sentinels via github.com/pkg/errors (errors.Wrap/Wrapf), so callers
// can classify a failure with errors.Is regardless of how much context
// has been attached on the way up.
package rserr

import "github.com/pkg/errors"

var (
	// ErrShape marks shards of mismatched length, or matrix/vector
	// dimensions that disagree.
	ErrShape = errors.New("shape error")

	// ErrDomain marks arithmetic on zero where an inverse was required.
	ErrDomain = errors.New("domain error")

	// ErrSingular marks a matrix inversion whose pivot search was
	// exhausted.
	ErrSingular = errors.New("singular matrix")

	// ErrInsufficient marks fewer than k surviving shards at decode.
	ErrInsufficient = errors.New("insufficient shards")

	// ErrInvalidParameters marks k = 0, m = 0, or k+m > 255 at encode.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrIO marks a read or write failure on a shard, input, or
	// metadata file.
	ErrIO = errors.New("io error")

	// ErrMetadata marks meta.txt missing, empty, unparseable, or
	// inconsistent with the shards present.
	ErrMetadata = errors.New("metadata error")
)
