// Package metadata reads and writes the small two-line ASCII metadata
// record that accompanies a set of persisted shards: the original file
// length, and the (k, m) parameters used to produce them.
package metadata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"lukechampine.com/rs/internal/rserr"
)

// Record is the parsed contents of meta.txt.
type Record struct {
	OrigLen int64
	K, M    int
}

// N returns the total shard count k+m.
func (r Record) N() int { return r.K + r.M }

// ShardLen returns ceil(OrigLen / K), the common length of every shard.
func (r Record) ShardLen() int64 {
	return (r.OrigLen + int64(r.K) - 1) / int64(r.K)
}

// Write serializes rec as "<origLen>\n<k> <m>\n" to w.
func Write(w io.Writer, rec Record) error {
	_, err := fmt.Fprintf(w, "%d\n%d %d\n", rec.OrigLen, rec.K, rec.M)
	if err != nil {
		return errors.Wrap(rserr.ErrIO, err.Error())
	}
	return nil
}

// Read parses a Record from r. A missing, empty, or malformed record
// yields MetadataError.
func Read(r io.Reader) (Record, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return Record{}, errors.Wrap(rserr.ErrMetadata, "meta: missing original-length line")
	}
	origLen, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
	if err != nil {
		return Record{}, errors.Wrapf(rserr.ErrMetadata, "meta: invalid original length: %v", err)
	}

	if !scanner.Scan() {
		return Record{}, errors.Wrap(rserr.ErrMetadata, "meta: missing \"k m\" line")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != 2 {
		return Record{}, errors.Wrapf(rserr.ErrMetadata, "meta: expected \"k m\", got %q", scanner.Text())
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, errors.Wrapf(rserr.ErrMetadata, "meta: invalid k: %v", err)
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, errors.Wrapf(rserr.ErrMetadata, "meta: invalid m: %v", err)
	}
	if origLen < 0 || k <= 0 || m <= 0 {
		return Record{}, errors.Wrapf(rserr.ErrMetadata, "meta: implausible record: origLen=%d k=%d m=%d", origLen, k, m)
	}

	if err := scanner.Err(); err != nil {
		return Record{}, errors.Wrap(rserr.ErrIO, err.Error())
	}
	return Record{OrigLen: origLen, K: k, M: m}, nil
}
