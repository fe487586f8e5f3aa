// Package ledger records a small history of past encode/decode runs in
// an embedded go.etcd.io/bbolt database. It carries no bearing on
// shard correctness, it is purely an operational log the CLI can
// print with "rs history".
package ledger

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("runs")

// Entry is one recorded encode or decode invocation.
type Entry struct {
	Time      time.Time     `json:"time"`
	Operation string        `json:"operation"` // "encode" or "decode"
	Path      string        `json:"path"`      // shard directory
	K         int           `json:"k"`
	M         int           `json:"m"`
	Success   bool          `json:"success"`
	Elapsed   time.Duration `json:"elapsed"`
	Err       string        `json:"err,omitempty"`
}

// Ledger is a bbolt-backed append log of Entry records.
type Ledger struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the bbolt database at path.
func Open(path string) (*Ledger, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening ledger %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing ledger bucket")
	}
	return &Ledger{db: db}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Append records a new Entry, keyed by a big-endian bucket sequence
// number so entries sort in insertion order.
func (l *Ledger) Append(e Entry) error {
	buf, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshaling ledger entry")
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), buf)
	})
}

// Recent returns up to limit of the most recently appended entries,
// newest first.
func (l *Ledger) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	err := l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return errors.Wrap(err, "unmarshaling ledger entry")
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// itob encodes a bbolt sequence number as a big-endian byte key, the
// standard bbolt idiom for keys that must sort numerically.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}
