package ledger

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndRecentOrdering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()

	entries := []Entry{
		{Time: time.Unix(1, 0), Operation: "encode", Path: "/a", K: 10, M: 4, Success: true},
		{Time: time.Unix(2, 0), Operation: "decode", Path: "/b", K: 10, M: 4, Success: false, Err: "insufficient shards"},
		{Time: time.Unix(3, 0), Operation: "encode", Path: "/c", K: 4, M: 4, Success: true},
	}
	for _, e := range entries {
		if err := l.Append(e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := l.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Path != "/c" || got[1].Path != "/b" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].Success || got[1].Err == "" {
		t.Fatalf("expected failed entry with error message, got %+v", got[1])
	}
}

func TestRecentOnEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()

	got, err := l.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}
