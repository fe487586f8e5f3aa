package metadata

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	rec := Record{OrigLen: 1000001, K: 10, M: 4}
	var buf bytes.Buffer
	if err := Write(&buf, rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "1000001\n10 4\n" {
		t.Fatalf("unexpected wire format: %q", buf.String())
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != rec {
		t.Fatalf("read back %+v, want %+v", got, rec)
	}
}

func TestShardLenAndN(t *testing.T) {
	rec := Record{OrigLen: 1000001, K: 10, M: 4}
	if rec.N() != 14 {
		t.Fatalf("N() = %d, want 14", rec.N())
	}
	if want := int64(100001); rec.ShardLen() != want {
		t.Fatalf("ShardLen() = %d, want %d", rec.ShardLen(), want)
	}
}

func TestReadRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing k m":    "100\n",
		"non-numeric":    "abc\n10 4\n",
		"wrong field ct": "100\n10\n",
		"non-numeric k":  "100\nx 4\n",
		"non-numeric m":  "100\n10 y\n",
		"negative len":   "-1\n10 4\n",
		"zero k":         "100\n0 4\n",
		"zero m":         "100\n10 0\n",
	}
	for name, input := range cases {
		if _, err := Read(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected MetadataError, got nil", name)
		}
	}
}
