package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lukechampine.com/frand"

	"lukechampine.com/rs/internal/shardio"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.bin")
	shardDir := filepath.Join(dir, "shards")
	outputPath := filepath.Join(dir, "output.bin")

	want := frand.Bytes(1000001)
	if err := os.WriteFile(inputPath, want, 0o644); err != nil {
		t.Fatal(err)
	}

	encRes, err := Encode(context.Background(), inputPath, shardDir, 10, 4)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if encRes.OrigLen != int64(len(want)) {
		t.Fatalf("OrigLen = %d, want %d", encRes.OrigLen, len(want))
	}

	// Erase two data shards and two parity shards before decoding.
	for _, i := range []int{1, 3, 10, 12} {
		if err := os.Remove(shardio.ShardPath(shardDir, i)); err != nil {
			t.Fatal(err)
		}
	}

	decRes, err := Decode(context.Background(), shardDir, outputPath)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decRes.Reconstructed != 4 {
		t.Fatalf("Reconstructed = %d, want 4", decRes.Reconstructed)
	}

	got, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("output length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d mismatch: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestDecodeFailsWithTooManyMissingShards(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.bin")
	shardDir := filepath.Join(dir, "shards")
	outputPath := filepath.Join(dir, "output.bin")

	if err := os.WriteFile(inputPath, frand.Bytes(256), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Encode(context.Background(), inputPath, shardDir, 4, 4); err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, i := range []int{0, 1, 2, 3, 4} {
		if err := os.Remove(shardio.ShardPath(shardDir, i)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := Decode(context.Background(), shardDir, outputPath); err == nil {
		t.Fatal("expected decode to fail with insufficient shards")
	}
}

func TestEncodeRejectsInvalidParameters(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.bin")
	if err := os.WriteFile(inputPath, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Encode(context.Background(), inputPath, filepath.Join(dir, "shards"), 0, 4); err == nil {
		t.Fatal("expected InvalidParameters for k=0")
	}
}
