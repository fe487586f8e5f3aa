// Package driver validates parameters, serializes metadata, and
// orchestrates a full encode or decode call end to end: read phase,
// then compute phase, then write phase, with no phase overlap, matching
// the coarse-phase ordering and cancellation model the core requires.
package driver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"lukechampine.com/rs/internal/gf"
	"lukechampine.com/rs/internal/metadata"
	"lukechampine.com/rs/internal/rscode"
	"lukechampine.com/rs/internal/rserr"
	"lukechampine.com/rs/internal/shardio"
)

// EncodeResult summarizes a completed Encode call.
type EncodeResult struct {
	OrigLen  int64
	ShardLen int64
	K, M     int
}

// Encode splits the file at inputPath into k data shards, computes m
// parity shards, and persists all k+m shards plus meta.txt under
// outDir.
func Encode(ctx context.Context, inputPath, outDir string, k, m int) (EncodeResult, error) {
	field := gf.New()
	code, err := rscode.New(field, k, m)
	if err != nil {
		return EncodeResult{}, err
	}

	buf, err := os.ReadFile(inputPath)
	if err != nil {
		return EncodeResult{}, errors.Wrapf(rserr.ErrIO, "reading input file %s: %v", inputPath, err)
	}
	origLen := int64(len(buf))
	rec := metadata.Record{OrigLen: origLen, K: k, M: m}
	shardLen := rec.ShardLen()

	shards := make([][]byte, k+m)
	for i := 0; i < k; i++ {
		shards[i] = make([]byte, shardLen)
		start := int64(i) * shardLen
		end := start + shardLen
		if end > origLen {
			end = origLen
		}
		if start < origLen {
			copy(shards[i], buf[start:end])
		}
	}

	if err := code.Encode(ctx, shards); err != nil {
		return EncodeResult{}, err
	}

	if err := shardio.WriteAll(ctx, outDir, shards); err != nil {
		return EncodeResult{}, err
	}

	metaPath := metaPathFor(outDir)
	f, err := os.Create(metaPath)
	if err != nil {
		return EncodeResult{}, errors.Wrapf(rserr.ErrIO, "creating %s: %v", metaPath, err)
	}
	defer f.Close()
	if err := metadata.Write(f, rec); err != nil {
		return EncodeResult{}, err
	}

	return EncodeResult{OrigLen: origLen, ShardLen: shardLen, K: k, M: m}, nil
}

// DecodeResult summarizes a completed Decode call.
type DecodeResult struct {
	OrigLen       int64
	Reconstructed int
}

// Decode reads meta.txt and the available shards under shardDir,
// reconstructs any missing shards, and writes the reassembled file to
// outputPath.
func Decode(ctx context.Context, shardDir, outputPath string) (DecodeResult, error) {
	metaPath := metaPathFor(shardDir)
	mf, err := os.Open(metaPath)
	if err != nil {
		return DecodeResult{}, errors.Wrapf(rserr.ErrMetadata, "opening %s: %v", metaPath, err)
	}
	rec, err := metadata.Read(mf)
	mf.Close()
	if err != nil {
		return DecodeResult{}, err
	}

	field := gf.New()
	code, err := rscode.New(field, rec.K, rec.M)
	if err != nil {
		return DecodeResult{}, err
	}

	shards, err := shardio.ReadAll(ctx, shardDir, rec.N())
	if err != nil {
		return DecodeResult{}, err
	}

	reconstructed := 0
	for _, s := range shards {
		if s == nil {
			reconstructed++
		}
	}

	if reconstructed > 0 {
		recon := rscode.NewReconstructor(code)
		if err := recon.Reconstruct(ctx, shards); err != nil {
			return DecodeResult{}, err
		}
	}

	shardLen := rec.ShardLen()
	out := make([]byte, int64(rec.K)*shardLen)
	for i := 0; i < rec.K; i++ {
		copy(out[int64(i)*shardLen:], shards[i])
	}
	out = out[:rec.OrigLen]

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return DecodeResult{}, errors.Wrapf(rserr.ErrIO, "writing output file %s: %v", outputPath, err)
	}

	return DecodeResult{OrigLen: rec.OrigLen, Reconstructed: reconstructed}, nil
}

func metaPathFor(dir string) string {
	return filepath.Join(dir, "meta.txt")
}
