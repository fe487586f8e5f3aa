// Package gf implements arithmetic over the Galois field GF(2^8), the
// field Reed-Solomon erasure coding over bytes is built on.
//
// For background, see https://github.com/klauspost/reedsolomon, whose
// log/exp table construction this package follows.
package gf

import (
	"golang.org/x/sys/cpu"

	"lukechampine.com/rs/internal/rserr"
)

// polynomial is the reducing polynomial used to build GF(2^8):
// x^8 + x^4 + x^3 + x^2 + 1 (not the AES/Rijndael polynomial 0x11b).
const polynomial = 0x11d

// generator is the primitive element (alpha) used to enumerate the
// field's non-zero elements.
const generator = 2

// Field holds the precomputed exp/log tables for GF(2^8). A Field is
// immutable after New and safe for concurrent use by any number of
// goroutines.
type Field struct {
	exp [512]byte
	log [256]int16

	// HasSSSE3 and HasAVX2 mirror the CPU-feature gating in
	// klauspost/reedsolomon's assembly kernels. This build evaluates
	// every coefficient with the portable Go loop in MulSliceXor
	// regardless of these flags; they are informational fields only,
	// and nothing in this module reads or logs them.
	HasSSSE3 bool
	HasAVX2  bool
}

// New constructs the GF(2^8) tables. Deterministic, takes no parameters.
func New() *Field {
	f := &Field{
		HasSSSE3: cpu.X86.HasSSSE3,
		HasAVX2:  cpu.X86.HasAVX2,
	}
	for i := range f.log {
		f.log[i] = -1
	}

	x := uint16(1)
	for i := 0; i < 255; i++ {
		f.exp[i] = byte(x)
		f.log[x] = int16(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= polynomial
		}
	}
	for i := 255; i < 512; i++ {
		f.exp[i] = f.exp[i-255]
	}
	return f
}

// Exp returns alpha^i, for i in [0, 510]. The caller is responsible for
// reducing larger exponents mod 255 first (exp[i] == exp[i+255] for all
// valid i, so the table tolerates one extra period without reduction).
func (f *Field) Exp(i int) byte {
	return f.exp[i]
}

// Mul returns a*b in GF(2^8). The result is 0 if either operand is 0.
func (f *Field) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[int(f.log[a])+int(f.log[b])]
}

// Inv returns the multiplicative inverse of a. It returns DomainError
// if a is 0.
func (f *Field) Inv(a byte) (byte, error) {
	if a == 0 {
		return 0, rserr.ErrDomain
	}
	return f.exp[255-int(f.log[a])], nil
}

// MulTable returns the 256-entry table T where T[x] = Mul(c, x). Callers
// on a hot path (encode/reconstruct inner loops) compute this once per
// coefficient rather than calling Mul per byte.
func (f *Field) MulTable(c byte) [256]byte {
	var t [256]byte
	if c == 0 {
		return t
	}
	logC := int(f.log[c])
	for i := 1; i < 256; i++ {
		t[i] = f.exp[int(f.log[byte(i)])+logC]
	}
	return t
}

// MulSliceXor computes out[i] ^= c*in[i] for every byte in in, using the
// 0- and 1-coefficient fast paths: a coefficient of 0 is a no-op, a
// coefficient of 1 degrades to a plain XOR.
func (f *Field) MulSliceXor(c byte, in, out []byte) {
	switch c {
	case 0:
		return
	case 1:
		for i, v := range in {
			out[i] ^= v
		}
	default:
		t := f.MulTable(c)
		for i, v := range in {
			out[i] ^= t[v]
		}
	}
}
