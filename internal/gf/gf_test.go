package gf

import "testing"

func TestMulCommutativeAndIdentities(t *testing.T) {
	f := New()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			a, b := byte(a), byte(b)
			if f.Mul(a, b) != f.Mul(b, a) {
				t.Fatalf("mul(%d,%d) != mul(%d,%d)", a, b, b, a)
			}
		}
		if f.Mul(byte(a), 0) != 0 {
			t.Fatalf("mul(%d, 0) != 0", a)
		}
		if f.Mul(byte(a), 1) != byte(a) {
			t.Fatalf("mul(%d, 1) != %d", a, a)
		}
	}
}

func TestInv(t *testing.T) {
	f := New()
	if _, err := f.Inv(0); err == nil {
		t.Fatal("Inv(0) should fail")
	}
	for a := 1; a < 256; a++ {
		inv, err := f.Inv(byte(a))
		if err != nil {
			t.Fatalf("Inv(%d): %v", a, err)
		}
		if f.Mul(byte(a), inv) != 1 {
			t.Fatalf("mul(%d, inv(%d)) != 1", a, a)
		}
		inv2, err := f.Inv(inv)
		if err != nil {
			t.Fatalf("Inv(inv(%d)): %v", a, err)
		}
		if inv2 != byte(a) {
			t.Fatalf("inv(inv(%d)) = %d, want %d", a, inv2, a)
		}
	}
}

func TestMulTableMatchesMul(t *testing.T) {
	f := New()
	for c := 0; c < 256; c++ {
		table := f.MulTable(byte(c))
		for x := 0; x < 256; x++ {
			if table[x] != f.Mul(byte(c), byte(x)) {
				t.Fatalf("MulTable(%d)[%d] = %d, want %d", c, x, table[x], f.Mul(byte(c), byte(x)))
			}
		}
	}
}

func TestMulSliceXorFastPaths(t *testing.T) {
	f := New()
	in := []byte{1, 2, 3, 4, 5}

	out := make([]byte, len(in))
	f.MulSliceXor(0, in, out)
	for _, v := range out {
		if v != 0 {
			t.Fatal("coefficient 0 should leave out untouched")
		}
	}

	out = make([]byte, len(in))
	f.MulSliceXor(1, in, out)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("coefficient 1 should XOR in place: out[%d]=%d want %d", i, out[i], in[i])
		}
	}

	out = make([]byte, len(in))
	f.MulSliceXor(7, in, out)
	for i := range in {
		if out[i] != f.Mul(7, in[i]) {
			t.Fatalf("coefficient 7: out[%d]=%d want %d", i, out[i], f.Mul(7, in[i]))
		}
	}
}
