// Package matrix implements dense byte matrices over GF(2^8): the
// Vandermonde-shaped coding matrix and its Gauss-Jordan inversion.
package matrix

import (
	"github.com/pkg/errors"

	"lukechampine.com/rs/internal/gf"
	"lukechampine.com/rs/internal/rserr"
)

// Matrix is a dense row-major byte matrix over GF(2^8).
type Matrix [][]byte

// New allocates a rows x cols zero matrix.
func New(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]byte, cols)
	}
	return m
}

// Vandermonde builds the m x k coding matrix V with
// V[r][c] = alpha^((r+k)*c mod 255). Shifting the row index by k puts
// every x-value in [k, k+m-1]: x is never 0 (k+m <= 255), and it is 1
// only for the first row when k = 1.
func Vandermonde(field *gf.Field, k, m int) Matrix {
	v := New(m, k)
	for r := 0; r < m; r++ {
		x := (r + k) % 255
		for c := 0; c < k; c++ {
			v[r][c] = field.Exp((x * c) % 255)
		}
	}
	return v
}

// MulVecMatrix returns the c-byte vector v*M: out[j] = XOR over i of
// mul(v[i], M[i][j]). It fails with ErrShape if v's length does not
// match M's row count.
func MulVecMatrix(field *gf.Field, v []byte, m Matrix) ([]byte, error) {
	if len(m) == 0 || len(v) != len(m) {
		return nil, errors.Wrapf(rserr.ErrShape, "mul_vec_matrix: vector length %d does not match %d matrix rows", len(v), len(m))
	}
	cols := len(m[0])
	out := make([]byte, cols)
	for i, a := range v {
		if a == 0 {
			continue
		}
		row := m[i]
		if len(row) != cols {
			return nil, errors.Wrapf(rserr.ErrShape, "mul_vec_matrix: ragged matrix row %d", i)
		}
		field.MulSliceXor(a, row, out)
	}
	return out, nil
}

// Invert computes M^-1 via Gauss-Jordan elimination on the augmented
// matrix [M | I]. It fails with ErrShape if M is not square, and with
// ErrSingular if no pivot can be found for some column.
func Invert(field *gf.Field, m Matrix) (Matrix, error) {
	n := len(m)
	for _, row := range m {
		if len(row) != n {
			return nil, errors.Wrap(rserr.ErrShape, "invert: matrix must be square")
		}
	}

	aug := New(n, 2*n)
	for r := 0; r < n; r++ {
		copy(aug[r][:n], m[r])
		aug[r][n+r] = 1
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if aug[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, errors.Wrapf(rserr.ErrSingular, "invert: no pivot for column %d", col)
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv, err := field.Inv(aug[col][col])
		if err != nil {
			return nil, err
		}
		scaleRow(field, aug[col][col:], inv)

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			field.MulSliceXor(factor, aug[col][col:], aug[r][col:])
		}
	}

	inv := New(n, n)
	for r := 0; r < n; r++ {
		copy(inv[r], aug[r][n:])
	}
	return inv, nil
}

// scaleRow multiplies every entry of row by c in place.
func scaleRow(field *gf.Field, row []byte, c byte) {
	if c == 1 {
		return
	}
	t := field.MulTable(c)
	for i, v := range row {
		row[i] = t[v]
	}
}
