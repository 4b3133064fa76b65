package algoqft

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	qmath "github.com/cwbudde/algo-qft/internal/math"
)

// Matrix is an immutable dense complex matrix in row-major order.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// GenerateMatrix builds a rows×cols matrix whose entry (r, c) is f(r, c).
func GenerateMatrix(rows, cols int, f func(r, c int) complex128) *Matrix {
	m := &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
	for r := range rows {
		for c := range cols {
			m.data[r*cols+c] = f(r, c)
		}
	}
	return m
}

// DiagonalMatrix builds an n×n matrix with f(i) on the diagonal.
func DiagonalMatrix(n int, f func(i int) complex128) *Matrix {
	return GenerateMatrix(n, n, func(r, c int) complex128 {
		if r != c {
			return 0
		}
		return f(r)
	})
}

// IdentityMatrix returns the n×n identity.
func IdentityMatrix(n int) *Matrix {
	return DiagonalMatrix(n, func(int) complex128 { return 1 })
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// At returns entry (r, c).
func (m *Matrix) At(r, c int) complex128 {
	return m.data[r*m.cols+c]
}

// Adjoint returns the conjugate transpose.
func (m *Matrix) Adjoint() *Matrix {
	return GenerateMatrix(m.cols, m.rows, func(r, c int) complex128 {
		return cmplx.Conj(m.At(c, r))
	})
}

// Mul returns m·o.
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, fmt.Errorf("%w: %dx%d times %dx%d", ErrLengthMismatch, m.rows, m.cols, o.rows, o.cols)
	}
	return GenerateMatrix(m.rows, o.cols, func(r, c int) complex128 {
		var sum complex128
		for k := range m.cols {
			sum += m.At(r, k) * o.At(k, c)
		}
		return sum
	}), nil
}

// MulVec returns m·v.
func (m *Matrix) MulVec(v []complex128) ([]complex128, error) {
	if len(v) != m.cols {
		return nil, fmt.Errorf("%w: %dx%d times vector of %d", ErrLengthMismatch, m.rows, m.cols, len(v))
	}
	out := make([]complex128, m.rows)
	for r := range m.rows {
		var sum complex128
		row := m.data[r*m.cols : (r+1)*m.cols]
		for c, x := range row {
			sum += x * v[c]
		}
		out[r] = sum
	}
	return out, nil
}

// ApproxEqual reports whether every entry of m and o differs by at most tol.
func (m *Matrix) ApproxEqual(o *Matrix, tol float64) bool {
	if o == nil || m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// IsApproxUnitary reports whether m·m† is the identity within tol.
func (m *Matrix) IsApproxUnitary(tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	p, err := m.Mul(m.Adjoint())
	if err != nil {
		return false
	}
	return p.ApproxEqual(IdentityMatrix(m.rows), tol)
}

func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteString("{")
	for r := range m.rows {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("{")
		for c := range m.cols {
			if c > 0 {
				b.WriteString(", ")
			}
			v := m.At(r, c)
			fmt.Fprintf(&b, "%.4g%+.4gi", real(v), imag(v))
		}
		b.WriteString("}")
	}
	b.WriteString("}")
	return b.String()
}

// FourierMatrix returns the 2^span × 2^span QFT unitary
// M[r][c] = 2^(-span/2)·exp(i·2π·r·c/2^span).
func FourierMatrix(span int) *Matrix {
	n := 1 << span
	scale := math.Pow(0.5, float64(span)/2)
	return GenerateMatrix(n, n, func(r, c int) complex128 {
		// r*c mod n keeps the angle in [0, 2π) for accuracy.
		return cmplx.Rect(scale, qmath.TwoPi*float64((r*c)%n)/float64(n))
	})
}

// InverseFourierMatrix returns the adjoint of FourierMatrix(span).
func InverseFourierMatrix(span int) *Matrix {
	return FourierMatrix(span).Adjoint()
}
