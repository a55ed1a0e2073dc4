// Package operator builds the Crank-Nicolson operators A (implicit side) and
// B (explicit side) as banded complex matrices and applies them to states.
package operator

import (
	"fmt"
	"sort"
)

// Banded is a square complex matrix whose non-zeros lie on a few diagonals.
// Bands are stored row-aligned: band d holds M[i][i+d] at index i, and
// entries whose column falls outside the matrix are kept at zero.
type Banded struct {
	n       int
	offsets []int
	bands   [][]complex128

	exec *executor
}

func NewBanded(n int, offsets []int) (*Banded, error) {
	if n <= 0 || len(offsets) == 0 {
		return nil, ErrBadOffsets
	}
	offs := append([]int(nil), offsets...)
	sort.Ints(offs)
	for k, d := range offs {
		if d <= -n || d >= n || (k > 0 && offs[k-1] == d) {
			return nil, fmt.Errorf("%w: %v for dimension %d", ErrBadOffsets, offsets, n)
		}
	}
	m := &Banded{
		n:       n,
		offsets: offs,
		bands:   make([][]complex128, len(offs)),
	}
	for k := range m.bands {
		m.bands[k] = make([]complex128, n)
	}
	return m, nil
}

// Dim is the matrix dimension.
func (m *Banded) Dim() int {
	return m.n
}

func (m *Banded) Offsets() []int {
	return append([]int(nil), m.offsets...)
}

func (m *Banded) band(d int) []complex128 {
	k := sort.SearchInts(m.offsets, d)
	if k == len(m.offsets) || m.offsets[k] != d {
		return nil
	}
	return m.bands[k]
}

// Band returns a copy of diagonal d, or nil when d is not stored.
func (m *Banded) Band(d int) []complex128 {
	b := m.band(d)
	if b == nil {
		return nil
	}
	return append([]complex128(nil), b...)
}

// At returns M[i][j]; entries off the stored bands are zero.
func (m *Banded) At(i, j int) complex128 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("operator: index (%d, %d) out of range for dimension %d", i, j, m.n))
	}
	b := m.band(j - i)
	if b == nil {
		return 0
	}
	return b[i]
}

// set writes M[i][i+d] when the column is inside the matrix.
func (m *Banded) set(i, d int, v complex128) {
	if j := i + d; j >= 0 && j < m.n {
		m.band(d)[i] = v
	}
}

// Equal reports whether both matrices have the same shape and bit-identical
// entries.
func (m *Banded) Equal(o *Banded) bool {
	if m.n != o.n || len(m.offsets) != len(o.offsets) {
		return false
	}
	for k := range m.offsets {
		if m.offsets[k] != o.offsets[k] {
			return false
		}
		for i, v := range m.bands[k] {
			if v != o.bands[k][i] {
				return false
			}
		}
	}
	return true
}

// MulVec computes dst = M·x. With more than one worker the rows are split
// across the executor; the result is identical to the serial product.
func (m *Banded) MulVec(dst, x []complex128) {
	if len(dst) != m.n || len(x) != m.n {
		panic(fmt.Sprintf("operator: MulVec length mismatch: dst %d, x %d, dimension %d", len(dst), len(x), m.n))
	}
	if m.exec == nil {
		m.mulRows(dst, x, 0, m.n)
		return
	}
	m.exec.dispatchTask(task{start: 0, end: m.n, dst: dst, x: x})
}

func (m *Banded) mulRows(dst, x []complex128, from, to int) {
	for i := from; i < to; i++ {
		dst[i] = 0
	}
	for k, d := range m.offsets {
		lo, hi := from, to
		if lo < -d {
			lo = -d
		}
		if hi > m.n-d {
			hi = m.n - d
		}
		band := m.bands[k]
		for i := lo; i < hi; i++ {
			dst[i] += band[i] * x[i+d]
		}
	}
}

// Close stops the row workers, if any. The matrix stays usable serially.
func (m *Banded) Close() {
	if m.exec != nil {
		m.exec.stop()
		m.exec = nil
	}
}
