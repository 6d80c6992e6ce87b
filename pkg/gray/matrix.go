package gray

import "fmt"

// Axis selects the direction a Matrix operation runs along.
type Axis int

const (
	// AxisRows applies the operation to every row independently, shifting
	// digits towards higher column indices.
	AxisRows Axis = iota
	// AxisCols applies the operation to every column independently,
	// shifting digits towards higher row indices.
	AxisCols
)

func (a Axis) String() string {
	switch a {
	case AxisRows:
		return "rows"
	case AxisCols:
		return "cols"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Matrix is a dense row-major grid of binary digits.
type Matrix struct {
	Rows, Cols int
	Data       []bool
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]bool, rows*cols)}
}

// MatrixOf builds a matrix from equal length rows. It panics on ragged input.
func MatrixOf(rows ...Bits) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != m.Cols {
			panic(fmt.Sprintf("gray: row %d has %d digits, want %d", r, len(row), m.Cols))
		}
		copy(m.Data[r*m.Cols:], row)
	}
	return m
}

func (m Matrix) At(r, c int) bool {
	return m.Data[r*m.Cols+c]
}

func (m Matrix) Set(r, c int, v bool) {
	m.Data[r*m.Cols+c] = v
}

// Row returns a copy of row r.
func (m Matrix) Row(r int) Bits {
	out := make(Bits, m.Cols)
	copy(out, m.Data[r*m.Cols:(r+1)*m.Cols])
	return out
}

// Col returns a copy of column c.
func (m Matrix) Col(c int) Bits {
	out := make(Bits, m.Rows)
	for r := range out {
		out[r] = m.At(r, c)
	}
	return out
}

func (m Matrix) lanes(axis Axis) int {
	if axis == AxisCols {
		return m.Cols
	}
	return m.Rows
}

func (m Matrix) lane(axis Axis, i int) Bits {
	if axis == AxisCols {
		return m.Col(i)
	}
	return m.Row(i)
}

func (m Matrix) setLane(axis Axis, i int, b Bits) {
	for j, v := range b {
		if axis == AxisCols {
			m.Set(j, i, v)
		} else {
			m.Set(i, j, v)
		}
	}
}

func (m Matrix) apply(axis Axis, fn func(Bits) Bits) Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i := 0; i < m.lanes(axis); i++ {
		out.setLane(axis, i, fn(m.lane(axis, i)))
	}
	return out
}

// RightShift shifts every lane along axis by k. The shape is unchanged.
func (m Matrix) RightShift(k int, axis Axis) Matrix {
	return m.apply(axis, func(b Bits) Bits { return RightShift(b, k) })
}

// ToGray Gray codes every lane along axis.
func (m Matrix) ToGray(axis Axis) Matrix {
	return m.apply(axis, ToGray)
}

// FromGray decodes every Gray coded lane along axis.
func (m Matrix) FromGray(axis Axis) Matrix {
	return m.apply(axis, FromGray)
}

// Equal reports whether both matrices have the same shape and digits.
func (m Matrix) Equal(o Matrix) bool {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return false
	}
	for i := range m.Data {
		if m.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}
