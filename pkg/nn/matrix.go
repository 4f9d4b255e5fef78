package nn

// Matrix is a dense column-major weight matrix.
type Matrix struct {
	Data []float32
	Rows int
	Cols int
}

func NewMatrix(rows, cols int) Matrix {
	return Matrix{
		Data: make([]float32, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

func (m *Matrix) Get(row, col int) float32 {
	return m.Data[col*m.Rows+row]
}

func (m *Matrix) Set(row, col int, v float32) {
	m.Data[col*m.Rows+row] = v
}
