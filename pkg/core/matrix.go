package core

import (
	"errors"
	"math"
)

// ErrNotInvertible is returned when inverting a matrix whose determinant is zero
var ErrNotInvertible = errors.New("core: matrix is not invertible")

// Matrix is a row-major 4x4 matrix used for affine transforms
type Matrix [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix creates a matrix from its rows
func NewMatrix(rows [4][4]float64) Matrix {
	return Matrix(rows)
}

// Multiply returns m * other
func (m Matrix) Multiply(other Matrix) Matrix {
	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = m[row][0]*other[0][col] +
				m[row][1]*other[1][col] +
				m[row][2]*other[2][col] +
				m[row][3]*other[3][col]
		}
	}
	return result
}

// MultiplyTuple returns m * t
func (m Matrix) MultiplyTuple(t Tuple) Tuple {
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = m[col][row]
		}
	}
	return result
}

// Determinant returns the determinant using cofactor expansion along the first row
func (m Matrix) Determinant() float64 {
	return determinant(m.rows(), 4)
}

// Submatrix returns the 3x3 matrix left after removing the given row and column
func (m Matrix) Submatrix(row, col int) [3][3]float64 {
	var result [3][3]float64
	sub := submatrix(m.rows(), 4, row, col)
	for r := 0; r < 3; r++ {
		copy(result[r][:], sub[r])
	}
	return result
}

// Minor returns the determinant of the submatrix at (row, col)
func (m Matrix) Minor(row, col int) float64 {
	return determinant(submatrix(m.rows(), 4, row, col), 3)
}

// Cofactor returns the signed minor at (row, col)
func (m Matrix) Cofactor(row, col int) float64 {
	minor := m.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// IsInvertible reports whether the matrix has a non-zero determinant
func (m Matrix) IsInvertible() bool {
	return m.Determinant() != 0
}

// Inverse returns the inverse of the matrix built from its cofactors
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, ErrNotInvertible
	}

	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			// Transposed assignment folds the adjugate transpose into the loop
			result[col][row] = m.Cofactor(row, col) / det
		}
	}
	return result, nil
}

// Equals compares two matrices element-wise within Epsilon
func (m Matrix) Equals(other Matrix) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !FloatEquals(m[row][col], other[row][col]) {
				return false
			}
		}
	}
	return true
}

func (m Matrix) rows() [][]float64 {
	rows := make([][]float64, 4)
	for i := range rows {
		rows[i] = []float64{m[i][0], m[i][1], m[i][2], m[i][3]}
	}
	return rows
}

func submatrix(rows [][]float64, size, removeRow, removeCol int) [][]float64 {
	result := make([][]float64, 0, size-1)
	for r := 0; r < size; r++ {
		if r == removeRow {
			continue
		}
		row := make([]float64, 0, size-1)
		for c := 0; c < size; c++ {
			if c == removeCol {
				continue
			}
			row = append(row, rows[r][c])
		}
		result = append(result, row)
	}
	return result
}

func determinant(rows [][]float64, size int) float64 {
	if size == 2 {
		return rows[0][0]*rows[1][1] - rows[0][1]*rows[1][0]
	}

	det := 0.0
	for col := 0; col < size; col++ {
		minor := determinant(submatrix(rows, size, 0, col), size-1)
		if col%2 == 1 {
			minor = -minor
		}
		det += rows[0][col] * minor
	}
	return det
}

// Translation returns a translation matrix
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling returns a scaling matrix
func Scaling(x, y, z float64) Matrix {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// RotationX returns a rotation around the X axis by r radians
func RotationX(r float64) Matrix {
	cos, sin := math.Cos(r), math.Sin(r)
	m := Identity()
	m[1][1] = cos
	m[1][2] = -sin
	m[2][1] = sin
	m[2][2] = cos
	return m
}

// RotationY returns a rotation around the Y axis by r radians
func RotationY(r float64) Matrix {
	cos, sin := math.Cos(r), math.Sin(r)
	m := Identity()
	m[0][0] = cos
	m[0][2] = sin
	m[2][0] = -sin
	m[2][2] = cos
	return m
}

// RotationZ returns a rotation around the Z axis by r radians
func RotationZ(r float64) Matrix {
	cos, sin := math.Cos(r), math.Sin(r)
	m := Identity()
	m[0][0] = cos
	m[0][1] = -sin
	m[1][0] = sin
	m[1][1] = cos
	return m
}

// Shearing returns a shearing matrix where each argument moves one
// component in proportion to another (xy moves x in proportion to y)
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	m := Identity()
	m[0][1] = xy
	m[0][2] = xz
	m[1][0] = yx
	m[1][2] = yz
	m[2][0] = zx
	m[2][1] = zy
	return m
}

// The chain methods below left-multiply, so Identity().RotateX(a).Translate(x, y, z)
// rotates first and translates second.

// Translate returns Translation(x, y, z) * m
func (m Matrix) Translate(x, y, z float64) Matrix {
	return Translation(x, y, z).Multiply(m)
}

// Scale returns Scaling(x, y, z) * m
func (m Matrix) Scale(x, y, z float64) Matrix {
	return Scaling(x, y, z).Multiply(m)
}

// RotateX returns RotationX(r) * m
func (m Matrix) RotateX(r float64) Matrix {
	return RotationX(r).Multiply(m)
}

// RotateY returns RotationY(r) * m
func (m Matrix) RotateY(r float64) Matrix {
	return RotationY(r).Multiply(m)
}

// RotateZ returns RotationZ(r) * m
func (m Matrix) RotateZ(r float64) Matrix {
	return RotationZ(r).Multiply(m)
}

// Shear returns Shearing(...) * m
func (m Matrix) Shear(xy, xz, yx, yz, zx, zy float64) Matrix {
	return Shearing(xy, xz, yx, yz, zx, zy).Multiply(m)
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Matrix{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}

	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}
