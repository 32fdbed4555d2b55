/*
 * v3_test.go, part of gofill.
 *
 * Copyright 2026 The gofill Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package v3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Returns an identity matrix spanning span cols and rows
func gnEye(span int) *mat.Dense {
	A := mat.NewDense(span, span, nil)
	for i := 0; i < span; i++ {
		A.Set(i, i, 1.0)
	}
	return A
}

func TestGeo(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	T := Zeros(3)
	T.Mul(A, gnEye(3))
	if !mat.Equal(T, A) {
		Te.Errorf("A*I should be A, got %v", T)
	}
	//the receiver is also an operand
	A.Mul(A, gnEye(3))
	if !mat.Equal(T, A) {
		Te.Errorf("In-place A*I should be A, got %v", A)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("Changes in a view should be reflected in the original matrix")
	}
}

func TestNewMatrixError(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("A slice with a length not divisible by 3 should give an error")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	err = B.SomeVecsSafe(A, cind)
	if err != nil {
		Te.Error(err)
	}
	if B.At(2, 2) != 18 || B.At(0, 0) != 4 {
		Te.Errorf("Wrong vectors selected: %v", B)
	}
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	if A.At(3, 1) != 55 {
		Te.Errorf("SetVecs didn't copy the vectors back: %v", A)
	}
	if err = B.SomeVecsSafe(A, []int{1, 2, 30}); err == nil {
		Te.Error("Out of range index should give an error")
	}
}

func TestAddSubVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	A.AddVec(A, []float64{10, 20, 30})
	if A.At(1, 2) != 36 {
		Te.Errorf("AddVec failed: %v", A)
	}
	A.SubVec(A, []float64{10, 20, 30})
	if A.At(1, 2) != 6 || A.At(0, 0) != 1 {
		Te.Errorf("SubVec failed: %v", A)
	}
}

func TestStack(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3})
	B, _ := NewMatrix([]float64{4, 5, 6, 7, 8, 9})
	F := Zeros(3)
	F.Stack(A, B)
	if F.At(0, 0) != 1 || F.At(2, 2) != 9 || F.NVecs() != 3 {
		Te.Errorf("Stack failed: %v", F)
	}
}

func TestCrossUnit(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 2) != 1 {
		Te.Errorf("x cross y should be z, got %v", z)
	}
	row, _ := NewMatrix([]float64{2, 2, 3})
	row.Unit(row)
	if math.Abs(row.Norm(2)-1) > 1e-12 {
		Te.Errorf("Unit vector has norm %f", row.Norm(2))
	}
}

func TestDet(Te *testing.T) {
	A, _ := NewMatrix([]float64{2, 0, 0, 0, 3, 0, 0, 0, 4})
	if math.Abs(A.Det()-24) > 1e-12 {
		Te.Errorf("Wrong determinant %f", A.Det())
	}
}
