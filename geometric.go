/*
 * geometric.go, part of gofill.
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

package chem

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gofill/v3"
	"gonum.org/v1/gonum/floats"
)

//values smaller than this are taken as zero
const appzero = 1e-12

//Angle takes 2 vectors and calculate the angle in radians between them
//It does not check for correctness or return errors!
func Angle(v1, v2 []float64) float64 {
	normproduct := floats.Norm(v1, 2) * floats.Norm(v2, 2)
	argument := floats.Dot(v1, v2) / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	return math.Acos(argument)
}

//CenterOfMass returns the center of mass the atoms represented by the coordinates in geometry
//and the masses in mass, and an error. If mass is nil, it calculates the geometric center
func CenterOfMass(geometry *v3.Matrix, mass []float64) ([]float64, error) {
	if geometry == nil {
		return nil, &CError{"nil matrix to get the center of mass", []string{"CenterOfMass"}, nil}
	}
	gr := geometry.NVecs()
	if mass != nil && len(mass) != gr {
		return nil, &CError{fmt.Sprintf("%d masses for %d atoms", len(mass), gr), []string{"CenterOfMass"}, nil}
	}
	ret := make([]float64, 3)
	total := 0.0
	row := make([]float64, 3)
	for i := 0; i < gr; i++ {
		w := 1.0
		if mass != nil {
			w = mass[i]
		}
		floats.AddScaled(ret, w, geometry.Vec(row, i))
		total += w
	}
	if total == 0 {
		return nil, &CError{"zero total mass", []string{"CenterOfMass"}, nil}
	}
	floats.Scale(1/total, ret)
	return ret, nil
}

//Centroid returns the geometric center (the plain average position) of
//the coordinates. Panics on a nil matrix.
func Centroid(geometry *v3.Matrix) []float64 {
	c, err := CenterOfMass(geometry, nil)
	if err != nil {
		panic(err.Error())
	}
	return c
}

//RotatorAroundZ returns an operator that will rotate a set of
//coordinates by gamma radians around the z axis.
func RotatorAroundZ(gamma float64) *v3.Matrix {
	singamma := math.Sin(gamma)
	cosgamma := math.Cos(gamma)
	operator := []float64{cosgamma, singamma, 0,
		-singamma, cosgamma, 0,
		0, 0, 1}
	ret, _ := v3.NewMatrix(operator) //hardcoded, can't fail
	return ret
}

//RotatorUV returns the rotation matrix that takes the direction of u onto
//the direction of v, rotating around the axis normal to both. As with the
//other rotators, the operator goes on the right side: uR is parallel to v.
//If u and v are antiparallel, the rotation is of pi radians around some
//axis perpendicular to u. u and v don't need to be normalized, but
//they can't be zero vectors.
func RotatorUV(u, v []float64) (*v3.Matrix, error) {
	nu, nv := floats.Norm(u, 2), floats.Norm(v, 2)
	if nu == 0 || nv == 0 {
		return nil, &CError{"zero vector given to RotatorUV", []string{"RotatorUV"}, nil}
	}
	a := []float64{u[0] / nu, u[1] / nu, u[2] / nu}
	b := []float64{v[0] / nv, v[1] / nv, v[2] / nv}
	c := floats.Dot(a, b)
	R := v3.Zeros(3)
	if c < -1+1e-10 {
		//any unit vector perpendicular to a will do as the axis.
		p := []float64{1, 0, 0}
		if math.Abs(a[0]) > 0.9 {
			p = []float64{0, 1, 0}
		}
		w := cross(a, p)
		floats.Scale(1/floats.Norm(w, 2), w)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				R.Set(i, j, 2*w[i]*w[j])
			}
			R.Set(i, i, R.At(i, i)-1)
		}
		return R, nil
	}
	w := cross(a, b)
	k := 1 / (1 + c)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R.Set(i, j, k*w[i]*w[j])
		}
		R.Set(i, i, R.At(i, i)+c)
	}
	//The transposed skew-symmetric part, since we multiply row vectors from the left.
	R.Set(0, 1, R.At(0, 1)+w[2])
	R.Set(0, 2, R.At(0, 2)-w[1])
	R.Set(1, 0, R.At(1, 0)-w[2])
	R.Set(1, 2, R.At(1, 2)+w[0])
	R.Set(2, 0, R.At(2, 0)+w[1])
	R.Set(2, 1, R.At(2, 1)-w[0])
	return R, nil
}

//RigidMove puts in dst the coordinates in src rotated by R around the point
//pivot and then translated so pivot ends up at target, i.e. each
//row x becomes (x-pivot)R+target. dst and src must have the same size, and
//can be the same matrix. If R is nil, only the translation is performed.
func RigidMove(dst, src *v3.Matrix, pivot []float64, R *v3.Matrix, target []float64) {
	if dst.NVecs() != src.NVecs() {
		panic(v3.ErrShape)
	}
	if dst != src {
		dst.Copy(src.Dense)
	}
	dst.SubVec(dst, pivot)
	if R != nil {
		dst.Mul(dst, R)
	}
	dst.AddVec(dst, target)
}

func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}
