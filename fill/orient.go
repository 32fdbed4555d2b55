/*
 * orient.go, part of gofill.
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

package fill

import (
	"math"
	"math/rand/v2"

	chem "github.com/rmera/gofill"
	v3 "github.com/rmera/gofill/v3"
	"gonum.org/v1/gonum/num/quat"
)

//Orienter samples random rigid-body orientations.
type Orienter interface {
	//Orient returns a 3x3 rotation matrix, to be applied on the right
	//of the (row) coordinates.
	Orient(rng *rand.Rand) *v3.Matrix
}

//TwoNormals draws two vectors from a standard normal distribution and
//returns the rotation that takes the first onto the second.
//The rotations are not exactly uniform over SO(3).
type TwoNormals struct{}

func (TwoNormals) Orient(rng *rand.Rand) *v3.Matrix {
	for {
		u := []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		v := []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		R, err := chem.RotatorUV(u, v)
		if err == nil {
			return R
		}
		//only for zero vectors, which are (almost) never drawn.
	}
}

//UniformQuaternion samples rotations uniformly over SO(3), through
//random unit quaternions (K. Shoemake, Graphics Gems III, 1992).
type UniformQuaternion struct{}

func (UniformQuaternion) Orient(rng *rand.Rand) *v3.Matrix {
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)
	q := quat.Number{
		Real: b * math.Cos(2*math.Pi*u3),
		Imag: a * math.Sin(2*math.Pi*u2),
		Jmag: a * math.Cos(2*math.Pi*u2),
		Kmag: b * math.Sin(2*math.Pi*u3),
	}
	return QuatRotator(q)
}

//QuatRotator returns the rotation matrix for the unit quaternion q. Row i of the matrix is the
//ith unit vector rotated as q x q*, so the matrix goes on the right of row coordinates.
func QuatRotator(q quat.Number) *v3.Matrix {
	q = quat.Scale(1/quat.Abs(q), q)
	qc := quat.Conj(q)
	R := v3.Zeros(3)
	basis := []quat.Number{{Imag: 1}, {Jmag: 1}, {Kmag: 1}}
	for i, e := range basis {
		r := quat.Mul(quat.Mul(q, e), qc)
		R.SetVec(i, []float64{r.Imag, r.Jmag, r.Kmag})
	}
	return R
}
