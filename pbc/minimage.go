/*
 * minimage.go, part of gofill.
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

package pbc

import "math"

//MinImage returns the shortest periodic image of the displacement d in the
//lattice L. d is not modified.
func MinImage(d []float64, L *Lattice) []float64 {
	return L.MinImage(nil, d)
}

//Distance returns the minimum-image distance between the points a and b.
func Distance(a, b []float64, L *Lattice) float64 {
	return math.Sqrt(L.MinImage2([3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}))
}

//MinImage puts in dst the shortest periodic image of the displacement d.
//dst is allocated if nil, and returned. d and dst can be the same slice.
//The lattice vectors closest to d are subtracted from it, which leaves each
//fractional component in [-0.5,0.5]. For cells that are not orthorhombic that
//is not enough, so the 26 neighboring images are also checked.
func (L *Lattice) MinImage(dst, d []float64) []float64 {
	if dst == nil {
		dst = make([]float64, 3)
	}
	v := L.minImage([3]float64{d[0], d[1], d[2]})
	copy(dst, v[:])
	return dst
}

//MinImage2 returns the squared norm of the shortest periodic image of d.
func (L *Lattice) MinImage2(d [3]float64) float64 {
	v := L.minImage(d)
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func (L *Lattice) minImage(d [3]float64) [3]float64 {
	//only whole lattice vectors are subtracted, so d comes back unchanged
	//when it needs no wrapping.
	var n [3]float64
	for j := 0; j < 3; j++ {
		n[j] = math.Round(d[0]*L.inv[0][j] + d[1]*L.inv[1][j] + d[2]*L.inv[2][j])
	}
	w := d
	if n != [3]float64{} {
		for j := 0; j < 3; j++ {
			w[j] = d[j] - (n[0]*L.v[0][j] + n[1]*L.v[1][j] + n[2]*L.v[2][j])
		}
	}
	if L.ortho {
		return w
	}
	best := w
	bestn := norm2(w)
	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			for k := -1.0; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				var t [3]float64
				for m := 0; m < 3; m++ {
					t[m] = w[m] + i*L.v[0][m] + j*L.v[1][m] + k*L.v[2][m]
				}
				if n := norm2(t); n < bestn {
					best, bestn = t, n
				}
			}
		}
	}
	return best
}

func norm2(v [3]float64) float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}
