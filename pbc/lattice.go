/*
 * lattice.go, part of gofill.
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

//Package pbc handles periodic cells: the lattice vectors, conversion between
//cartesian and fractional coordinates, wrapping and the minimum-image
//convention. Lengths are in Angstroms, angles in degrees.
package pbc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//smallest absolute determinant accepted for a cell.
const degenerateDet = 1e-8

//ErrDegenerate is returned when the lattice vectors don't span a 3D volume.
var ErrDegenerate = errors.New("pbc: degenerate cell, lattice vectors are (nearly) coplanar")

//Lattice is a periodic cell. The rows of the matrix are the lattice vectors
//a, b and c, so a point with fractional coordinates f has cartesian
//coordinates f·L. A Lattice is never modified after creation.
type Lattice struct {
	v     [3][3]float64
	inv   [3][3]float64
	det   float64
	ortho bool
}

//NewLattice returns the lattice with vectors a, b and c. It returns ErrDegenerate
//if the vectors don't span a volume.
func NewLattice(a, b, c []float64) (*Lattice, error) {
	if len(a) < 3 || len(b) < 3 || len(c) < 3 {
		return nil, fmt.Errorf("pbc: lattice vectors need 3 components")
	}
	data := make([]float64, 0, 9)
	data = append(data, a[:3]...)
	data = append(data, b[:3]...)
	data = append(data, c[:3]...)
	return FromMatrix(mat.NewDense(3, 3, data))
}

//FromMatrix returns the lattice whose vectors are the rows of the 3x3 matrix m.
func FromMatrix(m mat.Matrix) (*Lattice, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, fmt.Errorf("pbc: a lattice matrix must be 3x3, got %dx%d", r, c)
	}
	L := new(Lattice)
	L.ortho = true
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			L.v[i][j] = m.At(i, j)
			if i != j && m.At(i, j) != 0 {
				L.ortho = false
			}
		}
	}
	L.det = mat.Det(m)
	if math.Abs(L.det) < degenerateDet {
		return nil, ErrDegenerate
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("pbc: can't invert lattice matrix: %w", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			L.inv[i][j] = inv.At(i, j)
		}
	}
	return L, nil
}

//Orthorhombic returns a rectangular cell with sides x, y and z.
func Orthorhombic(x, y, z float64) (*Lattice, error) {
	return NewLattice([]float64{x, 0, 0}, []float64{0, y, 0}, []float64{0, 0, z})
}

//FromParameters builds a lattice from the cell lengths a, b, c and the angles
//alpha (b^c), beta (a^c) and gamma (a^b). a lies along x and b in the xy plane,
//which is the PDB convention.
func FromParameters(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	ca := math.Cos(alpha * math.Pi / 180)
	cb := math.Cos(beta * math.Pi / 180)
	cg := math.Cos(gamma * math.Pi / 180)
	sg := math.Sin(gamma * math.Pi / 180)
	//exact right angles give exact zeros
	if alpha == 90 {
		ca = 0
	}
	if beta == 90 {
		cb = 0
	}
	if gamma == 90 {
		cg = 0
		sg = 1
	}
	if sg == 0 {
		return nil, ErrDegenerate
	}
	cx := c * cb
	cy := c * (ca - cb*cg) / sg
	cz2 := c*c - cx*cx - cy*cy
	if cz2 <= 0 {
		return nil, ErrDegenerate
	}
	return NewLattice([]float64{a, 0, 0}, []float64{b * cg, b * sg, 0}, []float64{cx, cy, math.Sqrt(cz2)})
}

//Vec returns a copy of the ith lattice vector.
func (L *Lattice) Vec(i int) []float64 {
	ret := make([]float64, 3)
	copy(ret, L.v[i][:])
	return ret
}

//Matrix returns a copy of the lattice matrix, one vector per row.
func (L *Lattice) Matrix() *mat.Dense {
	ret := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		ret.SetRow(i, L.v[i][:])
	}
	return ret
}

//Orthorhombic returns true if all lattice vectors lie along the cartesian axes.
func (L *Lattice) Orthorhombic() bool {
	return L.ortho
}

//Det returns the determinant of the lattice matrix.
func (L *Lattice) Det() float64 {
	return L.det
}

//Volume returns the volume of the cell.
func (L *Lattice) Volume() float64 {
	return math.Abs(L.det)
}

//Parameters returns the cell lengths and the alpha, beta and gamma angles.
func (L *Lattice) Parameters() (a, b, c, alpha, beta, gamma float64) {
	a = floats.Norm(L.v[0][:], 2)
	b = floats.Norm(L.v[1][:], 2)
	c = floats.Norm(L.v[2][:], 2)
	alpha = angle(L.v[1][:], L.v[2][:])
	beta = angle(L.v[0][:], L.v[2][:])
	gamma = angle(L.v[0][:], L.v[1][:])
	return
}

//Heights returns the perpendicular widths of the cell, i.e. the distance
//between the two faces not containing the ith lattice vector.
func (L *Lattice) Heights() [3]float64 {
	var h [3]float64
	vol := L.Volume()
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		cr := cross(L.v[j][:], L.v[k][:])
		h[i] = vol / floats.Norm(cr[:], 2)
	}
	return h
}

//Diagonal returns the length of the longest body diagonal of the cell.
func (L *Lattice) Diagonal() float64 {
	var longest float64
	signs := [4][3]float64{{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}
	for _, s := range signs {
		var d [3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				d[j] += s[i] * L.v[i][j]
			}
		}
		longest = math.Max(longest, floats.Norm(d[:], 2))
	}
	return longest
}

//ToFractional puts in dst the fractional coordinates of the cartesian point p.
//dst is allocated if nil, and returned.
func (L *Lattice) ToFractional(dst, p []float64) []float64 {
	if dst == nil {
		dst = make([]float64, 3)
	}
	x, y, z := p[0], p[1], p[2]
	for j := 0; j < 3; j++ {
		dst[j] = x*L.inv[0][j] + y*L.inv[1][j] + z*L.inv[2][j]
	}
	return dst
}

//ToCartesian puts in dst the cartesian coordinates of the fractional point f.
//dst is allocated if nil, and returned.
func (L *Lattice) ToCartesian(dst, f []float64) []float64 {
	if dst == nil {
		dst = make([]float64, 3)
	}
	x, y, z := f[0], f[1], f[2]
	for j := 0; j < 3; j++ {
		dst[j] = x*L.v[0][j] + y*L.v[1][j] + z*L.v[2][j]
	}
	return dst
}

//Point returns the point r·L, i.e. the combination of the lattice vectors
//with the weights in r. For r in [0,1)^3 the point lies in the cell.
func (L *Lattice) Point(r [3]float64) []float64 {
	return L.ToCartesian(nil, r[:])
}

//Wrap puts in dst the image of p that lies inside the cell (fractional
//coordinates in [0,1)). dst is allocated if nil, and returned.
func (L *Lattice) Wrap(dst, p []float64) []float64 {
	f := L.ToFractional(nil, p)
	for i, v := range f {
		f[i] = v - math.Floor(v)
	}
	return L.ToCartesian(dst, f)
}

//String returns the 9 components of the lattice, a first, in the format used
//by the extended XYZ Lattice field.
func (L *Lattice) String() string {
	s := make([]string, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s = append(s, strconv.FormatFloat(L.v[i][j], 'f', -1, 64))
		}
	}
	return strings.Join(s, " ")
}

//ParseLattice parses 9 whitespace-separated numbers (a, b and c in order)
//into a Lattice.
func ParseLattice(s string) (*Lattice, error) {
	fields := strings.Fields(s)
	if len(fields) != 9 {
		return nil, fmt.Errorf("pbc: a lattice needs 9 numbers, got %d", len(fields))
	}
	data := make([]float64, 9)
	for i, v := range fields {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("pbc: can't parse lattice component %d: %w", i, err)
		}
		data[i] = f
	}
	return FromMatrix(mat.NewDense(3, 3, data))
}

func cross(a, b []float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

//angle between a and b, in degrees.
func angle(a, b []float64) float64 {
	arg := floats.Dot(a, b) / (floats.Norm(a, 2) * floats.Norm(b, 2))
	arg = math.Max(-1, math.Min(1, arg))
	return math.Acos(arg) * 180 / math.Pi
}
