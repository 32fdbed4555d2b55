package clash

import (
	"math"

	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
)

// Checker decides whether a set of points gets closer than a tolerance to the points
// it holds, under periodic boundary conditions. Implementations must give the same
// answer for the same points, they only differ in how fast they get it.
type Checker interface {
	//Reset discards all the points held and starts over with the rows of coords, the cell
	//L and the tolerance tol.
	Reset(coords *v3.Matrix, L *pbc.Lattice, tol float64)

	//Add adds the rows of coords to the points held.
	Add(coords *v3.Matrix)

	//Clash returns true if the minimum-image distance between some row of test and
	//some point held is strictly smaller than the tolerance.
	Clash(test *v3.Matrix) bool

	Len() int
}

// LowestDist returns the smallest minimum-image distance between a row of test and a row of clash, and the indexes
// of the pair. If L is nil, plain cartesian distances are used.
func LowestDist(test, clash *v3.Matrix, L *pbc.Lattice) (dist float64, indexes [2]int) {
	dist = math.Inf(1)
	a1 := make([]float64, 3)
	a2 := make([]float64, 3)
	var d2 float64
	for i := 0; i < test.NVecs(); i++ {
		test.Vec(a1, i)
		for j := 0; j < clash.NVecs(); j++ {
			clash.Vec(a2, j)
			d := [3]float64{a2[0] - a1[0], a2[1] - a1[1], a2[2] - a1[2]}
			if L != nil {
				d2 = L.MinImage2(d)
			} else {
				d2 = d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
			}
			if dt := math.Sqrt(d2); dt < dist {
				dist = dt
				indexes[0] = i
				indexes[1] = j
			}
		}
	}
	return
}

//BruteForce compares every test point against every point held.
//The zero value is ready to be Reset.
type BruteForce struct {
	points [][3]float64
	cell   *pbc.Lattice
	tol    float64
}

func (B *BruteForce) Reset(coords *v3.Matrix, L *pbc.Lattice, tol float64) {
	B.points = B.points[:0]
	B.cell = L
	B.tol = tol
	B.Add(coords)
}

func (B *BruteForce) Add(coords *v3.Matrix) {
	if coords == nil {
		return
	}
	for i := 0; i < coords.NVecs(); i++ {
		B.points = append(B.points, [3]float64{coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)})
	}
}

func (B *BruteForce) Len() int {
	return len(B.points)
}

func (B *BruteForce) Clash(test *v3.Matrix) bool {
	if B.tol <= 0 {
		return false //no distance is smaller than 0
	}
	for i := 0; i < test.NVecs(); i++ {
		p := [3]float64{test.At(i, 0), test.At(i, 1), test.At(i, 2)}
		for _, q := range B.points {
			if tooClose(p, q, B.cell, B.tol) {
				return true
			}
		}
	}
	return false
}

//tooClose is the distance criterion shared by every checker.
func tooClose(p, q [3]float64, L *pbc.Lattice, tol float64) bool {
	d := [3]float64{q[0] - p[0], q[1] - p[1], q[2] - p[2]}
	if L == nil {
		return math.Sqrt(d[0]*d[0]+d[1]*d[1]+d[2]*d[2]) < tol
	}
	return math.Sqrt(L.MinImage2(d)) < tol
}
