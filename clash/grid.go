package clash

import (
	"math"

	"github.com/rmera/gofill/pbc"
	v3 "github.com/rmera/gofill/v3"
)

//more bins than this per axis only cost memory.
const maxBins = 48

// Grid is a periodic cell list. The cell is divided, in fractional coordinates, in bins
// at least as wide (perpendicularly) as the tolerance, so a test point only needs to
// be compared with the points in its own bin and the 26 around it.
// For cells that can't hold 3 bins along each axis, or for zero tolerance, it
// behaves exactly as BruteForce. The zero value is ready to be Reset.
type Grid struct {
	brute BruteForce
	nb    [3]int
	bins  [][]int32
	grid  bool
}

func (G *Grid) Reset(coords *v3.Matrix, L *pbc.Lattice, tol float64) {
	G.brute.Reset(nil, L, tol)
	G.grid = false
	G.bins = G.bins[:0]
	if L != nil && tol > 0 {
		h := L.Heights()
		G.grid = true
		total := 1
		for i := range h {
			G.nb[i] = int(math.Min(h[i]/tol, maxBins))
			if G.nb[i] < 3 {
				G.grid = false
			}
			total *= G.nb[i]
		}
		if G.grid {
			if cap(G.bins) >= total {
				G.bins = G.bins[:total]
				for i := range G.bins {
					G.bins[i] = G.bins[i][:0]
				}
			} else {
				G.bins = make([][]int32, total)
			}
		}
	}
	G.Add(coords)
}

func (G *Grid) Add(coords *v3.Matrix) {
	if coords == nil {
		return
	}
	first := G.brute.Len()
	G.brute.Add(coords)
	if !G.grid {
		return
	}
	for i := first; i < G.brute.Len(); i++ {
		b := G.bin(G.brute.points[i])
		idx := G.index(b[0], b[1], b[2])
		G.bins[idx] = append(G.bins[idx], int32(i))
	}
}

func (G *Grid) Len() int {
	return G.brute.Len()
}

// Binned returns true if the grid is actually in use, i.e. the checker is
// not falling back to brute force.
func (G *Grid) Binned() bool {
	return G.grid
}

func (G *Grid) Clash(test *v3.Matrix) bool {
	if !G.grid {
		return G.brute.Clash(test)
	}
	for i := 0; i < test.NVecs(); i++ {
		p := [3]float64{test.At(i, 0), test.At(i, 1), test.At(i, 2)}
		b := G.bin(p)
		for di := -1; di <= 1; di++ {
			for dj := -1; dj <= 1; dj++ {
				for dk := -1; dk <= 1; dk++ {
					idx := G.index(b[0]+di, b[1]+dj, b[2]+dk)
					for _, j := range G.bins[idx] {
						if tooClose(p, G.brute.points[j], G.brute.cell, G.brute.tol) {
							return true
						}
					}
				}
			}
		}
	}
	return false
}

func (G *Grid) bin(p [3]float64) [3]int {
	var b [3]int
	var f [3]float64
	G.brute.cell.ToFractional(f[:], p[:])
	for i, v := range f {
		v -= math.Floor(v)
		b[i] = int(v * float64(G.nb[i]))
		//v can round up to exactly 1
		if b[i] >= G.nb[i] {
			b[i] = G.nb[i] - 1
		}
	}
	return b
}

//index wraps i, j and k periodically.
func (G *Grid) index(i, j, k int) int {
	i = (i + G.nb[0]) % G.nb[0]
	j = (j + G.nb[1]) % G.nb[1]
	k = (k + G.nb[2]) % G.nb[2]
	return (i*G.nb[1]+j)*G.nb[2] + k
}
